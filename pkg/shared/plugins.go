package shared

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// PluginMeta is the metadata a plugin ships in its VERSION file.
type PluginMeta struct {
	Version    string `json:"version"`
	PluginType string `json:"plugin_type"`
}

// GetPluginVersions lists the installed plugins of the given type, keyed by
// plugin name. Plugins without a readable VERSION file are reported with
// unknown metadata.
func GetPluginVersions(pluginsDir, pluginType string) map[string]PluginMeta {
	pluginsMeta := make(map[string]PluginMeta)

	entries, err := os.ReadDir(pluginsDir)
	if err != nil {
		return pluginsMeta
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta := PluginMeta{Version: "unknown", PluginType: "unknown"}
		data, err := os.ReadFile(filepath.Join(pluginsDir, entry.Name(), "VERSION"))
		if err == nil {
			_ = json.Unmarshal(data, &meta)
		}

		if pluginType == "" || meta.PluginType == pluginType || meta.PluginType == "unknown" {
			pluginsMeta[entry.Name()] = meta
		}
	}

	return pluginsMeta
}
