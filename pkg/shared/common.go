package shared

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-plugin"
	"github.com/spf13/pflag"

	"github.com/scenescope/scenescope/internal/logger"
	"github.com/scenescope/scenescope/pkg/shared/config"
)

const (
	// PluginTypeAnalyzer is the only plugin kind the core dispenses.
	PluginTypeAnalyzer string = "analyzer"
)

// HandshakeConfig is shared between the core and every plugin binary.
var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "SCENESCOPE",
	MagicCookieValue: "c3f1a7be2d904655b8f04f0e6f9a3b2a7d1c5e88",
}

var PluginMap = map[string]plugin.Plugin{
	PluginTypeAnalyzer: &AnalyzerPlugin{},
}

// WithPlugin launches the named plugin binary from the plugins home,
// dispenses the requested interface and hands it to f.
func WithPlugin(cfg *config.Config, loggerName string, pluginType string, pluginName string, f func(interface{}) error) error {
	log := logger.NewLogger(cfg, loggerName)

	pluginPath := filepath.Join(config.GetPluginsHome(cfg), pluginName, pluginName)
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig: HandshakeConfig,
		Plugins:         PluginMap,
		Cmd:             exec.Command(pluginPath),
		Logger:          log,
	})
	defer client.Kill()

	rpcClient, err := client.Client()
	if err != nil {
		return fmt.Errorf("failed to start plugin %q: %w", pluginName, err)
	}

	raw, err := rpcClient.Dispense(pluginType)
	if err != nil {
		return fmt.Errorf("failed to dispense plugin %q: %w", pluginName, err)
	}

	return f(raw)
}

// ForEveryWithBoundedGoroutines runs f over values with at most limit
// concurrent goroutines.
func ForEveryWithBoundedGoroutines(limit int, values []interface{}, f func(i int, value interface{})) {
	if limit < 1 {
		limit = 1
	}
	guard := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i, value := range values {
		guard <- struct{}{} // blocks while the pool is saturated
		wg.Add(1)
		go func(i int, value interface{}) {
			defer wg.Done()
			f(i, value)
			<-guard
		}(i, value)
	}
	wg.Wait()
}

// IsInList reports whether value is present in list.
func IsInList(value string, list []string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// HasFlags reports whether any flag in the set was explicitly changed.
func HasFlags(flags *pflag.FlagSet) bool {
	changed := false
	flags.Visit(func(*pflag.Flag) { changed = true })
	return changed
}
