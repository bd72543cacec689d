package config

import (
	"path/filepath"
	"reflect"
	"strings"
)

// GetHome returns the resolved application home folder.
func GetHome(cfg *Config) string {
	return cfg.Scenescope.HomeFolder
}

// GetPluginsHome returns the folder that holds analyzer plugin binaries.
func GetPluginsHome(cfg *Config) string {
	if cfg.Scenescope.PluginsFolder != "" {
		return cfg.Scenescope.PluginsFolder
	}
	return filepath.Join(GetHome(cfg), "plugins")
}

// GetResultsHome returns the folder that collects reports and run artifacts.
func GetResultsHome(cfg *Config) string {
	if cfg.Scenescope.ResultsFolder != "" {
		return cfg.Scenescope.ResultsFolder
	}
	return filepath.Join(GetHome(cfg), "results")
}

// GetArtifactsHome returns the folder for launch artifacts.
func GetArtifactsHome(cfg *Config) string {
	return filepath.Join(GetResultsHome(cfg), "artifacts")
}

// GetTempHome returns the scratch folder.
func GetTempHome(cfg *Config) string {
	if cfg.Scenescope.TempFolder != "" {
		return cfg.Scenescope.TempFolder
	}
	return filepath.Join(GetHome(cfg), "tmp")
}

// GetBoolValue retrieves a boolean value from a nested struct based on a dot-separated path.
// It returns the provided defaultValue if the specified field is not explicitly set or is nil.
func GetBoolValue(config interface{}, fieldPath string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	fields := strings.Split(fieldPath, ".")
	val := reflect.ValueOf(config)

	for _, field := range fields {
		if val.Kind() == reflect.Ptr {
			val = val.Elem()
		}

		val = val.FieldByName(field)
		if !val.IsValid() {
			return defaultValue
		}
	}

	if val.Kind() == reflect.Ptr && !val.IsNil() {
		return val.Elem().Bool()
	} else if val.Kind() == reflect.Bool {
		return val.Bool()
	}

	return defaultValue
}

// SetThen provides a utility to select the first value if set, otherwise defaults.
func SetThen[T any](value T, defaultValue T) T {
	if reflect.ValueOf(value).IsZero() {
		return defaultValue
	}
	return value
}
