package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scenescope/scenescope/pkg/shared/files"
)

// ValidateConfig checks if the global configurations have valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := validateFolders(cfg); err != nil {
		return fmt.Errorf("YAML global config: scenescope directive is invalid: %w", err)
	}
	if err := ValidateHTTPConfig(&cfg.HTTPClient); err != nil {
		return fmt.Errorf("YAML global config: http_client directive is invalid: %w", err)
	}
	if err := ValidateGenerationConfig(&cfg.Generation); err != nil {
		return fmt.Errorf("YAML global config: generation directive is invalid: %w", err)
	}
	if err := ValidateOutputConfig(&cfg.Output); err != nil {
		return fmt.Errorf("YAML global config: output directive is invalid: %w", err)
	}
	return nil
}

// validateFolders resolves the application home folders, honoring
// environment overrides and falling back to ~/.scenescope.
func validateFolders(cfg *Config) error {
	if err := updateHome(cfg); err != nil {
		return fmt.Errorf("failed to update home folder: %w", err)
	}
	if err := updateFolder(&cfg.Scenescope.PluginsFolder, "SCENESCOPE_PLUGINS_FOLDER", "plugins", cfg); err != nil {
		return fmt.Errorf("failed to update plugins folder: %w", err)
	}
	if err := updateFolder(&cfg.Scenescope.ResultsFolder, "SCENESCOPE_RESULTS_FOLDER", "results", cfg); err != nil {
		return fmt.Errorf("failed to update results folder: %w", err)
	}
	if err := updateFolder(&cfg.Scenescope.TempFolder, "SCENESCOPE_TEMP_FOLDER", "tmp", cfg); err != nil {
		return fmt.Errorf("failed to update temp folder: %w", err)
	}
	return nil
}

func updateHome(cfg *Config) error {
	if env := os.Getenv("SCENESCOPE_HOME"); env != "" {
		cfg.Scenescope.HomeFolder = env
	}
	if cfg.Scenescope.HomeFolder == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("unable to determine user home directory: %w", err)
		}
		cfg.Scenescope.HomeFolder = filepath.Join(home, ".scenescope")
	}
	expanded, err := files.ExpandPath(cfg.Scenescope.HomeFolder)
	if err != nil {
		return err
	}
	cfg.Scenescope.HomeFolder = filepath.Clean(expanded)
	return nil
}

func updateFolder(folder *string, envVar, defaultSubFolder string, cfg *Config) error {
	if env := os.Getenv(envVar); env != "" {
		*folder = env
	}
	if *folder == "" {
		*folder = filepath.Join(GetHome(cfg), defaultSubFolder)
	}
	expanded, err := files.ExpandPath(*folder)
	if err != nil {
		return err
	}
	*folder = filepath.Clean(expanded)
	return nil
}

// ValidateHTTPConfig checks if the HTTP configurations have valid values.
func ValidateHTTPConfig(httpConfig *HTTPClient) error {
	if httpConfig == nil {
		return fmt.Errorf("HTTP configuration is nil")
	}
	if httpConfig.RetryCount < 0 || httpConfig.RetryCount > 20 {
		return fmt.Errorf("retry_count must be between 0 and 20: %d", httpConfig.RetryCount)
	}

	durations := map[string]time.Duration{
		"RetryMaxWaitTime": httpConfig.RetryMaxWaitTime,
		"RetryWaitTime":    httpConfig.RetryWaitTime,
		"Timeout":          httpConfig.Timeout,
	}
	for name, duration := range durations {
		if err := validateDuration(duration, name, 10*time.Minute); err != nil {
			return err
		}
	}

	return validateProxy(&httpConfig.Proxy)
}

// ValidateGenerationConfig checks the output-artifact generation limits.
func ValidateGenerationConfig(gen *Generation) error {
	if gen == nil {
		return fmt.Errorf("generation configuration is nil")
	}
	if gen.ImageWidth < 0 || gen.ImageHeight < 0 {
		return fmt.Errorf("image dimensions cannot be negative: %dx%d", gen.ImageWidth, gen.ImageHeight)
	}
	if gen.MaxContentLength < 0 {
		return fmt.Errorf("max_content_length cannot be negative: %d", gen.MaxContentLength)
	}
	return nil
}

// ValidateOutputConfig checks the artifact serialization target settings.
func ValidateOutputConfig(out *Output) error {
	if out == nil {
		return fmt.Errorf("output configuration is nil")
	}
	if out.DefaultFormat == "" {
		return nil
	}
	supported := []string{"json", "sarif", "html"}
	format := strings.ToLower(out.DefaultFormat)
	for _, s := range supported {
		if format == s {
			return nil
		}
	}
	return fmt.Errorf("unsupported default_format %q, expected one of: %s", out.DefaultFormat, strings.Join(supported, ", "))
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %q: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%q duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

// validateProxy checks if the given Proxy settings are valid.
func validateProxy(proxy *Proxy) error {
	if proxy == nil {
		return fmt.Errorf("proxy configuration is nil")
	}

	// If host or port is not set, skip further validation
	if proxy.Host == "" || proxy.Port == 0 {
		return nil
	}

	if proxy.Port < 1 || proxy.Port > 65535 {
		return fmt.Errorf("proxy port is out of range: %d", proxy.Port)
	}
	if strings.ContainsAny(proxy.Host, " /") {
		return fmt.Errorf("proxy host %q is not a valid host name", proxy.Host)
	}
	return nil
}
