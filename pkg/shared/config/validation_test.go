package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFoldersDefaults(t *testing.T) {
	t.Setenv("SCENESCOPE_HOME", "")
	t.Setenv("SCENESCOPE_PLUGINS_FOLDER", "")
	t.Setenv("SCENESCOPE_RESULTS_FOLDER", "")
	t.Setenv("SCENESCOPE_TEMP_FOLDER", "")

	cfg := &Config{}
	require.NoError(t, validateFolders(cfg))

	home := cfg.Scenescope.HomeFolder
	assert.NotEmpty(t, home)
	assert.Equal(t, filepath.Join(home, "plugins"), cfg.Scenescope.PluginsFolder)
	assert.Equal(t, filepath.Join(home, "results"), cfg.Scenescope.ResultsFolder)
	assert.Equal(t, filepath.Join(home, "tmp"), cfg.Scenescope.TempFolder)
}

func TestValidateFoldersEnvOverrides(t *testing.T) {
	t.Setenv("SCENESCOPE_HOME", "/opt/scenescope")
	t.Setenv("SCENESCOPE_PLUGINS_FOLDER", "/opt/plugins")
	t.Setenv("SCENESCOPE_RESULTS_FOLDER", "")
	t.Setenv("SCENESCOPE_TEMP_FOLDER", "")

	cfg := &Config{}
	cfg.Scenescope.ResultsFolder = "/var/results"
	require.NoError(t, validateFolders(cfg))

	assert.Equal(t, "/opt/scenescope", cfg.Scenescope.HomeFolder)
	assert.Equal(t, "/opt/plugins", cfg.Scenescope.PluginsFolder)
	// file values survive when no env override is set
	assert.Equal(t, "/var/results", cfg.Scenescope.ResultsFolder)
	assert.Equal(t, filepath.Join("/opt/scenescope", "tmp"), cfg.Scenescope.TempFolder)
}

func TestValidateHTTPConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  HTTPClient
		wantErr string
	}{
		{
			name:   "zero value is valid",
			config: HTTPClient{},
		},
		{
			name:   "reasonable settings",
			config: HTTPClient{RetryCount: 3, RetryWaitTime: 5 * time.Second, Timeout: time.Minute},
		},
		{
			name:    "negative retry count",
			config:  HTTPClient{RetryCount: -1},
			wantErr: "retry_count must be between 0 and 20",
		},
		{
			name:    "excessive retry count",
			config:  HTTPClient{RetryCount: 21},
			wantErr: "retry_count must be between 0 and 20",
		},
		{
			name:    "timeout too long",
			config:  HTTPClient{Timeout: 11 * time.Minute},
			wantErr: "duration is too long",
		},
		{
			name:    "negative wait time",
			config:  HTTPClient{RetryWaitTime: -time.Second},
			wantErr: "cannot be negative",
		},
		{
			name:    "proxy port out of range",
			config:  HTTPClient{Proxy: Proxy{Host: "proxy.local", Port: 70000}},
			wantErr: "proxy port is out of range",
		},
		{
			name:    "proxy host with invalid characters",
			config:  HTTPClient{Proxy: Proxy{Host: "proxy local", Port: 8080}},
			wantErr: "not a valid host name",
		},
		{
			name:   "proxy without port is skipped",
			config: HTTPClient{Proxy: Proxy{Host: "proxy local"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHTTPConfig(&tt.config)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateGenerationConfig(t *testing.T) {
	assert.NoError(t, ValidateGenerationConfig(&Generation{}))
	assert.NoError(t, ValidateGenerationConfig(&Generation{ImageWidth: 1280, ImageHeight: 720, MaxContentLength: 30000}))

	err := ValidateGenerationConfig(&Generation{ImageWidth: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image dimensions cannot be negative")

	err = ValidateGenerationConfig(&Generation{MaxContentLength: -5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_content_length cannot be negative")
}

func TestValidateOutputConfig(t *testing.T) {
	assert.NoError(t, ValidateOutputConfig(&Output{}))
	assert.NoError(t, ValidateOutputConfig(&Output{DefaultFormat: "json"}))
	assert.NoError(t, ValidateOutputConfig(&Output{DefaultFormat: "SARIF"}))
	assert.NoError(t, ValidateOutputConfig(&Output{DefaultFormat: "html"}))

	err := ValidateOutputConfig(&Output{DefaultFormat: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported default_format "xml"`)
}
