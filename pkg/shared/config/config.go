package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Config is the root of the YAML configuration for the core and all plugins.
type Config struct {
	Scenescope Scenescope `yaml:"scenescope"`
	Logger     Logger     `yaml:"logger"`
	HTTPClient HTTPClient `yaml:"http_client"`
	Gemini     Gemini     `yaml:"gemini"`
	Generation Generation `yaml:"generation"`
	Output     Output     `yaml:"output"`
	Storage    Storage    `yaml:"storage"`
	Advanced   Advanced   `yaml:"advanced"`
}

// Scenescope holds the working folders of the application.
type Scenescope struct {
	HomeFolder    string `yaml:"home_folder"`
	PluginsFolder string `yaml:"plugins_folder"`
	ResultsFolder string `yaml:"results_folder"`
	TempFolder    string `yaml:"temp_folder"`
}

type Logger struct {
	Level           string `yaml:"level"`
	File            string `yaml:"file"`
	DisableTime     *bool  `yaml:"disable_time"`
	JSONFormat      *bool  `yaml:"json_format"`
	IncludeLocation *bool  `yaml:"include_location"`
}

type HTTPClient struct {
	Debug            *bool           `yaml:"debug"`
	RetryCount       int             `yaml:"retry_count"`
	RetryWaitTime    time.Duration   `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration   `yaml:"retry_max_wait_time"`
	Timeout          time.Duration   `yaml:"timeout"`
	TLSClientConfig  TLSClientConfig `yaml:"tls_client_config"`
	Proxy            Proxy           `yaml:"proxy"`
}

type TLSClientConfig struct {
	Verify *bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Gemini holds credential and model selection for the analysis client.
type Gemini struct {
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Endpoint string `yaml:"endpoint"`
}

// Generation holds output-artifact generation limits.
type Generation struct {
	GenerateImages   *bool `yaml:"generate_images"`
	ImageWidth       int   `yaml:"image_width"`
	ImageHeight      int   `yaml:"image_height"`
	MaxContentLength int   `yaml:"max_content_length"`
}

type Output struct {
	DefaultFormat   string `yaml:"default_format"`
	OutputDirectory string `yaml:"output_directory"`
}

// Storage holds the optional object-storage credential bundle for artifact uploads.
type Storage struct {
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

// Advanced holds cosmetic defaults for storyboard generation.
type Advanced struct {
	DefaultCameraAngle    string `yaml:"default_camera_angle"`
	DefaultCameraMovement string `yaml:"default_camera_movement"`
	SceneLabelTemplate    string `yaml:"scene_label_template"`
}

// ValidateConfigPath checks that the given path points to a regular file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes a YAML file into the provided structure.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the main configuration file. A missing file is not an
// error when the default path is used: the application then runs on
// defaults and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, err
	}

	return config, nil
}
