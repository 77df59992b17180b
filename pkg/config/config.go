// Package config provides configuration loading and management for the
// interpolation tool. It handles loading configuration from YAML files
// and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Processing parameters
	Processing struct {
		// NumWorkers specifies how many goroutines to use for the
		// scatter phase; 1 selects the single-threaded path
		NumWorkers int `yaml:"numWorkers"`
	} `yaml:"processing"`

	// Grid parameters
	Grid struct {
		// Ni, Nj, Nk are the output grid dimensions in cells
		Ni int `yaml:"ni"`
		Nj int `yaml:"nj"`
		Nk int `yaml:"nk"`

		// FillValue is written into cells that receive no contribution
		FillValue float64 `yaml:"fillValue"`
	} `yaml:"grid"`

	// Output parameters
	Output struct {
		// SaveSlices determines whether PNG slices of the result are
		// exported alongside the volume file
		SaveSlices bool `yaml:"saveSlices"`

		// SliceDir is the directory for exported PNG slices
		SliceDir string `yaml:"sliceDir"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Processing.NumWorkers = runtime.NumCPU()

	cfg.Grid.Ni = 64
	cfg.Grid.Nj = 64
	cfg.Grid.Nk = 64
	cfg.Grid.FillValue = 0

	cfg.Output.SaveSlices = false
	cfg.Output.SliceDir = "slices"
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
