package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "bg3icon.yaml"

// Config holds CLI defaults. Command-line flags override every field.
type Config struct {
	Input        string `yaml:"input"`
	Output       string `yaml:"output"`
	Prefix       string `yaml:"prefix"`
	RandomPrefix bool   `yaml:"random_prefix"`
	Workers      int    `yaml:"workers"`
	Open         bool   `yaml:"open"`
	Manifest     bool   `yaml:"manifest"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{Output: "./bg3icon_out"}
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadOptional loads path if it exists and falls back to Default otherwise.
// An explicitly requested file that is missing is still an error.
func LoadOptional(path string, explicit bool) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil && os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks field ranges
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if c.Prefix != "" && c.RandomPrefix {
		return fmt.Errorf("prefix and random_prefix are mutually exclusive")
	}
	return nil
}
