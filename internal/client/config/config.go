// Package config holds the client configuration: defaults, an optional
// YAML file, and CLI flags layered on top in that order.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the client configuration.
type Config struct {
	Host     string `yaml:"host"`
	Port     uint16 `yaml:"port"`
	Protocol int32  `yaml:"protocol"`

	// Username sent on login. Online-mode authentication is not performed;
	// the name is offered as-is.
	Username string `yaml:"username"`

	// DataDir is where the version manifests (blocks, biomes, entities)
	// live.
	DataDir string `yaml:"data_dir"`

	// StatusOnly stops after the status/ping exchange without logging in.
	StatusOnly bool `yaml:"status_only"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:     "127.0.0.1",
		Port:     25565,
		Protocol: 763,
		Username: "Botty",
		DataDir:  ".",
	}
}

// LoadFile reads a YAML config file into cfg. A missing file leaves cfg
// unchanged.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
