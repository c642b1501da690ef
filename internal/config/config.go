// Package config loads the hello-mcp server configuration from JSON or YAML.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a configuration document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Config represents the configuration for the hello-mcp server
type Config struct {
	// Server overrides the identity reported during initialization
	Server ServerConfig `json:"server" yaml:"server"`

	// DisabledTools lists tool names to hide from the catalog and reject
	// when invoked
	DisabledTools []string `json:"disabledTools" yaml:"disabledTools"`
}

// ServerConfig represents the server identity reported to clients
type ServerConfig struct {
	Name         string `json:"name" yaml:"name"`
	Version      string `json:"version" yaml:"version"`
	Instructions string `json:"instructions" yaml:"instructions"`
}

// DefaultConfig returns a default configuration with every tool enabled
func DefaultConfig() *Config {
	return &Config{
		DisabledTools: []string{},
	}
}

// FormatForPath returns the configuration format implied by a file path
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile loads configuration from a file, detecting the format from the
// file extension. A missing or empty path yields the default configuration.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	return Load(f, FormatForPath(path))
}

// Load loads configuration from an io.Reader in the given format
func Load(r io.Reader, format Format) (*Config, error) {
	config := DefaultConfig()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading config data: %w", err)
	}

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config JSON: %w", err)
		}
	}

	return config, nil
}

// IsToolDisabled checks if a specific tool name is in the disabled list
func (c *Config) IsToolDisabled(name string) bool {
	for _, disabled := range c.DisabledTools {
		if disabled == name {
			return true
		}
	}
	return false
}
