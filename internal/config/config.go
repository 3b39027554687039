// Package config provides configuration management for mcpdeck using Viper.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mcpdeck/mcpdeck/internal/paths"
)

// AppName is the application name used for config file naming.
const AppName = "mcpdeck"

// Config represents the top-level configuration structure.
type Config struct {
	// Version is the config schema version.
	Version int `mapstructure:"version" yaml:"version"`

	// WorkspaceRoot overrides the workspace directory (default: cwd).
	WorkspaceRoot string `mapstructure:"workspace_root" yaml:"workspace_root"`

	// CatalogPath overrides the bundled server catalog with an external file.
	CatalogPath string `mapstructure:"catalog_path" yaml:"catalog_path"`

	// TemplatesPath overrides the bundled group templates with an external file.
	TemplatesPath string `mapstructure:"templates_path" yaml:"templates_path"`

	// DefaultGroup is loaded by `group load` when no group key is given.
	DefaultGroup string `mapstructure:"default_group" yaml:"default_group"`

	// Editor overrides $EDITOR for `env edit`.
	Editor string `mapstructure:"editor" yaml:"editor"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), AppName))

	// Environment variable support
	viper.SetEnvPrefix("MCPDECK")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
	viper.SetDefault("default_group", "")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
