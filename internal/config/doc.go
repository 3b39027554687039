// Package config loads the mcpdeck application configuration.
//
// Configuration is read with Viper from config.yaml in the current directory
// or in <XDG config home>/mcpdeck/, with MCPDECK_* environment variables
// taking precedence. All keys are optional; a missing config file yields
// defaults.
package config
