// Package config defines the cmdq configuration and loads it via viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete cmdq configuration
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Shell   ShellConfig   `mapstructure:"shell"`
	Run     RunConfig     `mapstructure:"run"`
}

// LoggingConfig controls diagnostic logging
type LoggingConfig struct {
	// Enabled turns diagnostic logging on or off (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the minimum level to log: debug, info, warn, error (default: info)
	Level string `mapstructure:"level"`
	// Dir is the directory the log file is written to. Empty means stderr.
	Dir string `mapstructure:"dir"`
}

// ShellConfig controls how commands are executed
type ShellConfig struct {
	// Program is the shell executable. Empty selects the platform default
	// (/bin/sh on unix, cmd on windows).
	Program string `mapstructure:"program"`
	// Flag is the argument that makes the shell read a command string.
	// Empty selects the platform default (-c or /C).
	Flag string `mapstructure:"flag"`
}

// RunConfig controls run behavior
type RunConfig struct {
	// AutoClear clears the queue after every run pass (default: false)
	AutoClear bool `mapstructure:"auto_clear"`
}

// Default returns a Config populated with default values
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
		Shell: ShellConfig{},
		Run:   RunConfig{AutoClear: false},
	}
}

// SetDefaults registers all defaults with viper so they apply even when
// no config file exists
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	viper.SetDefault("shell.program", defaults.Shell.Program)
	viper.SetDefault("shell.flag", defaults.Shell.Flag)

	viper.SetDefault("run.auto_clear", defaults.Run.AutoClear)
}

// Load unmarshals the current viper state into a Config
func Load() (*Config, error) {
	cfg := Default()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// ConfigDir returns the directory where the cmdq config file lives
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "cmdq")
}

// ConfigFile returns the default config file path
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
