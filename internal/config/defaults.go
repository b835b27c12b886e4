package config

import (
	"os"
	"path/filepath"
)

// DefaultMaxDeepImages is the default cap on recursive manifest entries.
const DefaultMaxDeepImages = 10000

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxDeepImages:   DefaultMaxDeepImages,
		DeleteWebFolder: false,
		Blacklist:       nil,
		Output: OutputConfig{
			Color:    true,
			Progress: true,
			Quiet:    false,
		},
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "swag", "config.toml")
}
