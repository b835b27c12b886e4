package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"

	"github.com/tacogips/swag/internal/debug"
)

// Loader defines the interface for loading configuration files.
type Loader interface {
	// Load loads configuration from the specified file path.
	Load(path string) (*Config, error)
	// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
	LoadOrDefault(path string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// FileLoader implements Loader for TOML files.
type FileLoader struct {
	fs afero.Fs
}

// NewLoader creates a FileLoader reading from the OS filesystem.
func NewLoader() Loader {
	return NewFileLoader(afero.NewOsFs())
}

// NewFileLoader creates a FileLoader reading from fs.
func NewFileLoader(fs afero.Fs) *FileLoader {
	return &FileLoader{fs: fs}
}

// Load decodes the TOML file at path over the defaults, so keys missing from
// the file keep their default values. Unknown keys are rejected.
func (l *FileLoader) Load(path string) (*Config, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewConfigError(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigError(ConfigInvalid, path, "failed to read configuration file", err)
	}

	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, NewConfigError(ConfigInvalid, path, "invalid TOML syntax", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, NewConfigError(ConfigInvalid, path,
			fmt.Sprintf("unknown keys: %s", strings.Join(keys, ", ")), nil)
	}

	if err := l.Validate(cfg); err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			cfgErr.File = path
		}
		return nil, err
	}

	debug.Debug("[config] Loaded %s: %+v", path, *cfg)
	return cfg, nil
}

// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
func (l *FileLoader) LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	cfg, err := l.Load(path)
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) && cfgErr.Type == ConfigNotFound {
			debug.Debug("[config] %s not found, using defaults", path)
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	if config.MaxDeepImages < 0 {
		return NewFieldError("max_deep_images",
			fmt.Sprintf("must not be negative, got %d", config.MaxDeepImages))
	}
	for i, pattern := range config.Blacklist {
		if strings.TrimSpace(pattern) == "" {
			return NewFieldError(fmt.Sprintf("blacklist[%d]", i), "pattern cannot be blank")
		}
	}
	return nil
}

// ExpandPath expands ~ to the home directory and makes path absolute.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		if path[1] == filepath.Separator || path[1] == '/' {
			return filepath.Join(homeDir, path[2:]), nil
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	return absPath, nil
}
