package config

// Config is the swag configuration file.
type Config struct {
	// MaxDeepImages caps every recursive manifest. Zero disables them.
	MaxDeepImages int `toml:"max_deep_images"`
	// DeleteWebFolder removes an existing web folder before generating.
	DeleteWebFolder bool `toml:"delete_web_folder"`
	// Blacklist holds extra case-insensitive path substrings to skip.
	Blacklist []string `toml:"blacklist"`
	// Output configures console output.
	Output OutputConfig `toml:"output"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// Color enables colored terminal output.
	Color bool `toml:"color"`
	// Progress shows a live progress line while scanning and generating.
	Progress bool `toml:"progress"`
	// Quiet suppresses non-error output.
	Quiet bool `toml:"quiet"`
}
