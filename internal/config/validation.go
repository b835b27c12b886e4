package config

import (
	"fmt"
	"strings"
	"unicode"
)

// invalidNameChars cannot appear in a web folder name on any supported
// filesystem.
const invalidNameChars = `<>:"/\|?*`

// Validate validates the global configuration.
func Validate(config *Config) error {
	return NewLoader().Validate(config)
}

// ValidateWebFolderName checks that name can be created as a single
// directory directly under the scanned root.
func ValidateWebFolderName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return NewFieldError("web_folder", "web folder name cannot be blank")
	}
	if trimmed == "." || trimmed == ".." {
		return NewFieldError("web_folder", fmt.Sprintf("%q is not a folder name", trimmed))
	}
	for _, r := range name {
		if strings.ContainsRune(invalidNameChars, r) || unicode.IsControl(r) {
			return NewFieldError("web_folder", fmt.Sprintf("invalid character %q in %q", r, name))
		}
	}
	return nil
}
