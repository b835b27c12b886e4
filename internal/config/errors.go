package config

import "fmt"

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType int

const (
	// ConfigNotFound indicates the configuration file was not found.
	ConfigNotFound ConfigErrorType = iota
	// ConfigInvalid indicates the file could not be read or is not valid TOML.
	ConfigInvalid
	// ConfigValidationFailed indicates a value is out of range.
	ConfigValidationFailed
)

// ConfigError represents a configuration-related error.
type ConfigError struct {
	// Type is the error type.
	Type ConfigErrorType
	// Message is the error message.
	Message string
	// File is the configuration file path, empty for values not read from a file.
	File string
	// Field is the TOML key that caused the error.
	Field string
	// Cause is the underlying error if any.
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	where := "configuration"
	if e.File != "" {
		where = "configuration " + e.File
	}
	if e.Field != "" {
		where += " [" + e.Field + "]"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", where, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new ConfigError.
func NewConfigError(typ ConfigErrorType, file, message string, cause error) *ConfigError {
	return &ConfigError{
		Type:    typ,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// NewFieldError creates a validation ConfigError for one key.
func NewFieldError(field, message string) *ConfigError {
	return &ConfigError{
		Type:    ConfigValidationFailed,
		Field:   field,
		Message: message,
	}
}
