package gallery

import (
	"errors"
	"fmt"
)

// ErrOutsideSiteRoot is returned when an image cannot be addressed from the site root.
var ErrOutsideSiteRoot = errors.New("path is outside the site root")

// GeneratorErrorType categorizes generator errors.
type GeneratorErrorType int

const (
	// GenerationFailed indicates one directory's manifests or pages could not be produced.
	GenerationFailed GeneratorErrorType = iota
	// WriteFailed indicates a file or directory write failed.
	WriteFailed
	// RenderFailed indicates a page template could not be executed.
	RenderFailed
	// InvalidOptions indicates the generator was misconfigured.
	InvalidOptions
)

// GeneratorError represents generator-specific errors.
type GeneratorError struct {
	// Type categorizes the error.
	Type GeneratorErrorType
	// Message is the error message.
	Message string
	// Path is the output path related to the error (if applicable).
	Path string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *GeneratorError) Error() string {
	if e.Path != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s (path: %s): %v", e.Message, e.Path, e.Cause)
		}
		return fmt.Sprintf("%s (path: %s)", e.Message, e.Path)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *GeneratorError) Unwrap() error {
	return e.Cause
}

func newGeneratorError(typ GeneratorErrorType, message, path string, cause error) *GeneratorError {
	return &GeneratorError{
		Type:    typ,
		Message: message,
		Path:    path,
		Cause:   cause,
	}
}
