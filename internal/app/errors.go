package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// DirectoryNotFound indicates the root directory is missing or not a directory.
	DirectoryNotFound AppErrorType = iota
	// InvalidWebFolder indicates the web folder name cannot be used.
	InvalidWebFolder
	// ScanFailed indicates the scan could not run at all.
	ScanFailed
	// GenerationFailed indicates the gallery could not be written.
	GenerationFailed
	// ValidationFailed indicates invalid options.
	ValidationFailed
	// AliasFailed indicates an alias could not be created or resolved.
	AliasFailed
)

// String returns a short name for the error type.
func (t AppErrorType) String() string {
	switch t {
	case DirectoryNotFound:
		return "directory not found"
	case InvalidWebFolder:
		return "invalid web folder"
	case ScanFailed:
		return "scan failed"
	case GenerationFailed:
		return "generation failed"
	case ValidationFailed:
		return "validation failed"
	case AliasFailed:
		return "alias failed"
	default:
		return fmt.Sprintf("AppErrorType(%d)", int(t))
	}
}

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}
