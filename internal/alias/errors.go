package alias

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAnAlias is returned when a file is not a recognised shell link.
	ErrNotAnAlias = errors.New("file is not a shell link")
	// ErrNotFound is returned when the alias file itself does not exist.
	ErrNotFound = errors.New("alias file not found")
	// ErrAliasTargetNotFound is returned when a shell link records no target path.
	ErrAliasTargetNotFound = errors.New("alias target not found")
)

// AliasError describes a failure to resolve or create one alias file.
type AliasError struct {
	// Op is "resolve" or "create".
	Op string
	// Path is the alias file path.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *AliasError) Error() string {
	return fmt.Sprintf("alias %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *AliasError) Unwrap() error {
	return e.Err
}

func newAliasError(op, path string, err error) *AliasError {
	return &AliasError{Op: op, Path: path, Err: err}
}
