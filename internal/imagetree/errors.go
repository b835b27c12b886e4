package imagetree

import (
	"errors"
	"fmt"
)

var (
	// ErrDirectoryNotFound is returned when the scan root is missing or not a directory.
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrAliasResolverRequired is returned when an alias is found but no resolver was supplied.
	ErrAliasResolverRequired = errors.New("an alias resolver is required to classify alias files")
	// ErrTreeNotPopulated is returned when a tree is used before its scan completed.
	ErrTreeNotPopulated = errors.New("image tree is not populated")
)

// ScanError records why one directory could not be scanned. The node it
// belongs to stays in the tree, unpopulated.
type ScanError struct {
	// Dir is the directory that failed.
	Dir string
	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	return fmt.Sprintf("failed to scan directory %s: %v", e.Dir, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

func newScanError(dir string, cause error) *ScanError {
	return &ScanError{Dir: dir, Cause: cause}
}
