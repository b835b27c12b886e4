package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/tacogips/swag/internal/config"
	"github.com/tacogips/swag/internal/imagetree"
)

// ResolveRootDir expands ~ and makes root absolute.
func ResolveRootDir(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", NewValidationError("root directory cannot be empty", nil)
	}
	abs, err := config.ExpandPath(root)
	if err != nil {
		return "", NewValidationError("invalid root directory", err)
	}
	return abs, nil
}

// BuildBlacklist creates the scan blacklist from patterns and adds the web
// folder name when not already present, so a gallery never scans its own
// output.
func BuildBlacklist(webFolderName string, patterns []string) *imagetree.Blacklist {
	blacklist := imagetree.NewBlacklist(patterns...)
	if name := strings.TrimSpace(webFolderName); name != "" {
		blacklist.Add(name)
	}
	return blacklist
}

// WebFolderPath returns where the gallery for root is written.
func WebFolderPath(root, webFolderName string) string {
	return filepath.Join(root, strings.TrimSpace(webFolderName))
}

// scanError maps scanner failures to application errors.
func scanError(root string, err error) error {
	if errors.Is(err, imagetree.ErrDirectoryNotFound) {
		return NewAppError(DirectoryNotFound, fmt.Sprintf("root directory %s does not exist", root), err)
	}
	return NewAppError(ScanFailed, "scan failed", err)
}

func fsOrDefault(fs afero.Fs) afero.Fs {
	if fs == nil {
		return afero.NewOsFs()
	}
	return fs
}
