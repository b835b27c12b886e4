package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/tacogips/swag/internal/alias"
	"github.com/tacogips/swag/internal/imagetree"
)

// CreateAliasOptions contains options for writing a shell link.
type CreateAliasOptions struct {
	// OutputDir is where the link is written.
	OutputDir string
	// Name is the link's file name without extension.
	Name string
	// WorkingDir is recorded in the link. Empty means the target's directory.
	WorkingDir string
	// TargetPath is the file the link points at.
	TargetPath string
	// Fs is the filesystem to use. Nil means the OS filesystem.
	Fs afero.Fs
}

// CreateAlias writes a shell link and returns its path.
func CreateAlias(opts CreateAliasOptions) (string, error) {
	if strings.TrimSpace(opts.Name) == "" {
		return "", NewValidationError("alias name cannot be empty", nil)
	}
	if strings.TrimSpace(opts.TargetPath) == "" {
		return "", NewValidationError("alias target cannot be empty", nil)
	}

	target, err := filepath.Abs(opts.TargetPath)
	if err != nil {
		return "", NewValidationError("invalid alias target", err)
	}
	workingDir := opts.WorkingDir
	if workingDir == "" {
		workingDir = filepath.Dir(target)
	}

	fs := fsOrDefault(opts.Fs)
	if !imagetree.IsImageExtension(target) {
		return "", NewAppError(AliasFailed, fmt.Sprintf("target %s is not a recognised image", target), nil)
	}
	if _, err := fs.Stat(target); err != nil {
		return "", NewAppError(AliasFailed, fmt.Sprintf("target %s does not exist", target), err)
	}

	path, err := alias.NewShellLinks(fs).CreateAlias(opts.OutputDir, opts.Name, workingDir, target)
	if err != nil {
		return "", NewAppError(AliasFailed, "failed to create alias", err)
	}
	return path, nil
}

// ResolveAlias returns the target of the shell link at path.
func ResolveAlias(fs afero.Fs, path string) (string, error) {
	target, err := alias.NewShellLinks(fsOrDefault(fs)).ResolveAlias(path)
	if err != nil {
		return "", NewAppError(AliasFailed, "failed to resolve alias", err)
	}
	return target, nil
}
