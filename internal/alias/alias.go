// Package alias resolves and creates shortcut files that point at other files.
//
// The only alias format understood is the Windows shell link (.lnk). Links
// are read and written through an afero filesystem so that the scanner and
// the tests can share one abstraction.
package alias

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/tacogips/swag/internal/debug"
)

// Extension is the reserved file extension denoting an alias file.
const Extension = ".lnk"

// Resolver maps an alias file to the path of the file it points at.
type Resolver interface {
	// ResolveAlias returns the target path of the alias file.
	// Fails with ErrNotAnAlias if the file is not an alias and ErrNotFound
	// if the alias file does not exist.
	ResolveAlias(aliasPath string) (string, error)
}

// Creator writes alias files.
type Creator interface {
	// CreateAlias writes outputDir/name.lnk pointing at targetPath and
	// returns the path of the created alias.
	CreateAlias(outputDir, name, workingDir, targetPath string) (string, error)
}

// ShellLinks implements Resolver and Creator for Windows shell links.
// It holds no per-call state and may be reused for a whole scan.
type ShellLinks struct {
	fs afero.Fs
}

// NewShellLinks creates a ShellLinks backed by fs.
func NewShellLinks(fs afero.Fs) *ShellLinks {
	return &ShellLinks{fs: fs}
}

// ResolveAlias implements Resolver.
func (s *ShellLinks) ResolveAlias(aliasPath string) (string, error) {
	data, err := afero.ReadFile(s.fs, aliasPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", newAliasError("resolve", aliasPath, ErrNotFound)
		}
		return "", newAliasError("resolve", aliasPath, err)
	}

	link, err := parseShellLink(data)
	if err != nil {
		return "", newAliasError("resolve", aliasPath, err)
	}

	if target := link.target(); target != "" {
		debug.Debug("[alias] %s -> %s", aliasPath, target)
		return target, nil
	}

	if link.RelativePath != "" {
		target := filepath.Join(filepath.Dir(aliasPath), hostPath(link.RelativePath))
		debug.Debug("[alias] %s -> %s (relative)", aliasPath, target)
		return target, nil
	}

	return "", newAliasError("resolve", aliasPath, ErrAliasTargetNotFound)
}

// CreateAlias implements Creator. The link records targetPath as its local
// base path and workingDir as its working directory.
func (s *ShellLinks) CreateAlias(outputDir, name, workingDir, targetPath string) (string, error) {
	if name == "" {
		return "", newAliasError("create", outputDir, errors.New("alias name cannot be empty"))
	}
	if targetPath == "" {
		return "", newAliasError("create", outputDir, errors.New("target path cannot be empty"))
	}

	aliasPath := filepath.Join(outputDir, name+Extension)
	data := encodeShellLink(&shellLink{
		LocalBasePath: targetPath,
		WorkingDir:    workingDir,
	})

	if err := s.fs.MkdirAll(outputDir, 0755); err != nil {
		return "", newAliasError("create", aliasPath, err)
	}
	if err := afero.WriteFile(s.fs, aliasPath, data, 0644); err != nil {
		return "", newAliasError("create", aliasPath, err)
	}

	debug.Debug("[alias] Created %s -> %s", aliasPath, targetPath)
	return aliasPath, nil
}

// hostPath converts the backslash separators stored in links to the host's.
func hostPath(p string) string {
	if filepath.Separator == '\\' {
		return p
	}
	return strings.ReplaceAll(p, `\`, "/")
}
