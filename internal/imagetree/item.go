package imagetree

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/tacogips/swag/internal/alias"
)

// imageExtensions is the fixed set of recognised image extensions.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".jpe":  true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
}

// ImageExtensions returns the recognised image extensions, lower case.
func ImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".jpe", ".png", ".gif", ".bmp"}
}

// IsImageExtension reports whether path has a recognised image extension.
func IsImageExtension(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsAliasExtension reports whether path has the alias extension.
func IsAliasExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), alias.Extension)
}

// IsCandidate reports whether a directory entry is worth classifying.
func IsCandidate(path string) bool {
	return IsImageExtension(path) || IsAliasExtension(path)
}

// ImageItem is one filesystem entry considered for inclusion: an image file
// or an alias to one. It is immutable after construction.
type ImageItem struct {
	// Path is the entry's own path.
	Path string
	// Exists is true if Path exists.
	Exists bool
	// IsAlias is true if Path has the alias extension.
	IsAlias bool
	// TargetPath is the resolved alias target; empty unless IsAlias.
	TargetPath string
	// TargetExists is true if IsAlias and TargetPath exists.
	TargetExists bool
	// ImagePath is Path or TargetPath, whichever was classified as an image.
	ImagePath string
	// IsImage is true iff ImagePath has a recognised image extension.
	IsImage bool
}

// Name returns the entry's file name.
func (i *ImageItem) Name() string {
	return filepath.Base(i.Path)
}

// NewImageItem classifies the entry at path. Alias entries are resolved
// through resolver, which must be non-nil when path is an alias.
func NewImageItem(fs afero.Fs, path string, resolver alias.Resolver) (*ImageItem, error) {
	item := &ImageItem{Path: path}

	info, err := fs.Stat(path)
	if err != nil {
		return item, nil
	}
	item.Exists = true

	if !IsAliasExtension(path) {
		item.classify(path, !info.IsDir())
		return item, nil
	}

	item.IsAlias = true
	if resolver == nil {
		return nil, ErrAliasResolverRequired
	}

	target, err := resolver.ResolveAlias(path)
	if err != nil {
		return nil, err
	}
	item.TargetPath = target

	targetInfo, err := fs.Stat(target)
	if err != nil {
		return item, nil
	}
	item.TargetExists = true
	item.classify(target, !targetInfo.IsDir())
	return item, nil
}

func (i *ImageItem) classify(path string, isFile bool) {
	if isFile && IsImageExtension(path) {
		i.IsImage = true
		i.ImagePath = path
	}
}
