package gallery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// Manifest file names, written under each directory's json/ folder.
const (
	jsonDirName           = "json"
	ownManifestName       = "images.json"
	recursiveManifestName = "recursive.json"
)

// Manifest is the JSON document consumed by the slideshow page.
type Manifest struct {
	Images []string `json:"images"`
}

// Encode renders the manifest as indented JSON. An empty manifest encodes
// its images as [] rather than null.
func (m Manifest) Encode() ([]byte, error) {
	if m.Images == nil {
		m.Images = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// WebPath converts path to a URL path rooted at siteRoot: forward slashes,
// a leading "/", and "#" escaped as "%23".
func WebPath(siteRoot, path string) (string, error) {
	rel, err := filepath.Rel(siteRoot, path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideSiteRoot, path)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideSiteRoot, path)
	}

	web := "/"
	if rel != "." {
		web += filepath.ToSlash(rel)
	}
	return escapeHash(web), nil
}

func escapeHash(s string) string {
	return strings.ReplaceAll(s, "#", "%23")
}
