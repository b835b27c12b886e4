package imagetree

import (
	"strings"

	"golang.org/x/text/cases"
)

// Blacklist is an ordered set of substrings. A path containing any of them,
// compared case-insensitively, is excluded from scanning.
//
// One Blacklist is shared by reference across every node of a scan. It is
// append-only and not safe for concurrent mutation.
type Blacklist struct {
	patterns []string
	folded   []string
}

// NewBlacklist creates a Blacklist from patterns. Blank patterns are dropped.
func NewBlacklist(patterns ...string) *Blacklist {
	b := &Blacklist{}
	for _, p := range patterns {
		b.Add(p)
	}
	return b
}

// Add appends pattern unless an equal pattern (trimmed, case-insensitive) is
// already present. It reports whether the pattern was added.
func (b *Blacklist) Add(pattern string) bool {
	if strings.TrimSpace(pattern) == "" {
		return false
	}
	key := fold(strings.TrimSpace(pattern))
	for _, p := range b.patterns {
		if fold(strings.TrimSpace(p)) == key {
			return false
		}
	}
	b.patterns = append(b.patterns, pattern)
	b.folded = append(b.folded, fold(pattern))
	return true
}

// Excludes reports whether path contains any pattern.
func (b *Blacklist) Excludes(path string) bool {
	if b == nil || len(b.folded) == 0 {
		return false
	}
	p := fold(path)
	for _, f := range b.folded {
		if strings.Contains(p, f) {
			return true
		}
	}
	return false
}

// Patterns returns a copy of the patterns in insertion order.
func (b *Blacklist) Patterns() []string {
	if b == nil {
		return nil
	}
	return append([]string(nil), b.patterns...)
}

// Len returns the number of patterns.
func (b *Blacklist) Len() int {
	if b == nil {
		return 0
	}
	return len(b.patterns)
}

func fold(s string) string {
	return cases.Fold().String(s)
}
