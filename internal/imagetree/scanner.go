// Package imagetree scans a directory hierarchy for images and builds a tree
// in which every node knows every image anywhere below it.
//
// When a directory's own images are found they are recorded on that node at
// depth 0 and on each ancestor at its distance from the directory, so any
// node can later list its whole subtree without walking it again.
package imagetree

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/tacogips/swag/internal/alias"
	"github.com/tacogips/swag/internal/debug"
)

// Scanner builds image trees. A Scanner is not safe for concurrent scans
// because its resolver and the shared blacklist are not.
type Scanner struct {
	fs       afero.Fs
	resolver alias.Resolver
	observer Observer
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithResolver sets the alias resolver used for .lnk entries.
func WithResolver(r alias.Resolver) Option {
	return func(s *Scanner) {
		s.resolver = r
	}
}

// WithObserver attaches the scan observer.
func WithObserver(o Observer) Option {
	return func(s *Scanner) {
		s.observer = o
	}
}

// NewScanner creates a Scanner reading from fs.
func NewScanner(fs afero.Fs, opts ...Option) *Scanner {
	s := &Scanner{fs: fs}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan builds the tree rooted at root. Subdirectories whose full path is
// excluded by blacklist are skipped, as are system directories.
//
// Per-directory failures are recorded on their nodes and reported to the
// observer; they never fail the scan. Scan returns an error only when the
// root does not exist, when an alias is met without a resolver, or when ctx
// is cancelled. In the last case the partial tree is returned as well.
func (s *Scanner) Scan(ctx context.Context, root string, blacklist *Blacklist) (*Tree, error) {
	info, err := s.fs.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, root)
	}
	if blacklist == nil {
		blacklist = NewBlacklist()
	}

	debug.Debug("[imagetree] Scan start: root=%s, blacklist=%v", root, blacklist.Patterns())

	tree := newTree(blacklist)
	if _, err := s.scanDir(ctx, tree, root, NoParent); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		debug.Debug("[imagetree] Scan cancelled after %d directories", tree.Len())
		return tree, err
	}

	debug.Debug("[imagetree] Scan complete: directories=%d, images=%d, failed=%d",
		tree.Len(), len(tree.Root().Images), len(tree.Failed()))
	return tree, nil
}

// scanDir creates the node for dir and populates it. The returned error is
// non-nil only for failures that must abort the whole scan.
func (s *Scanner) scanDir(ctx context.Context, tree *Tree, dir string, parent NodeID) (*Node, error) {
	node := tree.addNode(dir, parent)
	s.notifyStarted(node.Path)

	if ctx.Err() != nil {
		return node, nil
	}

	populated, err := s.populate(ctx, tree, node)
	if err != nil {
		if errors.Is(err, ErrAliasResolverRequired) {
			return node, err
		}
		scanErr := newScanError(node.Path, err)
		node.Err = scanErr
		debug.Debug("[imagetree] %v", scanErr)
		s.notifyFailed(node.Path, scanErr)
		return node, nil
	}

	node.Populated = populated
	return node, nil
}

// populate reads node's directory, commits its own images, then recurses
// into included subdirectories. It reports false without error when
// cancelled.
func (s *Scanner) populate(ctx context.Context, tree *Tree, node *Node) (bool, error) {
	entries, err := afero.ReadDir(s.fs, node.Path)
	if err != nil {
		return false, fmt.Errorf("failed to read directory: %w", err)
	}

	var staged []*ImageItem
	var subdirs []os.FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, entry)
			continue
		}
		if !IsCandidate(entry.Name()) {
			continue
		}
		if ctx.Err() != nil {
			return false, nil
		}

		item, err := s.classify(filepath.Join(node.Path, entry.Name()))
		if err != nil {
			return false, err
		}
		if item != nil && item.IsImage {
			staged = append(staged, item)
		}
	}

	if ctx.Err() != nil {
		return false, nil
	}
	tree.addDescendants(node.ID, staged)

	for _, sub := range subdirs {
		if ctx.Err() != nil {
			return false, nil
		}

		full := filepath.Join(node.Path, sub.Name())
		if tree.Blacklist.Excludes(full) {
			debug.Debug("[imagetree] Skipping blacklisted directory: %s", full)
			continue
		}
		if isSystemDir(sub) {
			debug.Debug("[imagetree] Skipping system directory: %s", full)
			continue
		}

		child, err := s.scanDir(ctx, tree, full, node.ID)
		node.Children = append(node.Children, child.ID)
		if err != nil {
			return false, err
		}
	}

	return ctx.Err() == nil, nil
}

// classify builds the ImageItem for path. Alias resolution failures make the
// entry a non-image instead of failing the directory.
func (s *Scanner) classify(path string) (*ImageItem, error) {
	item, err := NewImageItem(s.fs, path, s.resolver)
	if err == nil {
		return item, nil
	}
	if errors.Is(err, alias.ErrNotAnAlias) ||
		errors.Is(err, alias.ErrNotFound) ||
		errors.Is(err, alias.ErrAliasTargetNotFound) {
		debug.Debug("[imagetree] Ignoring unusable alias %s: %v", path, err)
		return nil, nil
	}
	return nil, err
}

func (s *Scanner) notifyStarted(dir string) {
	if s.observer == nil {
		return
	}
	safeNotify(func() { s.observer.ScanStarted(dir) })
}

func (s *Scanner) notifyFailed(dir string, err error) {
	if s.observer == nil {
		return
	}
	safeNotify(func() { s.observer.ScanFailed(dir, err) })
}
