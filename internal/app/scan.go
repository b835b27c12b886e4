package app

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/afero"

	"github.com/tacogips/swag/internal/imagetree"
)

// ScanOptions contains options for a scan without generation.
type ScanOptions struct {
	// RootDir is the directory to scan.
	RootDir string
	// WebFolderName, when set, is blacklisted like during generation.
	WebFolderName string
	// Blacklist holds case-insensitive path substrings to skip.
	Blacklist []string
	// Fs is the filesystem to use. Nil means the OS filesystem.
	Fs afero.Fs
	// Observer is notified for every scanned directory.
	Observer imagetree.Observer
}

// ScanResult contains the scanned tree.
type ScanResult struct {
	// RootDir is the absolute scanned root.
	RootDir string
	// Tree is the scanned tree; partial when Cancelled.
	Tree *imagetree.Tree
	// Elapsed is the wall time of the scan.
	Elapsed time.Duration
	// Cancelled is true if the context was cancelled.
	Cancelled bool
}

// Scan builds the image tree for opts.RootDir.
func Scan(ctx context.Context, opts ScanOptions) (*ScanResult, error) {
	start := time.Now()

	root, err := ResolveRootDir(opts.RootDir)
	if err != nil {
		return nil, err
	}

	fs := fsOrDefault(opts.Fs)
	tree, err := scanTree(ctx, fs, root, BuildBlacklist(opts.WebFolderName, opts.Blacklist), opts.Observer)
	result := &ScanResult{
		RootDir: root,
		Tree:    tree,
		Elapsed: time.Since(start),
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			result.Cancelled = true
			return result, ctxErr
		}
		return nil, scanError(root, err)
	}
	return result, nil
}
