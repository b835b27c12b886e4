package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/tacogips/swag/internal/alias"
	"github.com/tacogips/swag/internal/config"
	"github.com/tacogips/swag/internal/debug"
	"github.com/tacogips/swag/internal/gallery"
	"github.com/tacogips/swag/internal/imagetree"
)

// GenerateOptions contains options for gallery generation.
type GenerateOptions struct {
	// RootDir is the directory to scan. It becomes the site root.
	RootDir string
	// WebFolderName is the output folder created under RootDir.
	WebFolderName string
	// Blacklist holds case-insensitive path substrings to skip.
	Blacklist []string
	// MaxDeepImages caps each recursive manifest. Zero disables them.
	MaxDeepImages int
	// DeleteExisting removes an existing web folder after scanning.
	DeleteExisting bool

	// Fs is the filesystem to use. Nil means the OS filesystem.
	Fs afero.Fs
	// ScanObserver is notified for every scanned directory.
	ScanObserver imagetree.Observer
	// GenerateObserver is notified for every generated directory.
	GenerateObserver gallery.Observer
	// Shuffler replaces the random source for recursive samples.
	Shuffler gallery.Shuffler
}

// GenerateResult contains the results of a generation run.
type GenerateResult struct {
	// RootDir is the absolute scanned root.
	RootDir string
	// OutputDir is the web folder path.
	OutputDir string
	// Blacklist is the effective blacklist, web folder included.
	Blacklist []string
	// Directories is the number of scanned directories.
	Directories int
	// Images is the number of images found below the root.
	Images int
	// ScanErrors holds one error per directory that could not be scanned.
	ScanErrors []error
	// Gallery is the generator's result; nil if generation did not start.
	Gallery *gallery.Result
	// Elapsed is the wall time of the run.
	Elapsed time.Duration
	// Cancelled is true if the context was cancelled.
	Cancelled bool
}

// Generate scans opts.RootDir and writes its gallery into the web folder.
// Directory-level failures are collected in the result. If ctx is cancelled
// the partial result is returned together with ctx.Err().
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	start := time.Now()

	if err := validateGenerateOptions(opts); err != nil {
		return nil, err
	}
	root, err := ResolveRootDir(opts.RootDir)
	if err != nil {
		return nil, err
	}

	fs := fsOrDefault(opts.Fs)
	blacklist := BuildBlacklist(opts.WebFolderName, opts.Blacklist)
	result := &GenerateResult{
		RootDir:   root,
		OutputDir: WebFolderPath(root, opts.WebFolderName),
		Blacklist: blacklist.Patterns(),
	}

	genOpts := []gallery.Option{}
	if opts.GenerateObserver != nil {
		genOpts = append(genOpts, gallery.WithObserver(opts.GenerateObserver))
	}
	if opts.Shuffler != nil {
		genOpts = append(genOpts, gallery.WithShuffler(opts.Shuffler))
	}
	gen, err := gallery.NewGenerator(fs, gallery.Options{
		SiteRoot:       root,
		WebFolderName:  opts.WebFolderName,
		MaxDeepImages:  opts.MaxDeepImages,
		DeleteExisting: opts.DeleteExisting,
	}, genOpts...)
	if err != nil {
		return nil, NewValidationError("invalid generator options", err)
	}

	debug.DebugSection("generate")
	debug.DebugValue("root", root)
	debug.DebugValue("web folder", result.OutputDir)
	debug.DebugValue("blacklist", result.Blacklist)
	debug.DebugValue("max deep images", opts.MaxDeepImages)

	tree, err := scanTree(ctx, fs, root, blacklist, opts.ScanObserver)
	if tree != nil {
		summarizeTree(result, tree)
	}
	if err != nil {
		result.Elapsed = time.Since(start)
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			result.Cancelled = true
			return result, ctxErr
		}
		return nil, scanError(root, err)
	}

	galleryResult, err := gen.Generate(ctx, tree)
	result.Gallery = galleryResult
	result.Elapsed = time.Since(start)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			result.Cancelled = true
			return result, ctxErr
		}
		return nil, NewAppError(GenerationFailed, "failed to generate gallery", err)
	}

	debug.Debug("[app] Generate finished in %s", result.Elapsed)
	return result, nil
}

func validateGenerateOptions(opts GenerateOptions) error {
	if err := config.ValidateWebFolderName(opts.WebFolderName); err != nil {
		return NewAppError(InvalidWebFolder, fmt.Sprintf("invalid web folder name %q", opts.WebFolderName), err)
	}
	if opts.MaxDeepImages < 0 {
		return NewValidationError(fmt.Sprintf("max deep images must not be negative, got %d", opts.MaxDeepImages), nil)
	}
	return nil
}

// scanTree scans root with a shell link resolver on fs.
func scanTree(ctx context.Context, fs afero.Fs, root string, blacklist *imagetree.Blacklist, observer imagetree.Observer) (*imagetree.Tree, error) {
	scanOpts := []imagetree.Option{imagetree.WithResolver(alias.NewShellLinks(fs))}
	if observer != nil {
		scanOpts = append(scanOpts, imagetree.WithObserver(observer))
	}
	return imagetree.NewScanner(fs, scanOpts...).Scan(ctx, root, blacklist)
}

func summarizeTree(result *GenerateResult, tree *imagetree.Tree) {
	result.Directories = tree.Len()
	if root := tree.Root(); root != nil {
		result.Images = len(root.Images)
	}
	for _, n := range tree.Failed() {
		result.ScanErrors = append(result.ScanErrors, n.Err)
	}
}
