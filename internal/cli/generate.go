package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tacogips/swag/internal/app"
	"github.com/tacogips/swag/internal/config"
)

var generateCmd = &cobra.Command{
	Use:   "generate <root> <web-folder> [blacklist...]",
	Short: "Scan a directory and write its web gallery",
	Long: `Scan <root> for images and write a static gallery into <root>/<web-folder>.

Every directory below <root> that holds images, directly or further down,
gets an index page, a slideshow page and two JSON image lists: json/images.json
with its own images in name order, and json/recursive.json with a random
sample of every image below it.

Extra arguments and --blacklist values are case-insensitive substrings;
directories whose path contains one of them are skipped. The web folder name
is always skipped.

Examples:
  swag generate ~/Pictures gallery
  swag generate ~/Pictures gallery Private tmp
  swag generate ~/Pictures gallery --max-deep-images 500 --delete --yes`,
	Args: cobra.MinimumNArgs(2),
	RunE: runGenerate,
}

// Generate command flags
var (
	generateBlacklist     []string
	generateMaxDeepImages int
	generateDelete        bool
	generateYes           bool
	generateNoProgress    bool
)

func init() {
	addBlacklistFlag(generateCmd.Flags(), &generateBlacklist)
	generateCmd.Flags().IntVar(&generateMaxDeepImages, FlagMaxDeepImages, config.DefaultMaxDeepImages, DescMaxDeepImages)
	generateCmd.Flags().BoolVar(&generateDelete, FlagDelete, false, DescDelete)
	generateCmd.Flags().BoolVarP(&generateYes, FlagYes, "y", false, DescYes)
	generateCmd.Flags().BoolVar(&generateNoProgress, FlagNoProgress, false, DescNoProgress)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := loadedConfig
	opts := app.GenerateOptions{
		RootDir:        args[0],
		WebFolderName:  args[1],
		Blacklist:      slices.Concat(cfg.Blacklist, args[2:], generateBlacklist),
		MaxDeepImages:  intSetting(cmd, FlagMaxDeepImages, generateMaxDeepImages, cfg.MaxDeepImages),
		DeleteExisting: boolSetting(cmd, FlagDelete, generateDelete, cfg.DeleteWebFolder),
	}

	if opts.DeleteExisting && !generateYes {
		keep, err := confirmWebFolderDeletion(opts.RootDir, opts.WebFolderName)
		if err != nil {
			return err
		}
		opts.DeleteExisting = !keep
	}

	progress := newProgressReporter(stderr, progressEnabled(cfg.Output.Progress, generateNoProgress))
	opts.ScanObserver = progress
	opts.GenerateObserver = progress

	printInfo(fmt.Sprintf("Generating gallery for %s", opts.RootDir))

	result, err := runWithProgress(cmd.Context(), progress, func(ctx context.Context) (*app.GenerateResult, error) {
		return app.Generate(ctx, opts)
	})
	if err != nil && !isCancellation(err) {
		return err
	}

	printGenerateSummary(result)
	return nil
}

// confirmWebFolderDeletion asks before an existing web folder is deleted. It
// reports true when the folder should be kept.
func confirmWebFolderDeletion(rootDir, webFolderName string) (bool, error) {
	root, err := app.ResolveRootDir(rootDir)
	if err != nil {
		return false, err
	}
	dir := app.WebFolderPath(root, webFolderName)
	if _, err := os.Stat(dir); err != nil {
		return false, nil
	}

	ok, err := confirmDelete(dir)
	if err != nil {
		return false, err
	}
	if !ok {
		printWarning(fmt.Sprintf("Keeping %s; existing files will be overwritten", dir))
	}
	return !ok, nil
}

// runWithProgress runs work next to the progress reporter and waits for both.
func runWithProgress[T any](ctx context.Context, progress *progressReporter, work func(context.Context) (T, error)) (T, error) {
	var result T
	done := make(chan struct{})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return progress.Run(gctx, done)
	})
	g.Go(func() error {
		defer close(done)
		var err error
		result, err = work(gctx)
		return err
	})
	return result, g.Wait()
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func printGenerateSummary(result *app.GenerateResult) {
	if result == nil {
		return
	}

	printHeader("Summary")
	printField("Root", result.RootDir)
	printField("Web folder", result.OutputDir)
	printField("Directories scanned", count(result.Directories))
	printField("Images found", count(result.Images))
	if g := result.Gallery; g != nil {
		printField("Directories written", count(g.DirectoriesWritten))
		printField("Manifests written", count(g.ManifestsWritten))
		printField("Pages written", count(g.PagesWritten))
		if g.Unaddressable > 0 {
			printWarning(fmt.Sprintf("%s manifest entries skipped: image lies outside %s",
				count(g.Unaddressable), result.RootDir))
		}
	}
	printField("Elapsed", formatElapsed(result.Elapsed))

	for _, err := range result.ScanErrors {
		printWarning(err.Error())
	}
	if result.Gallery != nil {
		for _, err := range result.Gallery.Errors {
			printWarning(err.Error())
		}
	}

	failures := len(result.ScanErrors)
	if result.Gallery != nil {
		failures += len(result.Gallery.Errors)
	}
	switch {
	case result.Cancelled:
		printWarning("Cancelled.")
	case failures > 0:
		printWarning(fmt.Sprintf("Complete. %s directories failed.", count(failures)))
	default:
		printSuccess("Complete.")
	}
}
