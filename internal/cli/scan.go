package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tacogips/swag/internal/app"
	"github.com/tacogips/swag/internal/imagetree"
)

var scanCmd = &cobra.Command{
	Use:   "scan <root> [blacklist...]",
	Short: "Scan a directory and print its image tree",
	Long: `Scan <root> the same way generate does and print the resulting tree
without writing anything. Each line shows a directory with the number of
images directly in it ("own") and further below it ("deep").

Examples:
  swag scan ~/Pictures
  swag scan ~/Pictures --depth 1 --web-folder gallery`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

// Scan command flags
var (
	scanBlacklist  []string
	scanDepth      int
	scanWebFolder  string
	scanNoProgress bool
)

func init() {
	addBlacklistFlag(scanCmd.Flags(), &scanBlacklist)
	scanCmd.Flags().IntVar(&scanDepth, FlagDepth, -1, DescDepth)
	scanCmd.Flags().StringVar(&scanWebFolder, FlagWebFolder, "", DescWebFolder)
	scanCmd.Flags().BoolVar(&scanNoProgress, FlagNoProgress, false, DescNoProgress)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := loadedConfig
	progress := newProgressReporter(stderr, progressEnabled(cfg.Output.Progress, scanNoProgress))
	opts := app.ScanOptions{
		RootDir:       args[0],
		WebFolderName: scanWebFolder,
		Blacklist:     slices.Concat(cfg.Blacklist, args[1:], scanBlacklist),
		Observer:      progress,
	}

	result, err := runWithProgress(cmd.Context(), progress, func(ctx context.Context) (*app.ScanResult, error) {
		return app.Scan(ctx, opts)
	})
	if err != nil && !isCancellation(err) {
		return err
	}

	if !globalQuiet {
		fmt.Fprint(stdout, formatTree(result.Tree, scanDepth))
	}
	printField("Directories", count(result.Tree.Len()))
	printField("Images", count(len(result.Tree.Root().Images)))
	printField("Elapsed", formatElapsed(result.Elapsed))
	if result.Cancelled {
		printWarning("Cancelled.")
	} else if failed := len(result.Tree.Failed()); failed > 0 {
		printWarning(fmt.Sprintf("Complete. %s directories failed.", count(failed)))
	} else {
		printSuccess("Complete.")
	}
	return nil
}

// formatTree renders tree as an indented listing down to maxDepth levels
// below the root; a negative maxDepth prints everything.
func formatTree(tree *imagetree.Tree, maxDepth int) string {
	var b strings.Builder
	tree.Walk(func(n *imagetree.Node, level int) bool {
		name := n.Name()
		if n.IsRoot() {
			name = n.Path
		}
		fmt.Fprintf(&b, "%s%s %s", strings.Repeat("  ", level), name,
			styled(mutedStyle, fmt.Sprintf("(own %s, deep %s)", count(n.OwnCount()), count(n.DeepCount()))))
		switch {
		case n.Err != nil:
			fmt.Fprintf(&b, " %s", styled(errorStyle, "[failed: "+errorCause(n.Err)+"]"))
		case !n.Populated:
			fmt.Fprintf(&b, " %s", styled(warningStyle, "[incomplete]"))
		}
		b.WriteByte('\n')
		return maxDepth < 0 || level < maxDepth
	})
	return b.String()
}

// errorCause drops the directory prefix a ScanError adds; the tree line
// already names the directory.
func errorCause(err error) string {
	var scanErr *imagetree.ScanError
	if errors.As(err, &scanErr) && scanErr.Cause != nil {
		return scanErr.Cause.Error()
	}
	return err.Error()
}
