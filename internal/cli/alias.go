package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacogips/swag/internal/app"
)

var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Create or inspect .lnk shortcuts to images",
	Long: `Shortcuts let one picture appear in several gallery directories without
copying it. swag reads Windows shell links (.lnk) on every platform.`,
}

var aliasCreateCmd = &cobra.Command{
	Use:   "create <output-dir> <name> <target>",
	Short: "Write <output-dir>/<name>.lnk pointing at <target>",
	Long: `Write a Windows shell link named <name>.lnk into <output-dir> that points at
the image <target>. The target must exist.

Examples:
  swag alias create ~/Pictures/Best sunset ~/Pictures/2023/sunset.jpg`,
	Args: cobra.ExactArgs(3),
	RunE: runAliasCreate,
}

var aliasResolveCmd = &cobra.Command{
	Use:   "resolve <file.lnk>",
	Short: "Print the target of a shell link",
	Args:  cobra.ExactArgs(1),
	RunE:  runAliasResolve,
}

// Alias command flags
var aliasWorkingDir string

func init() {
	aliasCreateCmd.Flags().StringVar(&aliasWorkingDir, FlagWorkingDir, "", DescWorkingDir)

	aliasCmd.AddCommand(aliasCreateCmd)
	aliasCmd.AddCommand(aliasResolveCmd)
}

func runAliasCreate(cmd *cobra.Command, args []string) error {
	path, err := app.CreateAlias(app.CreateAliasOptions{
		OutputDir:  args[0],
		Name:       args[1],
		WorkingDir: aliasWorkingDir,
		TargetPath: args[2],
	})
	if err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("Created %s", path))
	return nil
}

func runAliasResolve(cmd *cobra.Command, args []string) error {
	target, err := app.ResolveAlias(nil, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, target)
	return nil
}
