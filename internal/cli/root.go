package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tacogips/swag/internal/config"
	"github.com/tacogips/swag/internal/debug"
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
	globalConfig  string
)

// loadedConfig is the configuration read by PersistentPreRunE.
var loadedConfig = config.DefaultConfig()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "swag",
	Short: "Static web album generator",
	Long: `swag turns a directory of pictures into a static web gallery.

Use "swag generate <root> <web-folder>" to:
  1. Scan <root> for images, following .lnk shortcuts to images elsewhere
  2. Write an index page, a slideshow page and JSON image lists for every
     directory that holds images, mirrored under <root>/<web-folder>

Serve <root> with any static web server and open /<web-folder>/index.html.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupGlobals,
}

// Execute runs the root command. SIGINT and SIGTERM cancel the running
// operation through its context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)
	rootCmd.PersistentFlags().StringVar(&globalConfig, FlagConfig, "", DescConfig)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(aliasCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupGlobals wires output streams and debug logging, then loads the
// configuration file. Flags given on the command line win over the file.
func setupGlobals(cmd *cobra.Command, args []string) error {
	stdout = cmd.OutOrStdout()
	stderr = cmd.ErrOrStderr()

	debug.SetDebug(globalDebug)
	debug.SetOutput(stderr)

	path := globalConfig
	if path == "" {
		path = config.DefaultConfigPath()
	}
	loader := config.NewLoader()
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed(FlagConfig) {
		cfg, err = loader.Load(path)
	} else {
		cfg, err = loader.LoadOrDefault(path)
	}
	if err != nil {
		return err
	}
	loadedConfig = cfg

	if !cmd.Flags().Changed(FlagNoColor) {
		globalNoColor = !cfg.Output.Color
	}
	if !cmd.Flags().Changed(FlagQuiet) {
		globalQuiet = cfg.Output.Quiet
	}
	debug.SetNoColor(globalNoColor)
	return nil
}
