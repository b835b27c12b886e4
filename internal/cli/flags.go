package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagConfig        = "config"
	FlagNoColor       = "no-color"
	FlagQuiet         = "quiet"
	FlagDebug         = "debug"
	FlagBlacklist     = "blacklist"
	FlagMaxDeepImages = "max-deep-images"
	FlagDelete        = "delete"
	FlagYes           = "yes"
	FlagNoProgress    = "no-progress"
	FlagDepth         = "depth"
	FlagWebFolder     = "web-folder"
	FlagWorkingDir    = "working-dir"

	// Flag descriptions
	DescConfig        = "Path to config file (default $HOME/.config/swag/config.toml)"
	DescNoColor       = "Disable colored output"
	DescQuiet         = "Suppress non-error output"
	DescDebug         = "Enable debug logging"
	DescBlacklist     = "Skip directories whose path contains this text (case-insensitive, repeatable)"
	DescMaxDeepImages = "Maximum images in each recursive slideshow (0 disables them)"
	DescDelete        = "Delete an existing web folder before writing"
	DescYes           = "Do not ask before deleting the web folder"
	DescNoProgress    = "Disable the progress line"
	DescDepth         = "Maximum tree depth to print (-1 for unlimited)"
	DescWebFolder     = "Web folder name to exclude, as during generate"
	DescWorkingDir    = "Working directory stored in the link (default: the target's directory)"
)

// addBlacklistFlag registers the repeatable --blacklist/-b flag on fs.
func addBlacklistFlag(fs *pflag.FlagSet, p *[]string) {
	fs.StringSliceVarP(p, FlagBlacklist, "b", nil, DescBlacklist)
}

// intSetting returns the flag value when it was given, otherwise the
// configured value.
func intSetting(cmd *cobra.Command, name string, flagValue, configValue int) int {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}

// boolSetting is intSetting for booleans.
func boolSetting(cmd *cobra.Command, name string, flagValue, configValue bool) bool {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}
