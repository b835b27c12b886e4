package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Console writers. PersistentPreRunE points them at the command's streams.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// styled renders s with style unless color is disabled.
func styled(style lipgloss.Style, s string) string {
	if globalNoColor {
		return s
	}
	return style.Render(s)
}

// printInfo prints an informational message
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintln(stdout, msg)
}

// printSuccess prints a success message
func printSuccess(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", styled(successStyle, "✓"), msg)
}

// printWarning prints a warning message
func printWarning(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", styled(warningStyle, "⚠"), msg)
}

// printErrorMsg prints an error message to stderr, even when quiet.
func printErrorMsg(msg string) {
	fmt.Fprintf(stderr, "%s %s\n", styled(errorStyle, "✗"), msg)
}

// printHeader prints a section header
func printHeader(title string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "\n%s\n", styled(headerStyle, "=== "+title+" ==="))
}

// printField prints one "label: value" summary line.
func printField(label string, value any) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "  %s %v\n", styled(labelStyle, label+":"), value)
}

// count formats n with thousands separators.
func count(n int) string {
	return humanize.Comma(int64(n))
}

// formatElapsed rounds d for display.
func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(10 * time.Millisecond).String()
	default:
		return d.Round(time.Second).String()
	}
}

// printError prints an error message to stderr
func printError(err error) {
	fmt.Fprintf(stderr, "%s %v\n", styled(errorStyle, "Error:"), err)
}
