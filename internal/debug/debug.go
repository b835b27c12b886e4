// Package debug provides the process-wide diagnostic logger.
//
// Messages are only emitted when debug mode is enabled (the --debug flag).
// By convention every message starts with a bracketed component tag such as
// "[imagetree]" or "[gallery]".
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	out     io.Writer = os.Stderr
)

var (
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	timeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
)

// SetDebug enables or disables debug mode.
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
}

// IsEnabled returns whether debug mode is enabled.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output.
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
}

// SetOutput redirects debug output. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// Debug prints a debug message with timestamp.
func Debug(format string, args ...interface{}) {
	emit(fmt.Sprintf(format, args...), nil)
}

// Debugf is an alias for Debug.
func Debugf(format string, args ...interface{}) {
	Debug(format, args...)
}

// DebugSection prints a section header for debug output.
func DebugSection(section string) {
	emit("=== "+section+" ===", &sectionStyle)
}

// DebugValue prints key=value style debug info.
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}
	mu.RLock()
	styled := !noColor
	mu.RUnlock()

	if styled {
		key = keyStyle.Render(key)
	}
	emit(fmt.Sprintf("%s = %v", key, value), nil)
}

// DebugJSON prints structured data as JSON for debugging.
func DebugJSON(key string, v interface{}) {
	if !IsEnabled() {
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Debug("Failed to marshal %s to JSON: %v", key, err)
		return
	}
	emit(fmt.Sprintf("%s:\n%s", key, data), nil)
}

func emit(msg string, style *lipgloss.Style) {
	if !IsEnabled() {
		return
	}

	mu.RLock()
	w := out
	styled := !noColor
	mu.RUnlock()

	timestamp := time.Now().Format("15:04:05.000")
	if !styled {
		fmt.Fprintf(w, "[DEBUG] %s %s\n", timestamp, msg)
		return
	}
	if style != nil {
		msg = style.Render(msg)
	}
	fmt.Fprintf(w, "%s %s %s\n", tagStyle.Render("[DEBUG]"), timeStyle.Render(timestamp), msg)
}
