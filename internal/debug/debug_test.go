package debug

import (
	"bytes"
	"strings"
	"testing"
)

func captureDebug(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetNoColor(true)
	t.Cleanup(func() {
		SetOutput(nil)
		SetDebug(false)
		SetNoColor(false)
	})
	return &buf
}

func TestSetDebug(t *testing.T) {
	SetDebug(false)
	if IsEnabled() {
		t.Error("Debug should be disabled initially")
	}

	SetDebug(true)
	if !IsEnabled() {
		t.Error("Debug should be enabled")
	}

	SetDebug(false)
	if IsEnabled() {
		t.Error("Debug should be disabled again")
	}
}

func TestDebugOutput(t *testing.T) {
	buf := captureDebug(t)
	SetDebug(true)

	Debug("[imagetree] scanning %s", "/photos")

	output := buf.String()
	if !strings.Contains(output, "[DEBUG]") {
		t.Errorf("Output should contain [DEBUG] prefix, got: %s", output)
	}
	if !strings.Contains(output, "[imagetree] scanning /photos") {
		t.Errorf("Output should contain message, got: %s", output)
	}
}

func TestDebugDisabled(t *testing.T) {
	buf := captureDebug(t)
	SetDebug(false)

	Debug("should not appear")
	DebugSection("section")
	DebugValue("key", 1)
	DebugJSON("json", map[string]int{"a": 1})

	if buf.Len() != 0 {
		t.Errorf("Expected no output when disabled, got: %s", buf.String())
	}
}

func TestDebugValueAndSection(t *testing.T) {
	buf := captureDebug(t)
	SetDebug(true)

	DebugSection("[app] Generate workflow start")
	DebugValue("[app] MaxDeepImages", 10000)
	DebugJSON("[app] Blacklist", []string{"tmp", "www"})

	output := buf.String()
	for _, want := range []string{
		"=== [app] Generate workflow start ===",
		"[app] MaxDeepImages = 10000",
		`"tmp"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q, got: %s", want, output)
		}
	}
}
