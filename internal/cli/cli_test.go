package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tacogips/swag/internal/app"
	"github.com/tacogips/swag/internal/build"
	"github.com/tacogips/swag/internal/config"
	"github.com/tacogips/swag/internal/imagetree"
)

// resetFlags restores every flag of cmd and its subcommands to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	resetFlags(rootCmd)
	loadedConfig = config.DefaultConfig()
	t.Cleanup(func() {
		stdout, stderr = os.Stdout, os.Stderr
		globalNoColor, globalQuiet, globalDebug = false, false, false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeImages(t *testing.T, root string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("img"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestGenerateCommand(t *testing.T) {
	root := t.TempDir()
	writeImages(t, root, "a.jpg", "Sub/b.png", "Skip/c.gif")

	out, err := executeCommand(t, "generate", root, "web", "skip", "--no-progress")
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, out)
	}

	for _, want := range []string{"Summary", "Images found: 2", "Complete."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	for _, rel := range []string{"index.html", "json/images.json", "Sub/index.html"} {
		if !fileExists(filepath.Join(root, "web", filepath.FromSlash(rel))) {
			t.Errorf("expected web/%s", rel)
		}
	}
	if fileExists(filepath.Join(root, "web", "Skip")) {
		t.Error("blacklisted directory should not be generated")
	}
}

func TestGenerateCommand_ConfigAndFlags(t *testing.T) {
	tests := []struct {
		name          string
		config        string
		args          []string
		wantRecursive bool
	}{
		{
			name:          "default cap",
			wantRecursive: true,
		},
		{
			name:          "config disables recursive manifests",
			config:        "max_deep_images = 0\n",
			wantRecursive: false,
		},
		{
			name:          "flag wins over config",
			config:        "max_deep_images = 0\n",
			args:          []string{"--max-deep-images", "5"},
			wantRecursive: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeImages(t, root, "a.jpg")

			args := []string{"generate", root, "web"}
			if tt.config != "" {
				path := filepath.Join(t.TempDir(), "config.toml")
				if err := os.WriteFile(path, []byte(tt.config), 0644); err != nil {
					t.Fatal(err)
				}
				args = append(args, "--config", path)
			}
			args = append(args, tt.args...)

			if out, err := executeCommand(t, args...); err != nil {
				t.Fatalf("generate failed: %v\n%s", err, out)
			}
			got := fileExists(filepath.Join(root, "web", "json", "recursive.json"))
			if got != tt.wantRecursive {
				t.Errorf("recursive.json exists = %v, want %v", got, tt.wantRecursive)
			}
		})
	}
}

func TestGenerateCommand_MissingConfig(t *testing.T) {
	root := t.TempDir()
	writeImages(t, root, "a.jpg")

	_, err := executeCommand(t, "generate", root, "web", "--config", filepath.Join(root, "none.toml"))
	var cfgErr *config.ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Type != config.ConfigNotFound {
		t.Errorf("error = %v, want ConfigNotFound", err)
	}
}

func TestGenerateCommand_DeleteConfirmation(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		answer    bool
		wantAsked bool
		wantStale bool
	}{
		{name: "confirmed", args: []string{"--delete"}, answer: true, wantAsked: true, wantStale: false},
		{name: "declined", args: []string{"--delete"}, answer: false, wantAsked: true, wantStale: true},
		{name: "yes flag", args: []string{"--delete", "--yes"}, wantAsked: false, wantStale: false},
		{name: "no delete", args: nil, wantAsked: false, wantStale: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeImages(t, root, "a.jpg", "web/stale.txt")

			asked := false
			saved := confirmDelete
			confirmDelete = func(dir string) (bool, error) {
				asked = true
				if dir != filepath.Join(root, "web") {
					t.Errorf("asked about %s", dir)
				}
				return tt.answer, nil
			}
			defer func() { confirmDelete = saved }()

			args := append([]string{"generate", root, "web"}, tt.args...)
			if out, err := executeCommand(t, args...); err != nil {
				t.Fatalf("generate failed: %v\n%s", err, out)
			}

			if asked != tt.wantAsked {
				t.Errorf("asked = %v, want %v", asked, tt.wantAsked)
			}
			if got := fileExists(filepath.Join(root, "web", "stale.txt")); got != tt.wantStale {
				t.Errorf("stale file exists = %v, want %v", got, tt.wantStale)
			}
		})
	}
}

func TestGenerateCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantType app.AppErrorType
		appError bool
	}{
		{name: "missing arguments", args: []string{"generate", "/tmp"}},
		{name: "missing root", args: []string{"generate", "/definitely/not/here", "web"}, wantType: app.DirectoryNotFound, appError: true},
		{name: "bad web folder", args: []string{"generate", "/tmp", "a|b"}, wantType: app.InvalidWebFolder, appError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.appError {
				return
			}
			var appErr *app.AppError
			if !errors.As(err, &appErr) || appErr.Type != tt.wantType {
				t.Errorf("error = %v, want AppError of type %v", err, tt.wantType)
			}
		})
	}
}

func TestGenerateCommand_QuietFromConfig(t *testing.T) {
	root := t.TempDir()
	writeImages(t, root, "a.jpg")
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[output]\nquiet = true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(t, "generate", root, "web", "--config", cfgPath)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if out != "" {
		t.Errorf("quiet run printed:\n%s", out)
	}
}

func TestScanCommand(t *testing.T) {
	root := t.TempDir()
	writeImages(t, root, "a.jpg", "b.png", "Sub/c.gif", "Sub/Deeper/d.bmp")

	out, err := executeCommand(t, "scan", root)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	for _, want := range []string{
		root + " (own 2, deep 2)",
		"  Sub (own 1, deep 1)",
		"    Deeper (own 1, deep 0)",
		"Complete.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = executeCommand(t, "scan", root, "--depth", "1", "--blacklist", "deeper")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if strings.Contains(out, "Deeper") {
		t.Errorf("blacklisted directory printed:\n%s", out)
	}
	if !strings.Contains(out, "  Sub (own 1, deep 0)") {
		t.Errorf("output missing Sub:\n%s", out)
	}
}

func TestFormatTree(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, p := range []string{"/r/a.jpg", "/r/x/b.jpg", "/r/x/y/c.jpg"} {
		if err := afero.WriteFile(fs, p, []byte("img"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	tree, err := imagetree.NewScanner(fs).Scan(context.Background(), "/r", nil)
	if err != nil {
		t.Fatal(err)
	}

	saved := globalNoColor
	globalNoColor = true
	defer func() { globalNoColor = saved }()

	tests := []struct {
		depth int
		lines int
	}{
		{depth: 0, lines: 1},
		{depth: 1, lines: 2},
		{depth: -1, lines: 3},
	}
	for _, tt := range tests {
		got := strings.Count(formatTree(tree, tt.depth), "\n")
		if got != tt.lines {
			t.Errorf("formatTree(depth=%d) printed %d lines, want %d", tt.depth, got, tt.lines)
		}
	}

	tree.Find("/r/x").Err = errors.New("permission denied")
	if out := formatTree(tree, -1); !strings.Contains(out, "x (own 1, deep 1) [failed: permission denied]") {
		t.Errorf("failed marker missing:\n%s", out)
	}
}

func TestAliasCommands(t *testing.T) {
	dir := t.TempDir()
	writeImages(t, dir, "pics/cat.jpg")
	target := filepath.Join(dir, "pics", "cat.jpg")

	out, err := executeCommand(t, "alias", "create", filepath.Join(dir, "links"), "cat", target)
	if err != nil {
		t.Fatalf("alias create failed: %v", err)
	}
	link := filepath.Join(dir, "links", "cat.lnk")
	if !strings.Contains(out, link) {
		t.Errorf("output should name the link:\n%s", out)
	}

	out, err = executeCommand(t, "alias", "resolve", link)
	if err != nil {
		t.Fatalf("alias resolve failed: %v", err)
	}
	if strings.TrimSpace(out) != target {
		t.Errorf("resolve printed %q, want %q", out, target)
	}

	if _, err := executeCommand(t, "alias", "create", dir, "x", filepath.Join(dir, "missing.jpg")); err == nil {
		t.Error("expected error for missing target")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version", "--short")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if strings.TrimSpace(out) != build.Version() {
		t.Errorf("version --short = %q, want %q", out, build.Version())
	}

	out, err = executeCommand(t, "version", "--json")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, `"go_version"`) {
		t.Errorf("version --json = %s", out)
	}
}

func TestProgressReporter(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressReporter(&buf, true)

	p.ScanStarted("/r")
	p.ScanStarted("/r/a")
	p.ScanFailed("/r/a", errors.New("boom"))
	p.GenerationStarted("/r")

	saved := globalNoColor
	globalNoColor = true
	defer func() { globalNoColor = saved }()

	line := p.line()
	for _, want := range []string{"scanned 2", "generated 1", "1 failed", "/r"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}

	done := make(chan struct{})
	close(done)
	if err := p.Run(context.Background(), done); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "scanned 2") {
		t.Errorf("Run should draw a final line, got %q", buf.String())
	}

	var quiet bytes.Buffer
	if err := newProgressReporter(&quiet, false).Run(context.Background(), make(chan struct{})); err != nil {
		t.Fatal(err)
	}
	if quiet.Len() != 0 {
		t.Errorf("disabled reporter wrote %q", quiet.String())
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1234567ns", want: "1ms"},
		{in: "1.234567s", want: "1.23s"},
		{in: "90.6s", want: "1m31s"},
	}
	for _, tt := range tests {
		d, err := time.ParseDuration(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if got := formatElapsed(d); got != tt.want {
			t.Errorf("formatElapsed(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
