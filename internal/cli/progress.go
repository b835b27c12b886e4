package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/atomic"
)

const progressInterval = 200 * time.Millisecond

// progressReporter counts scan and generation notifications and redraws a
// single status line. Observers run on the worker goroutine while the line is
// drawn from Run, so every counter is atomic.
type progressReporter struct {
	w       io.Writer
	enabled bool

	scanned   *atomic.Int64
	scanFails *atomic.Int64
	generated *atomic.Int64
	genFails  *atomic.Int64
	current   *atomic.String
}

func newProgressReporter(w io.Writer, enabled bool) *progressReporter {
	return &progressReporter{
		w:         w,
		enabled:   enabled,
		scanned:   atomic.NewInt64(0),
		scanFails: atomic.NewInt64(0),
		generated: atomic.NewInt64(0),
		genFails:  atomic.NewInt64(0),
		current:   atomic.NewString(""),
	}
}

// progressEnabled reports whether a live progress line should be drawn.
func progressEnabled(configured, disabledByFlag bool) bool {
	return configured && !disabledByFlag && !globalQuiet && isTerminal(os.Stderr)
}

// ScanStarted implements imagetree.Observer.
func (p *progressReporter) ScanStarted(dir string) {
	p.scanned.Inc()
	p.current.Store(dir)
}

// ScanFailed implements imagetree.Observer.
func (p *progressReporter) ScanFailed(dir string, err error) {
	p.scanFails.Inc()
}

// GenerationStarted implements gallery.Observer.
func (p *progressReporter) GenerationStarted(dir string) {
	p.generated.Inc()
	p.current.Store(dir)
}

// GenerationFailed implements gallery.Observer.
func (p *progressReporter) GenerationFailed(dir string, err error) {
	p.genFails.Inc()
}

// Run redraws the status line until done is closed or ctx is cancelled.
func (p *progressReporter) Run(ctx context.Context, done <-chan struct{}) error {
	if !p.enabled {
		return nil
	}

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			p.draw()
			fmt.Fprintln(p.w)
			return nil
		case <-ctx.Done():
			fmt.Fprintln(p.w)
			return nil
		case <-ticker.C:
			p.draw()
		}
	}
}

func (p *progressReporter) draw() {
	fmt.Fprintf(p.w, "\r\033[K%s", p.line())
}

func (p *progressReporter) line() string {
	line := fmt.Sprintf("scanned %s", count(int(p.scanned.Load())))
	if n := p.generated.Load(); n > 0 {
		line += fmt.Sprintf(", generated %s", count(int(n)))
	}
	if n := p.scanFails.Load() + p.genFails.Load(); n > 0 {
		line += fmt.Sprintf(", %s failed", count(int(n)))
	}
	if dir := p.current.Load(); dir != "" {
		line += " " + styled(mutedStyle, dir)
	}
	return line
}
