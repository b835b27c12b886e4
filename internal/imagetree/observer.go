package imagetree

import (
	"github.com/tacogips/swag/internal/debug"
)

// Observer receives scan notifications. It is attached once to the Scanner
// and called for every directory; a panicking observer does not affect the scan.
type Observer interface {
	// ScanStarted is called before a directory is scanned.
	ScanStarted(dir string)
	// ScanFailed is called when a directory could not be scanned.
	ScanFailed(dir string, err error)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are ignored.
type ObserverFuncs struct {
	Started func(dir string)
	Failed  func(dir string, err error)
}

// ScanStarted implements Observer.
func (o ObserverFuncs) ScanStarted(dir string) {
	if o.Started != nil {
		o.Started(dir)
	}
}

// ScanFailed implements Observer.
func (o ObserverFuncs) ScanFailed(dir string, err error) {
	if o.Failed != nil {
		o.Failed(dir, err)
	}
}

func safeNotify(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			debug.Debug("[imagetree] Observer panicked: %v", r)
		}
	}()
	fn()
}
