package gallery

import "github.com/tacogips/swag/internal/debug"

// Observer receives generation notifications for each output directory.
type Observer interface {
	GenerationStarted(dir string)
	GenerationFailed(dir string, err error)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are ignored.
type ObserverFuncs struct {
	Started func(dir string)
	Failed  func(dir string, err error)
}

// GenerationStarted implements Observer.
func (o ObserverFuncs) GenerationStarted(dir string) {
	if o.Started != nil {
		o.Started(dir)
	}
}

// GenerationFailed implements Observer.
func (o ObserverFuncs) GenerationFailed(dir string, err error) {
	if o.Failed != nil {
		o.Failed(dir, err)
	}
}

func safeNotify(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			debug.Debug("[gallery] Observer panicked: %v", r)
		}
	}()
	fn()
}
