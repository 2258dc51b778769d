package watcher

import "time"

// Timer is the subset of time.Timer the loop relies on, abstracted so tests
// can drive the debounce deterministically.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
	Reset(d time.Duration) bool
}

// Clock creates timers. The default implementation delegates to the time
// package; tests inject a manual clock.
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) Timer
}

// NewSystemClock returns the wall-clock backed Clock used outside tests.
func NewSystemClock() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) NewTimer(d time.Duration) Timer {
	return &systemTimer{inner: time.NewTimer(d)}
}

type systemTimer struct {
	inner *time.Timer
}

func (t *systemTimer) C() <-chan time.Time { return t.inner.C }

func (t *systemTimer) Stop() bool { return t.inner.Stop() }

func (t *systemTimer) Reset(d time.Duration) bool { return t.inner.Reset(d) }
