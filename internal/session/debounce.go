package session

import (
	"sync"
	"time"
)

// DefaultAutosaveDelay is the debounce window applied to autosaves so that a
// burst of keystrokes coalesces into a single write.
const DefaultAutosaveDelay = 2 * time.Second

// Debouncer owns a single-slot cancelable timer. Arming it replaces any
// pending timer, so at most one scheduled invocation exists at a time.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a Debouncer that invokes fn after delay once armed.
// A non-positive delay falls back to DefaultAutosaveDelay.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Arm schedules fn after the configured delay, canceling any pending timer.
func (d *Debouncer) Arm() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Cancel drops any pending timer without invoking fn.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels any pending timer and prevents future arming. Used on engine
// teardown so no write fires against a torn-down engine.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}
