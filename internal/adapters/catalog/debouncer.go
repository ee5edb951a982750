package catalog

import (
	"sync"
	"time"
)

// Debouncer collapses bursts of file events into one reload. Editors often
// write a file in several steps; only the state after the burst matters.
type Debouncer struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	window  time.Duration
	fn      func()
}

// NewDebouncer creates a debouncer that runs fn once window has passed
// without another Trigger.
func NewDebouncer(window time.Duration, fn func()) *Debouncer {
	return &Debouncer{window: window, fn: fn}
}

// Trigger schedules fn, pushing back any run already scheduled.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if !d.pending {
		d.timer = nil
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	if d.fn != nil {
		d.fn()
	}
}

// Flush runs a scheduled fn immediately and waits for it.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// Already firing.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	run := d.pending
	d.pending = false
	d.mu.Unlock()

	if run && d.fn != nil {
		d.fn()
	}
}

// Stop drops any scheduled run.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = false
}
