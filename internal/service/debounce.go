package service

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid triggers into one delayed call: each Trigger
// cancels the pending one, so only the most recent function runs once the
// delay elapses. The handler that owns the settings input owns its
// debouncer; the timer is not a shared global.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a new Debouncer.
// Parameters:
//   - delay: quiet period before a triggered function runs.
// Returns:
//   - *Debouncer: initialized debouncer.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the delay, replacing any pending call.
// Parameters:
//   - fn: function to run; executed on a timer goroutine.
// Returns: none.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call. Safe to call multiple times.
// Parameters: none.
// Returns: none.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
