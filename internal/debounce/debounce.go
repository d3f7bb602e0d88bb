// Package debounce coalesces bursts of input into a single deferred
// action: each new call cancels the pending one and restarts the delay,
// so only the last scheduled function runs, and only after a full quiet
// period. At most one callback is pending at a time; there is no queue.
package debounce

import (
	"sync"
	"time"
)

// Debouncer schedules functions with last-write-wins semantics.
// Safe for concurrent use.
type Debouncer struct {
	clock Clock
	delay time.Duration

	mu      sync.Mutex
	pending Timer
}

// New returns a Debouncer firing after delay of quiescence. A nil
// clock selects the system clock.
func New(clock Clock, delay time.Duration) *Debouncer {
	if clock == nil {
		clock = SystemClock()
	}
	return &Debouncer{clock: clock, delay: delay}
}

// Schedule arranges for fn to run once the delay elapses without
// another Schedule call. Any previously pending function is cancelled
// first and will never run.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
	}
	d.pending = d.clock.AfterFunc(d.delay, fn)
}

// Cancel stops the pending function if there is one, reporting whether
// a scheduled run was prevented.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil {
		return false
	}
	stopped := d.pending.Stop()
	d.pending = nil
	return stopped
}
