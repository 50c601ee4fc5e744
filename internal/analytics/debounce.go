package analytics

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of calls per key, running only the last
// function passed within the window. A new call cancels the pending one.
type debouncer struct {
	window time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	stopped bool
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window:  window,
		pending: map[string]*time.Timer{},
	}
}

func (d *debouncer) Call(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if timer, ok := d.pending[key]; ok {
		timer.Stop()
	}
	d.pending[key] = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		delete(d.pending, key)
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			fn()
		}
	})
}

// Stop cancels all pending calls. Further calls become no-ops.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	for key, timer := range d.pending {
		timer.Stop()
		delete(d.pending, key)
	}
}
