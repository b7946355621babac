package watcher

import (
	"slices"
	"sync"
	"time"
	"unique"
)

// Debouncer coalesces rapid file system events into one batch per quiet window.
// Batches are pulled by the owner of the event loop so that consumers never run concurrently.
type Debouncer struct {
	mu      sync.Mutex
	pending map[unique.Handle[string]]struct{}
	timer   *time.Timer
	window  time.Duration
	ready   chan struct{}
}

// NewDebouncer creates a debouncer signalling after window has passed without new paths.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		pending: make(map[unique.Handle[string]]struct{}),
		window:  window,
		ready:   make(chan struct{}, 1),
	}
}

// Add records a changed path and restarts the quiet window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[unique.Make(path)] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.signal)
}

func (d *Debouncer) signal() {
	select {
	case d.ready <- struct{}{}:
	default:
	}
}

// Ready receives a value when a batch is waiting.
func (d *Debouncer) Ready() <-chan struct{} {
	return d.ready
}

// Drain returns the pending paths in sorted order and clears them.
func (d *Debouncer) Drain() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	paths := make([]string, 0, len(d.pending))
	for h := range d.pending {
		paths = append(paths, h.Value())
	}
	clear(d.pending)
	d.timer = nil
	slices.Sort(paths)
	return paths
}

// Stop cancels the window and discards pending paths.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
}
