package watcher

import (
	"sync"
	"time"

	"github.com/pinfile/pinfile/internal/core/domain"
)

// Debouncer coalesces rapid file system events into batched callbacks.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[domain.InternedString]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)
}

// NewDebouncer creates a debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[domain.InternedString]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add records a changed path and arms the debounce timer.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[domain.NewInternedString(path)] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// Flush delivers any pending paths immediately.
func (d *Debouncer) Flush() {
	d.fire()
}

func (d *Debouncer) fire() {
	d.mu.Lock()

	if len(d.pending) == 0 {
		d.timer = nil
		d.mu.Unlock()
		return
	}

	paths := make([]string, 0, len(d.pending))
	for handle := range d.pending {
		paths = append(paths, handle.String())
	}
	d.pending = make(map[domain.InternedString]struct{})
	d.timer = nil
	d.mu.Unlock()

	// Invoked outside the lock so the callback may call Add again.
	d.callback(paths)
}
