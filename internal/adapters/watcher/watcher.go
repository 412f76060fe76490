// Package watcher implements manifest file watching via fsnotify.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pinfile/pinfile/internal/core/ports"
)

var _ ports.Watcher = (*FileWatcher)(nil)

const (
	eventChannelBuffer = 100

	// debounceWindow coalesces the write bursts editors produce when
	// saving a file into a single event.
	debounceWindow = 200 * time.Millisecond
)

// FileWatcher watches a fixed set of manifest files. It watches their
// parent directories rather than the files themselves, so editors that
// save by rename-replace do not silently drop the watch.
type FileWatcher struct {
	fsWatcher *fsnotify.Watcher
	events    chan ports.WatchEvent
	batches   chan []string
	done      chan struct{}
	debouncer *Debouncer
	watched   map[string]bool
	log       ports.Logger
}

func NewWatcher(log ports.Logger) (*FileWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &FileWatcher{
		fsWatcher: fsWatcher,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
		batches:   make(chan []string, 1),
		done:      make(chan struct{}),
		watched:   make(map[string]bool),
		log:       log,
	}
	return w, nil
}

// Start begins watching the given files. Events are delivered on the
// Events channel until ctx is cancelled, after which the channel closes.
func (w *FileWatcher) Start(ctx context.Context, paths []string) error {
	dirs := make(map[string]bool)
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		w.watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return err
		}
	}

	// The debounce timer fires on its own goroutine, so batches are handed
	// to processEvents instead of the events channel: only processEvents
	// sends on the channel it closes. done unblocks a timer that fires
	// after shutdown.
	w.debouncer = NewDebouncer(debounceWindow, func(paths []string) {
		select {
		case w.batches <- paths:
		case <-w.done:
		}
	})

	go w.processEvents(ctx)
	return nil
}

// Events returns the event channel.
func (w *FileWatcher) Events() <-chan ports.WatchEvent {
	return w.events
}

// Close releases the underlying watch resources.
func (w *FileWatcher) Close() error {
	return w.fsWatcher.Close()
}

func (w *FileWatcher) processEvents(ctx context.Context) {
	defer close(w.events)
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			return
		case paths := <-w.batches:
			for _, path := range paths {
				select {
				case w.events <- ports.WatchEvent{Path: path}:
				case <-ctx.Done():
					return
				}
			}
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.debouncer.Add(event.Name)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn(fmt.Sprintf("watcher: file system error: %v", err))
		}
	}
}

// relevant filters directory noise down to mutations of watched files.
func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if !w.watched[filepath.Clean(event.Name)] {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}
