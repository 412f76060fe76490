package ports

import "context"

// WatchEvent signals that a watched manifest changed on disk.
type WatchEvent struct {
	// Path is the file that changed.
	Path string
}

// Watcher observes manifest files for changes.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given files. Events are delivered on the
	// channel returned by Events until ctx is cancelled.
	Start(ctx context.Context, paths []string) error

	// Events returns the event channel.
	Events() <-chan WatchEvent

	// Close releases the underlying watch resources.
	Close() error
}
