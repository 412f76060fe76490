package watcher_test

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinfile/pinfile/internal/adapters/watcher"
)

type recorder struct {
	mu      sync.Mutex
	batches [][]string
	fired   chan struct{}
}

func newRecorder() *recorder {
	return &recorder{fired: make(chan struct{}, 10)}
}

func (r *recorder) record(paths []string) {
	r.mu.Lock()
	sort.Strings(paths)
	r.batches = append(r.batches, paths)
	r.mu.Unlock()
	r.fired <- struct{}{}
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.fired:
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer did not fire")
	}
}

func (r *recorder) snapshot() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.batches...)
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	rec := newRecorder()
	d := watcher.NewDebouncer(20*time.Millisecond, rec.record)

	d.Add("a.txt")
	d.Add("b.txt")
	d.Add("a.txt")

	rec.wait(t)
	batches := rec.snapshot()
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"a.txt", "b.txt"}, batches[0])
}

func TestDebouncer_SeparateWindows(t *testing.T) {
	rec := newRecorder()
	d := watcher.NewDebouncer(10*time.Millisecond, rec.record)

	d.Add("a.txt")
	rec.wait(t)

	d.Add("b.txt")
	rec.wait(t)

	batches := rec.snapshot()
	require.Len(t, batches, 2)
	assert.Equal(t, []string{"a.txt"}, batches[0])
	assert.Equal(t, []string{"b.txt"}, batches[1])
}

func TestDebouncer_FlushDeliversImmediately(t *testing.T) {
	rec := newRecorder()
	d := watcher.NewDebouncer(time.Hour, rec.record)

	d.Add("a.txt")
	d.Flush()

	rec.wait(t)
	batches := rec.snapshot()
	require.Len(t, batches, 1)
	assert.Equal(t, []string{"a.txt"}, batches[0])
}

func TestDebouncer_FlushWithoutPendingIsNoop(t *testing.T) {
	rec := newRecorder()
	d := watcher.NewDebouncer(time.Hour, rec.record)

	d.Flush()

	select {
	case <-rec.fired:
		t.Fatal("unexpected callback")
	case <-time.After(50 * time.Millisecond):
	}
}
