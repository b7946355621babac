package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/riagen/internal/adapters/watcher"
)

type recorder struct {
	mu      sync.Mutex
	batches [][]string
}

func (r *recorder) record(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, paths)
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}

func startWatch(t *testing.T, paths []string) *recorder {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	done := make(chan error, 1)
	go func() {
		done <- watcher.NewWatcher(20*time.Millisecond, nil).Watch(ctx, paths, rec.record)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watch did not stop after cancellation")
		}
	})
	// fsnotify registration happens asynchronously to the caller.
	time.Sleep(100 * time.Millisecond)
	return rec
}

func TestWatch_WatchedFileChange(t *testing.T) {
	dir := t.TempDir()
	meta := filepath.Join(dir, "Server.meta.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(meta, []byte("a"), 0o600))

	rec := startWatch(t, []string{meta})

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o600))
	require.NoError(t, os.WriteFile(meta, []byte("b"), 0o600))

	require.Eventually(t, func() bool { return len(rec.seen()) > 0 }, 2*time.Second, 10*time.Millisecond)
	assert.NotContains(t, rec.seen(), other)
	assert.Contains(t, rec.seen(), meta)
}

func TestWatch_MissingFileAppears(t *testing.T) {
	dir := t.TempDir()
	meta := filepath.Join(dir, "Late.meta.yaml")

	rec := startWatch(t, []string{meta})
	require.NoError(t, os.WriteFile(meta, []byte("a"), 0o600))

	require.Eventually(t, func() bool { return len(rec.seen()) > 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, rec.seen(), meta)
}

func TestWatch_DirectoryTree(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Models"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "obj"), 0o750))

	rec := startWatch(t, []string{dir})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "obj", "skip.cs"), []byte("x"), 0o600))
	source := filepath.Join(dir, "Models", "Shared.cs")
	require.NoError(t, os.WriteFile(source, []byte("x"), 0o600))

	require.Eventually(t, func() bool {
		for _, p := range rec.seen() {
			if p == source {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
	assert.NotContains(t, rec.seen(), filepath.Join(dir, "obj", "skip.cs"))
}
