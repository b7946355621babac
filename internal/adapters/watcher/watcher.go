// Package watcher re-runs generation when metadata or project files change.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// skipDirectories are never descended into when watching a directory tree.
var skipDirectories = map[string]bool{
	".git":         true,
	".jj":          true,
	".riagen":      true,
	"node_modules": true,
	"bin":          true,
	"obj":          true,
}

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	window time.Duration
	log    ports.Logger
}

// NewWatcher creates a watcher batching events within window.
func NewWatcher(window time.Duration, log ports.Logger) *Watcher {
	return &Watcher{window: window, log: log}
}

// Watch observes paths until ctx is done. Files are watched through their parent directory,
// directories are watched recursively. onChange runs on the calling goroutine.
func (w *Watcher) Watch(ctx context.Context, paths []string, onChange func(paths []string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}
	defer func() { _ = fsw.Close() }()

	set := newPathSet()
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve watched path"), "path", p)
		}
		info, err := os.Stat(abs)
		switch {
		case err == nil && info.IsDir():
			set.addTree(abs)
			for dir := range walkDirs(abs) {
				if err := fsw.Add(dir); err != nil {
					return zerr.With(zerr.Wrap(err, "failed to watch directory"), "path", dir)
				}
			}
		default:
			// A missing file may appear later, so its directory is watched either way.
			set.addFile(abs)
			if err := fsw.Add(filepath.Dir(abs)); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to watch directory"), "path", filepath.Dir(abs))
			}
		}
	}

	d := NewDebouncer(w.window)
	defer d.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-d.Ready():
			if batch := d.Drain(); len(batch) > 0 {
				onChange(batch)
			}
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&relevantOps == 0 || !set.matches(event.Name) {
				continue
			}
			d.Add(event.Name)
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skipDirectories[info.Name()] {
					for dir := range walkDirs(event.Name) {
						_ = fsw.Add(dir)
					}
				}
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			if w.log != nil {
				w.log.Warn(fmt.Sprintf("file watcher: %v", err))
			}
		}
	}
}

// walkDirs yields root and every directory below it that is not skipped.
func walkDirs(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are not watched
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && skipDirectories[d.Name()] {
				return fs.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// pathSet decides whether an event path belongs to the watched inputs.
// Comparison ignores case to match the project file conventions.
type pathSet struct {
	files map[string]bool
	trees []string
}

func newPathSet() *pathSet {
	return &pathSet{files: make(map[string]bool)}
}

func (s *pathSet) addFile(path string) {
	s.files[strings.ToLower(filepath.Clean(path))] = true
}

func (s *pathSet) addTree(dir string) {
	s.trees = append(s.trees, strings.ToLower(filepath.Clean(dir))+string(filepath.Separator))
}

func (s *pathSet) matches(path string) bool {
	key := strings.ToLower(filepath.Clean(path))
	if s.files[key] {
		return true
	}
	for _, tree := range s.trees {
		if strings.HasPrefix(key, tree) {
			return true
		}
	}
	return false
}
