// Package fs provides file system adapters for walking, resolving, hashing and writing files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files below root, skipping version control directories and any entry
// whose name matches one of ignores (case-insensitive glob). Paths are yielded with root as prefix.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				// Unreadable entries below root are skipped.
				return nil
			}
			if path != root {
				if skip, action := w.shouldSkip(d, ignores); skip {
					return action
				}
			}
			if d.IsDir() {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// shouldSkip reports whether the entry is skipped and the action to return from WalkDir.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) (bool, error) {
	name := d.Name()
	if d.IsDir() && (name == ".git" || name == ".jj" || name == ".vs") {
		return true, filepath.SkipDir
	}
	lower := strings.ToLower(name)
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(strings.ToLower(ignore), lower); matched {
			if d.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}
	return false, nil
}
