package domain

import (
	"path/filepath"
	"strings"
	"unique"
)

// ProjectKey is an interned, case-folded project path used to key per-project caches.
// Two paths that differ only in case map to the same key.
type ProjectKey struct {
	h unique.Handle[string]
}

// NewProjectKey creates the key for a project path. The path is cleaned and lowercased.
func NewProjectKey(path string) ProjectKey {
	if path == "" {
		return ProjectKey{}
	}
	return ProjectKey{h: unique.Make(strings.ToLower(filepath.Clean(path)))}
}

// String returns the folded path.
func (k ProjectKey) String() string {
	var zero unique.Handle[string]
	if k.h == zero {
		return ""
	}
	return k.h.Value()
}

// IsZero reports whether the key was built from an empty path.
func (k ProjectKey) IsZero() bool {
	var zero unique.Handle[string]
	return k.h == zero
}

// MarshalText implements encoding.TextMarshaler.
func (k ProjectKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ProjectKey) UnmarshalText(text []byte) error {
	*k = NewProjectKey(string(text))
	return nil
}
