package fs

import (
	"bytes"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputWriter = (*Writer)(nil)

// Writer writes generated files, leaving unchanged files untouched so that their timestamps
// do not trigger downstream rebuilds.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteIfChanged writes content to path unless the file already holds exactly that content.
func (w *Writer) WriteIfChanged(path, content string) (bool, error) {
	//nolint:gosec // Path is derived from configuration
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(existing, []byte(content)) {
			return false, nil
		}
	case !errors.Is(err, iofs.ErrNotExist):
		return false, zerr.With(zerr.Wrap(err, "failed to read existing output"), "path", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", path)
	}
	//nolint:gosec // Generated code is meant to be readable
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to write output"), "path", path)
	}
	return true, nil
}

// Exists checks if all paths exist.
func (w *Writer) Exists(paths ...string) (bool, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, zerr.With(zerr.Wrap(err, "failed to stat output"), "path", path)
		}
	}
	return true, nil
}
