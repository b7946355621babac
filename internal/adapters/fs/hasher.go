package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes XXHash digests of generation inputs and outputs.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return hasher.Sum64(), nil
}

// ComputeInputHash hashes the project settings and the content of every file. Files are hashed
// in sorted order; a missing file contributes its path and a marker so that its later
// appearance changes the hash.
func (h *Hasher) ComputeInputHash(project *domain.ProjectConfig, files []string) (string, error) {
	hasher := xxhash.New()
	h.hashProject(project, hasher)

	sorted := slices.Clone(files)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	for _, path := range sorted {
		_, _ = hasher.WriteString(path)
		_, _ = hasher.Write([]byte{0})

		sum, err := h.ComputeFileHash(path)
		if err != nil {
			if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
				_, _ = hasher.Write([]byte{1})
				continue
			}
			return "", err
		}
		if err := binary.Write(hasher, binary.LittleEndian, sum); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}
	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// ComputeContentHash hashes generated text.
func (h *Hasher) ComputeContentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

func (h *Hasher) hashProject(p *domain.ProjectConfig, hasher *xxhash.Digest) {
	fields := []string{
		p.ClientProject,
		p.Language,
		p.RootNamespace,
		strconv.FormatBool(p.UseFullTypeNames),
		string(p.TargetPlatform),
		p.OutputDir,
		p.GeneratedCodeDir,
	}
	for _, f := range fields {
		_, _ = hasher.WriteString(f)
		_, _ = hasher.Write([]byte{0})
	}
	for _, list := range [][]string{p.ServerAssemblies, p.ClientReferences, p.SystemSearchPaths} {
		for _, item := range list {
			_, _ = hasher.WriteString(item)
			_, _ = hasher.Write([]byte{0})
		}
		_, _ = hasher.Write([]byte{0})
	}
}
