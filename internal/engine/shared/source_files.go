package shared

import (
	"go.trai.ch/riagen/internal/core/domain"
)

// SourceFiles is the set of source files compiled into both the server and the client.
// Paths compare case-insensitively.
type SourceFiles struct {
	files map[domain.ProjectKey]bool
}

// NewSourceFiles creates the set from shared file paths.
func NewSourceFiles(paths []string) *SourceFiles {
	s := &SourceFiles{files: make(map[domain.ProjectKey]bool, len(paths))}
	for _, p := range paths {
		if p != "" {
			s.files[domain.NewProjectKey(p)] = true
		}
	}
	return s
}

// Intersect returns the client files that the server also compiles, in client order.
func Intersect(clientFiles, serverFiles []string) []string {
	server := NewSourceFiles(serverFiles)
	var out []string
	seen := make(map[domain.ProjectKey]bool)
	for _, f := range clientFiles {
		key := domain.NewProjectKey(f)
		if server.files[key] && !seen[key] {
			seen[key] = true
			out = append(out, f)
		}
	}
	return out
}

// Len returns the number of shared files.
func (s *SourceFiles) Len() int {
	return len(s.files)
}

// Contains reports whether path is shared.
func (s *SourceFiles) Contains(path string) bool {
	return path != "" && s.files[domain.NewProjectKey(path)]
}

// TypeShared reports whether any source file of t is shared.
func (s *SourceFiles) TypeShared(t *domain.Type) bool {
	for _, f := range t.SourceFiles {
		if s.Contains(f) {
			return true
		}
	}
	return false
}
