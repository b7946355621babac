package ports

import "go.trai.ch/riagen/internal/core/domain"

// Hasher defines the interface for computing generation hashes.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// ComputeInputHash hashes the project configuration and the content of every input file.
	ComputeInputHash(project *domain.ProjectConfig, files []string) (string, error)

	// ComputeContentHash hashes generated text.
	ComputeContentHash(content string) string
}
