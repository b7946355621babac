package ports

import "go.trai.ch/riagen/internal/core/domain"

// GenerationStore defines the interface for storing the state of previous generation passes.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type GenerationStore interface {
	// Get retrieves the record for a client project.
	// Returns nil, nil if not found.
	Get(project string) (*domain.GenerationRecord, error)

	// Put stores the record.
	Put(record domain.GenerationRecord) error

	// Delete removes the record for a client project.
	Delete(project string) error
}
