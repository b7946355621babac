package ports

import "go.trai.ch/riagen/internal/core/domain"

// MetadataReader reads assembly metadata without executing anything it describes.
//
//go:generate mockgen -source=metadata.go -destination=mocks/mock_metadata.go -package=mocks
type MetadataReader interface {
	// ReadAssembly parses the metadata file at path.
	ReadAssembly(path string) (*domain.Assembly, error)

	// ReadAssemblies reads every path in order and fails on the first error.
	ReadAssemblies(paths []string) ([]*domain.Assembly, error)
}
