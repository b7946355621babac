package metadata

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/riagen/internal/core/ports"
)

// NodeID is the graft node of the metadata reader.
const NodeID graft.ID = "adapter.metadata"

func init() {
	graft.Register(graft.Node[ports.MetadataReader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.MetadataReader, error) {
			return NewReader(), nil
		},
	})
}
