package state

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/riagen/internal/core/ports"
)

// NodeID is the graft node of the generation store.
const NodeID graft.ID = "adapter.generation_store"

func init() {
	graft.Register(graft.Node[ports.GenerationStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.GenerationStore, error) {
			store, err := NewStore(DefaultDir)
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
