package vb

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the graft node of the Visual Basic emitter.
const NodeID graft.ID = "adapter.emit.vb"

func init() {
	graft.Register(graft.Node[*Emitter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Emitter, error) {
			return New(), nil
		},
	})
}
