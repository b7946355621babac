package csharp

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the graft node of the C# emitter.
const NodeID graft.ID = "adapter.emit.csharp"

func init() {
	graft.Register(graft.Node[*Emitter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Emitter, error) {
			return New(), nil
		},
	})
}
