package codegen

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/riagen/internal/adapters/emit/csharp" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/riagen/internal/adapters/emit/vb"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/riagen/internal/build"
	"go.trai.ch/riagen/internal/engine/processor"
)

// NodeID is the unique identifier for the dispatcher Graft node.
const NodeID graft.ID = "engine.codegen"

// ToolName is stamped into generated-code attributes.
const ToolName = "riagen"

func init() {
	graft.Register(graft.Node[*Dispatcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			csharp.NodeID,
			vb.NodeID,
		},
		Run: func(ctx context.Context) (*Dispatcher, error) {
			cs, err := graft.Dep[*csharp.Emitter](ctx)
			if err != nil {
				return nil, err
			}

			vbe, err := graft.Dep[*vb.Emitter](ctx)
			if err != nil {
				return nil, err
			}

			registry := processor.NewRegistry()
			processor.RegisterBuiltins(registry, ToolName, build.Version)
			return NewDispatcher(registry, cs, vbe), nil
		},
	})
}
