package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/riagen/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/riagen/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"go.trai.ch/riagen/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/riagen/internal/adapters/metadata" //nolint:depguard // Wired in app layer
	"go.trai.ch/riagen/internal/adapters/state"    //nolint:depguard // Wired in app layer
	"go.trai.ch/riagen/internal/adapters/watcher"  //nolint:depguard // Wired in app layer
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/riagen/internal/engine/codegen"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			metadata.NodeID,
			fs.ResolverNodeID,
			fs.HasherNodeID,
			fs.WriterNodeID,
			state.NodeID,
			watcher.NodeID,
			codegen.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	reader, err := graft.Dep[ports.MetadataReader](ctx)
	if err != nil {
		return nil, err
	}
	resolver, err := graft.Dep[ports.InputResolver](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}
	writer, err := graft.Dep[ports.OutputWriter](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.GenerationStore](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	generator, err := graft.Dep[*codegen.Dispatcher](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, log, reader, resolver, hasher, writer, store, w, generator), nil
}
