// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/riagen/internal/adapters/config"
	_ "go.trai.ch/riagen/internal/adapters/emit/csharp"
	_ "go.trai.ch/riagen/internal/adapters/emit/vb"
	_ "go.trai.ch/riagen/internal/adapters/fs"
	_ "go.trai.ch/riagen/internal/adapters/logger"
	_ "go.trai.ch/riagen/internal/adapters/metadata"
	_ "go.trai.ch/riagen/internal/adapters/state"
	_ "go.trai.ch/riagen/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/riagen/internal/app"
	_ "go.trai.ch/riagen/internal/engine/codegen"
)
