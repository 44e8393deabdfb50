// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/lockstep/internal/adapters/config"
	_ "go.trai.ch/lockstep/internal/adapters/git"
	_ "go.trai.ch/lockstep/internal/adapters/logger"
	_ "go.trai.ch/lockstep/internal/adapters/manifest"
	_ "go.trai.ch/lockstep/internal/adapters/registry"
	// Register app and engine nodes.
	_ "go.trai.ch/lockstep/internal/app"
	_ "go.trai.ch/lockstep/internal/engine/sequencer"
)
