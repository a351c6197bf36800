// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/sackd/internal/adapters/config"
	_ "go.trai.ch/sackd/internal/adapters/daemon"
	_ "go.trai.ch/sackd/internal/adapters/detector"
	_ "go.trai.ch/sackd/internal/adapters/logger"
	_ "go.trai.ch/sackd/internal/adapters/repo"
	// Register app nodes.
	_ "go.trai.ch/sackd/internal/app"
)
