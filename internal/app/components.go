package app

import "go.trai.ch/sackd/internal/core/ports"

// Components holds the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
}
