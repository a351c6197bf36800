package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sackd/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/sackd/internal/adapters/daemon"   //nolint:depguard // Wired in app layer
	"go.trai.ch/sackd/internal/adapters/detector" //nolint:depguard // Wired in app layer
	"go.trai.ch/sackd/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/sackd/internal/adapters/repo"     //nolint:depguard // Wired in app layer
	"go.trai.ch/sackd/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			detector.NodeID,
			repo.NodeID,
			daemon.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			arch, err := graft.Dep[ports.ArchDetector](ctx)
			if err != nil {
				return nil, err
			}

			factory, err := graft.Dep[ports.LoaderFactory](ctx)
			if err != nil {
				return nil, err
			}

			sup, err := graft.Dep[*daemon.Supervisor](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, log, arch, factory, sup), nil
		},
	})

	// Components Node
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

			return &Components{App: app, Logger: log}, nil
		},
	})
}
