package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/scango/internal/adapters/camera"  //nolint:depguard // Wired in app layer
	"go.trai.ch/scango/internal/adapters/catalog" //nolint:depguard // Wired in app layer
	"go.trai.ch/scango/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/scango/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/scango/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds everything the command line needs.
type Components struct {
	App          *App
	Logger       ports.Logger
	ConfigLoader ports.ConfigLoader
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			catalog.NodeID,
			camera.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
		},
		Run: runComponentsNode,
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

	catalogs, err := graft.Dep[*catalog.Factory](ctx)
	if err != nil {
		return nil, err
	}

	cameras, err := graft.Dep[*camera.Factory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, catalogs, cameras), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:          app,
		Logger:       log,
		ConfigLoader: loader,
	}, nil
}
