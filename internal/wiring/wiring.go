// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/scango/internal/adapters/camera"
	_ "go.trai.ch/scango/internal/adapters/catalog"
	_ "go.trai.ch/scango/internal/adapters/config"
	_ "go.trai.ch/scango/internal/adapters/logger"
	// Register app nodes.
	_ "go.trai.ch/scango/internal/app"
)
