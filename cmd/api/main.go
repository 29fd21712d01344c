package main

import (
	"context"
	"os"

	"geocortex/pkg/logger"
)

// @title GeoCortex Property API
// @version 1.0
// @description Ingests property listing rows, normalizes addresses and coordinates, and serves them for mapping.
// @BasePath /api
func main() {
	cfg := LoadConfiguration()

	app, err := NewApp(context.Background(), cfg)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to start: %v", err)
		os.Exit(1)
	}

	app.InitializeServer()
	app.StartServer()
}
