package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"geocortex/pkg/logger"
)

// create the HTTP server
func (a *App) InitializeServer() {
	a.Server = &http.Server{
		Addr:    fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler: a.Router,
	}
}

// start the HTTP server and block until a signal triggers graceful shutdown
func (a *App) StartServer() {
	errCh := make(chan error, 1)
	go func() {
		logger.GlobalLogger.Printf("Starting server on %s", a.Server.Addr)
		logger.GlobalLogger.Printf("Swagger UI available at: http://localhost%s/swagger/index.html", a.Server.Addr)

		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case <-quit:
	case err := <-errCh:
		logger.GlobalLogger.Errorf("Failed to start server: %v", err)
		exitCode = 1
	}

	a.shutdownServer()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// shutdown of the server, then release the store and cache clients
func (a *App) shutdownServer() {
	logger.GlobalLogger.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		logger.GlobalLogger.Errorf("Server forced to shutdown: %v", err)
	}
	a.cleanup()

	logger.GlobalLogger.Println("Server exited")
}
