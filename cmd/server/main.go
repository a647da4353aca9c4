package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/kit/log/level"
	"github.com/yukikurage/task-tracker-api/internal/app"
	"github.com/yukikurage/task-tracker-api/internal/config"
	"github.com/yukikurage/task-tracker-api/internal/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger := logging.New(os.Stderr, "info")
		level.Error(logger).Log("msg", "invalid configuration", "err", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect, migrate and wire handlers
	application, err := app.New(cfg, logger)
	if err != nil {
		level.Error(logger).Log("msg", "failed to start application", "err", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           application.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		level.Info(logger).Log("msg", "server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-quit:
		level.Info(logger).Log("msg", "shutting down", "signal", sig.String())
	case err := <-errc:
		level.Error(logger).Log("msg", "server error", "err", err)
		exitCode = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

	if err := server.Shutdown(ctx); err != nil {
		level.Error(logger).Log("msg", "graceful shutdown failed", "err", err)
		exitCode = 1
	}
	if err := application.Close(); err != nil {
		level.Error(logger).Log("msg", "failed to close database", "err", err)
		exitCode = 1
	}

	cancel()

	level.Info(logger).Log("msg", "server stopped")
	os.Exit(exitCode)
}
