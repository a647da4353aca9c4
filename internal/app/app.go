package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/config"
	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/handlers"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/services"
	"gorm.io/gorm"
)

type App struct {
	logger log.Logger
	db     *gorm.DB
	router *gin.Engine
}

// New connects to the configured database, migrates it and builds the router.
func New(cfg *config.Config, logger log.Logger) (*App, error) {
	db, err := database.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(db, logger); err != nil {
		_ = database.Close(db)
		return nil, err
	}

	a, err := NewWithDB(cfg, db, logger)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return a, nil
}

// NewWithDB builds the application on an already opened and migrated db.
func NewWithDB(cfg *config.Config, db *gorm.DB, logger log.Logger) (*App, error) {
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL, auth.WithIssuer(cfg.JWTIssuer))
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics, err := middleware.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, tokens, cfg.BcryptCost)
	taskService := services.NewTaskService(taskRepo)

	a := &App{
		logger: logger,
		db:     db,
	}
	a.router = newRouter(cfg, logger, registry, httpMetrics, tokens, routeHandlers{
		auth:   handlers.NewAuthHandler(authService, logger),
		tasks:  handlers.NewTaskHandler(taskService, logger),
		health: handlers.NewHealthHandler(db),
	})
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

// Close releases the database pool.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	if err := database.Close(a.db); err != nil {
		return err
	}
	level.Info(a.logger).Log("msg", "database connection closed")
	return nil
}
