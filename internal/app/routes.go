package app

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-kit/kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/task-tracker-api/internal/config"
	"github.com/yukikurage/task-tracker-api/internal/handlers"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
)

type routeHandlers struct {
	auth   *handlers.AuthHandler
	tasks  *handlers.TaskHandler
	health *handlers.HealthHandler
}

func newRouter(cfg *config.Config, logger log.Logger, registry *prometheus.Registry, httpMetrics *middleware.Metrics, verifier middleware.TokenVerifier, h routeHandlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(httpMetrics.Instrument())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/health", h.health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	requireAuth := middleware.RequireAuth(verifier, logger)

	registerAuthRoutes(r, h.auth, requireAuth)
	registerTaskRoutes(r.Group("/tasks", requireAuth), h.tasks)

	return r
}

func registerAuthRoutes(r *gin.Engine, h *handlers.AuthHandler, requireAuth gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", requireAuth, h.GetCurrentUser)
	}
}

func registerTaskRoutes(tasks *gin.RouterGroup, h *handlers.TaskHandler) {
	tasks.GET("", h.ListTasks)
	tasks.POST("", h.CreateTask)
	tasks.GET("/:id", h.GetTask)
	tasks.PUT("/:id", h.UpdateTask)
	tasks.DELETE("/:id", h.DeleteTask)
}
