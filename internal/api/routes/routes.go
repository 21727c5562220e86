package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"jobtrail/internal/api/handlers"
	"jobtrail/internal/api/middleware"
	"jobtrail/internal/config"
	"jobtrail/internal/extract"
	"jobtrail/internal/llm"
	"jobtrail/internal/store"
	"jobtrail/internal/syncer"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, s *syncer.Syncer, llmManager *llm.Manager, ex *extract.Extractor, st store.Store) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	// Sync walks the whole mailbox, so it gets a much longer timeout
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, 5*time.Minute))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(llmManager, st))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(llmManager, s))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		v1.POST("/sync", handlers.SyncHandler(cfg, s))
		v1.GET("/sync/status", handlers.SyncStatusHandler(s))

		applications := v1.Group("/applications")
		{
			applications.GET("", handlers.ApplicationsHandler(cfg, st))
			applications.GET("/stats", handlers.StatsHandler(cfg, st))
			applications.GET("/export", handlers.ExportHandler(cfg, st))
		}

		v1.DELETE("/cache/extraction", handlers.ClearCacheHandler(ex))
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"service": "JobTrail",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
