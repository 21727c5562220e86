package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"jobtrail/internal/api/routes"
	"jobtrail/internal/config"
	"jobtrail/internal/extract"
	"jobtrail/internal/llm"
	"jobtrail/internal/logging"
	"jobtrail/internal/mail"
	"jobtrail/internal/scorer"
	"jobtrail/internal/store"
	"jobtrail/internal/syncer"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging system
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting JobTrail")

	// Initialize LLM manager
	llmManager := llm.NewManager(cfg)
	if err := llmManager.Start(); err != nil {
		logger.Fatal("Failed to start LLM manager", map[string]interface{}{"error": err.Error()})
	}

	// Initialize application store
	var appStore store.Store
	if cfg.Store.Enabled {
		redisStore := store.NewRedisStore(cfg)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisStore.IsHealthy(pingCtx); err != nil {
			logger.Warn("Redis unavailable, falling back to in-memory store", map[string]interface{}{
				"error": err.Error(),
			})
			appStore = store.NewMemoryStore()
		} else {
			appStore = redisStore
		}
		cancel()
	} else {
		appStore = store.NewMemoryStore()
	}
	defer appStore.Close()

	// Wire the sync pipeline
	gmailProvider := mail.NewGmailProvider(cfg)
	extractor := extract.NewExtractor(cfg, llmManager)
	matchScorer := scorer.NewScorer(cfg, llmManager)
	syncOrchestrator := syncer.NewSyncer(cfg, gmailProvider, extractor, matchScorer, appStore)

	ctx, cancelAuto := context.WithCancel(context.Background())
	syncOrchestrator.StartAutoSync(ctx)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, syncOrchestrator, llmManager, extractor, appStore)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logger.Info("Stopping auto-sync loop...")
		syncOrchestrator.StopAutoSync()
		cancelAuto()

		logger.Info("Stopping LLM manager...")
		if err := llmManager.Stop(); err != nil {
			logger.Error("Error stopping LLM manager", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Stopping HTTP server...")
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil && err != http.ErrServerClosed {
		logger.Fatal("Server failed to start", map[string]interface{}{"error": err.Error()})
	}
}
