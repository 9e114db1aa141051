package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/quotewise/internal/api"
	"github.com/timmy/quotewise/internal/config"
	"github.com/timmy/quotewise/internal/logger"
	"github.com/timmy/quotewise/internal/readwise"
	"github.com/timmy/quotewise/internal/repository"
	"github.com/timmy/quotewise/internal/service"
)

func main() {
	// Initialize logger first, from environment
	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	// Initialize repositories
	settingRepo := repository.NewSettingRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	runRepo := repository.NewRunRepository(db)

	// Initialize Readwise client and services
	client := readwise.NewClient(&readwise.Config{
		BaseURL: cfg.Readwise.BaseURL,
		Timeout: cfg.Readwise.Timeout,
	})
	cache := service.NewQuoteCache(settingRepo, client, cfg.Dispenser.BatchSize)
	dispenser := service.NewDispenser(blockRepo, client, cache, runRepo, appLogger, &service.DispenserOptions{
		CacheEnabled: cfg.Dispenser.CacheEnabled,
	})
	debouncer := service.NewDebouncer(cfg.Dispenser.DebounceDelay)
	scheduler := service.NewScheduler(dispenser, settingRepo, cfg.Dispenser.Interval, appLogger)

	// Dispense at startup, then on the configured interval
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	scheduler.Start(ctx)

	// Setup router
	router := api.SetupRouter(settingRepo, blockRepo, runRepo, dispenser, cache, debouncer, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")

	// Stop the repeating trigger and any pending debounced dispense
	debouncer.Stop()
	cancel()
	scheduler.Stop()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
