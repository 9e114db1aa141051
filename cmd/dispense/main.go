package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/timmy/quotewise/internal/config"
	"github.com/timmy/quotewise/internal/domain"
	"github.com/timmy/quotewise/internal/logger"
	"github.com/timmy/quotewise/internal/readwise"
	"github.com/timmy/quotewise/internal/repository"
	"github.com/timmy/quotewise/internal/service"
)

func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		ServiceName: "quotewise-dispense",
	})
	logger.SetDefaultLogger(appLogger)

	// Parse command line flags
	tokenFlag := flag.String("token", "", "Readwise token; overrides and persists to the settings store")
	noCache := flag.Bool("no-cache", false, "Fetch a single quote directly instead of using the cache")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	settingRepo := repository.NewSettingRepository(db)
	blockRepo := repository.NewBlockRepository(db)
	runRepo := repository.NewRunRepository(db)

	client := readwise.NewClient(&readwise.Config{
		BaseURL: cfg.Readwise.BaseURL,
		Timeout: cfg.Readwise.Timeout,
	})
	cache := service.NewQuoteCache(settingRepo, client, cfg.Dispenser.BatchSize)

	cacheEnabled := cfg.Dispenser.CacheEnabled && !*noCache
	dispenser := service.NewDispenser(blockRepo, client, cache, runRepo, appLogger, &service.DispenserOptions{
		CacheEnabled: cacheEnabled,
	})

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Received shutdown signal, canceling...")
		cancel()
	}()

	// Resolve the token: flag wins and is persisted, otherwise read the store
	token := *tokenFlag
	if token != "" {
		if err := settingRepo.Set(ctx, domain.SettingToken, token); err != nil {
			appLogger.WithError(err).Fatal("Failed to store token")
		}
	} else {
		token, _, err = settingRepo.Get(ctx, domain.SettingToken)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to read token")
		}
	}

	outcome, err := dispenser.Dispense(ctx, token)
	if err != nil {
		appLogger.WithError(err).Fatal("Dispense failed")
	}

	appLogger.WithFields(logger.Fields{
		"outcome": string(outcome),
	}).Info("Dispense completed")
}
