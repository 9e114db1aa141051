package api

import (
	"github.com/gin-gonic/gin"
	"github.com/timmy/quotewise/internal/api/handler"
	"github.com/timmy/quotewise/internal/api/middleware"
	"github.com/timmy/quotewise/internal/config"
	"github.com/timmy/quotewise/internal/repository"
	"github.com/timmy/quotewise/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	settings *repository.SettingRepository,
	blocks *repository.BlockRepository,
	runs *repository.RunRepository,
	dispenser *service.Dispenser,
	cache *service.QuoteCache,
	debouncer *service.Debouncer,
	cfg *config.Config,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	settingsHandler := handler.NewSettingsHandler(settings, dispenser, debouncer)
	dispenseHandler := handler.NewDispenseHandler(settings, dispenser, cache, runs)
	pageHandler := handler.NewPageHandler(blocks)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Settings
		v1.GET("/settings/token", settingsHandler.GetToken)
		v1.PUT("/settings/token", settingsHandler.UpdateToken)

		// Dispensing
		v1.POST("/dispense", dispenseHandler.Dispense)
		v1.GET("/cache", dispenseHandler.CacheStatus)
		v1.GET("/runs", dispenseHandler.ListRuns)

		// Pages
		v1.GET("/pages/today", pageHandler.Today)
	}

	return r
}
