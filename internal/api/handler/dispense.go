package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timmy/quotewise/internal/domain"
	"github.com/timmy/quotewise/internal/repository"
	"github.com/timmy/quotewise/internal/service"
)

// DispenseHandler exposes manual dispensing and run history.
type DispenseHandler struct {
	settings  service.SettingStore
	dispenser *service.Dispenser
	cache     *service.QuoteCache
	runs      *repository.RunRepository
}

// NewDispenseHandler creates a new dispense handler.
// Parameters:
//   - settings: settings store the token is read from.
//   - dispenser: dispenser to invoke.
//   - cache: quote cache, for the cache endpoint.
//   - runs: run repository for history.
// Returns:
//   - *DispenseHandler: initialized handler.
func NewDispenseHandler(settings service.SettingStore, dispenser *service.Dispenser, cache *service.QuoteCache, runs *repository.RunRepository) *DispenseHandler {
	return &DispenseHandler{
		settings:  settings,
		dispenser: dispenser,
		cache:     cache,
		runs:      runs,
	}
}

// Dispense handles POST /api/v1/dispense — a manual trigger that reads the
// current token and runs one dispense.
func (h *DispenseHandler) Dispense(c *gin.Context) {
	ctx := c.Request.Context()

	token, _, err := h.settings.Get(ctx, domain.SettingToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read token: " + err.Error()})
		return
	}

	outcome, err := h.dispenser.Dispense(ctx, token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Dispense failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"outcome": outcome,
	})
}

// CacheStatus handles GET /api/v1/cache.
func (h *DispenseHandler) CacheStatus(c *gin.Context) {
	n, err := h.cache.Len(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read cache: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"cached": n,
	})
}

// ListRuns handles GET /api/v1/runs.
func (h *DispenseHandler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	runs, err := h.runs.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list runs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"runs": runs,
	})
}
