package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/timmy/quotewise/internal/domain"
	"github.com/timmy/quotewise/internal/logger"
	"github.com/timmy/quotewise/internal/service"
)

// SettingsHandler exposes the token configuration surface. Token edits are
// debounced so rapid consecutive updates coalesce into one dispense with the
// final value; the handler owns its debouncer.
type SettingsHandler struct {
	settings  service.SettingStore
	dispenser *service.Dispenser
	debouncer *service.Debouncer
}

// NewSettingsHandler creates a new settings handler.
// Parameters:
//   - settings: settings store.
//   - dispenser: dispenser triggered after a token change.
//   - debouncer: debouncer coalescing rapid token edits.
// Returns:
//   - *SettingsHandler: initialized handler.
func NewSettingsHandler(settings service.SettingStore, dispenser *service.Dispenser, debouncer *service.Debouncer) *SettingsHandler {
	return &SettingsHandler{
		settings:  settings,
		dispenser: dispenser,
		debouncer: debouncer,
	}
}

type updateTokenRequest struct {
	Token string `json:"token"`
}

// GetToken handles GET /api/v1/settings/token.
// The token value is masked; only its presence and tail are reported.
func (h *SettingsHandler) GetToken(c *gin.Context) {
	token, ok, err := h.settings.Get(c.Request.Context(), domain.SettingToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read settings: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"configured": ok && token != "",
		"token":      maskToken(token),
	})
}

// UpdateToken handles PUT /api/v1/settings/token.
// Stores the token, then schedules a debounced dispense with the new value.
func (h *SettingsHandler) UpdateToken(c *gin.Context) {
	var req updateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	token := strings.TrimSpace(req.Token)
	if err := h.settings.Set(c.Request.Context(), domain.SettingToken, token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store token: " + err.Error()})
		return
	}

	// The dispense outlives the request, so it runs on a fresh context.
	h.debouncer.Trigger(func() {
		ctx := logger.WithField(context.Background(), logger.FieldComponent, "settings")
		if _, err := h.dispenser.Dispense(ctx, token); err != nil {
			logger.CtxError(ctx, "Dispense after token change failed: %v", err)
		}
	})

	c.JSON(http.StatusOK, gin.H{
		"configured": token != "",
	})
}

// maskToken hides all but the last 4 characters.
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}
