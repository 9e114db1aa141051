package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/timmy/quotewise/internal/domain"
	"github.com/timmy/quotewise/internal/repository"
	"gorm.io/gorm"
)

// PageHandler exposes read-only access to daily pages.
type PageHandler struct {
	blocks *repository.BlockRepository
}

// NewPageHandler creates a new page handler.
// Parameters:
//   - blocks: block repository.
// Returns:
//   - *PageHandler: initialized handler.
func NewPageHandler(blocks *repository.BlockRepository) *PageHandler {
	return &PageHandler{blocks: blocks}
}

// Today handles GET /api/v1/pages/today — today's page with its full block
// tree as a flat list.
func (h *PageHandler) Today(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now()
	uid := domain.DailyUID(now)

	page, err := h.blocks.GetPage(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"uid":    uid,
				"title":  domain.DailyTitle(now),
				"blocks": []domain.Block{},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load page: " + err.Error()})
		return
	}

	blocks, err := h.blocks.ListDescendants(ctx, uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list blocks: " + err.Error()})
		return
	}
	if blocks == nil {
		blocks = []domain.Block{}
	}

	c.JSON(http.StatusOK, gin.H{
		"uid":    page.UID,
		"title":  page.Title,
		"blocks": blocks,
	})
}
