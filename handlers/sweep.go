package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotwise/services/scheduling"
)

// SweepHandler exposes the manual sweep triggers. Both sweeps are idempotent,
// so an extra firing (cron overlap, operator retry) is harmless.
type SweepHandler struct {
	Engine *scheduling.Engine
	Logger *zap.Logger
}

func NewSweepHandler(engine *scheduling.Engine, logger *zap.Logger) *SweepHandler {
	return &SweepHandler{Engine: engine, Logger: logger}
}

// AutoComplete handles POST /api/sweeps/auto-complete.
func (h *SweepHandler) AutoComplete(c *gin.Context) {
	updated, err := h.Engine.AutoComplete(c.Request.Context())
	if err != nil {
		respondEngineError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// AutoNoShow handles POST /api/sweeps/auto-no-show.
func (h *SweepHandler) AutoNoShow(c *gin.Context) {
	updated, err := h.Engine.AutoNoShow(c.Request.Context())
	if err != nil {
		respondEngineError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
