package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"slotwise/models"
	"slotwise/services/scheduling"
)

const slotCacheTTL = 60 * time.Second

// SlotHandler serves the time-slot query with a short-lived cache in front of
// the generator.
type SlotHandler struct {
	Engine *scheduling.Engine
	Cache  *redis.Client
	Logger *zap.Logger
}

func NewSlotHandler(engine *scheduling.Engine, cache *redis.Client, logger *zap.Logger) *SlotHandler {
	return &SlotHandler{Engine: engine, Cache: cache, Logger: logger}
}

func slotCacheKey(businessID, serviceID, date string) string {
	return fmt.Sprintf("slots:%s:%s:%s", businessID, serviceID, date)
}

// GetSlots handles GET /api/slots?business_id=&service_id=&date=.
// An empty array is a valid response (blocked date or no availability).
func (h *SlotHandler) GetSlots(c *gin.Context) {
	businessID := c.Query("business_id")
	serviceID := c.Query("service_id")
	date := c.Query("date")
	if businessID == "" || serviceID == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "business_id, service_id and date are required"})
		return
	}

	ctx := c.Request.Context()
	key := slotCacheKey(businessID, serviceID, date)
	if cached, err := h.Cache.Get(ctx, key).Result(); err == nil {
		var slots []models.Slot
		if err := json.Unmarshal([]byte(cached), &slots); err == nil {
			c.JSON(http.StatusOK, gin.H{"slots": slots})
			return
		}
	}

	slots, err := h.Engine.AvailableSlots(ctx, businessID, serviceID, date)
	if err != nil {
		respondEngineError(c, h.Logger, err)
		return
	}

	if data, err := json.Marshal(slots); err == nil {
		if err := h.Cache.Set(ctx, key, data, slotCacheTTL).Err(); err != nil {
			h.Logger.Warn("failed to cache slots", zap.String("key", key), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// invalidateSlotCache drops cached slot responses for a business on the dates
// a mutation touched.
func invalidateSlotCache(ctx context.Context, cache *redis.Client, logger *zap.Logger, businessID string, times ...time.Time) {
	seen := make(map[string]struct{})
	for _, t := range times {
		if t.IsZero() {
			continue
		}
		date := t.Format("2006-01-02")
		if _, ok := seen[date]; ok {
			continue
		}
		seen[date] = struct{}{}
		pattern := fmt.Sprintf("slots:%s:*:%s", businessID, date)
		keys, err := cache.Keys(ctx, pattern).Result()
		if err != nil {
			logger.Warn("slot cache scan failed", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		if len(keys) > 0 {
			if err := cache.Del(ctx, keys...).Err(); err != nil {
				logger.Warn("slot cache invalidation failed", zap.Error(err))
			}
		}
	}
}
