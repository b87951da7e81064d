package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"slotwise/services/scheduling"
)

// BookingHandler exposes the booking mutation endpoints.
type BookingHandler struct {
	Engine *scheduling.Engine
	Cache  *redis.Client
	Logger *zap.Logger
}

func NewBookingHandler(engine *scheduling.Engine, cache *redis.Client, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Engine: engine, Cache: cache, Logger: logger}
}

// List handles GET /api/bookings?business_id=&date= for staff day views.
func (h *BookingHandler) List(c *gin.Context) {
	businessID := c.Query("business_id")
	date := c.Query("date")
	if businessID == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "business_id and date are required"})
		return
	}

	bookings, err := h.Engine.ListBookings(c.Request.Context(), businessID, date)
	if err != nil {
		respondEngineError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	var input struct {
		BusinessID    string    `json:"business_id" binding:"required"`
		ServiceID     string    `json:"service_id" binding:"required"`
		CustomerID    string    `json:"customer_id" binding:"required"`
		StartTime     time.Time `json:"start_time" binding:"required"`
		PaymentMethod string    `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := h.Engine.CreateBooking(c.Request.Context(), scheduling.CreateBookingInput{
		BusinessID:    input.BusinessID,
		ServiceID:     input.ServiceID,
		CustomerID:    input.CustomerID,
		StartTime:     input.StartTime,
		PaymentMethod: input.PaymentMethod,
	})
	if err != nil {
		respondEngineError(c, h.Logger, err)
		return
	}

	invalidateSlotCache(c.Request.Context(), h.Cache, h.Logger, booking.BusinessID, booking.StartTime)
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// Cancel handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c *gin.Context) {
	var input struct {
		CancelledBy string `json:"cancelled_by" binding:"required"`
		Reason      string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := h.Engine.CancelBooking(c.Request.Context(), c.Param("id"), input.CancelledBy, input.Reason)
	if err != nil {
		respondEngineError(c, h.Logger, err)
		return
	}

	invalidateSlotCache(c.Request.Context(), h.Cache, h.Logger, booking.BusinessID, booking.StartTime)
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// Reschedule handles POST /api/bookings/:id/reschedule.
func (h *BookingHandler) Reschedule(c *gin.Context) {
	var input struct {
		NewStartTime time.Time `json:"new_start_time" binding:"required"`
		NewEndTime   time.Time `json:"new_end_time"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	original, replacement, err := h.Engine.Reschedule(c.Request.Context(), c.Param("id"), input.NewStartTime, input.NewEndTime)
	if err != nil {
		respondEngineError(c, h.Logger, err)
		return
	}

	invalidateSlotCache(c.Request.Context(), h.Cache, h.Logger, original.BusinessID,
		original.StartTime, replacement.StartTime)
	c.JSON(http.StatusOK, gin.H{"cancelled": original, "booking": replacement})
}

// CheckIn handles POST /api/bookings/:id/checkin.
func (h *BookingHandler) CheckIn(c *gin.Context) {
	result, err := h.Engine.CheckIn(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondEngineError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking": result.Booking,
		"isEarly": result.IsEarly,
		"isLate":  result.IsLate,
	})
}

// MarkPaid handles POST /api/bookings/:id/mark-paid (cash only).
func (h *BookingHandler) MarkPaid(c *gin.Context) {
	booking, err := h.Engine.MarkPaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondEngineError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// NoShow handles POST /api/bookings/:id/no-show (staff-initiated).
func (h *BookingHandler) NoShow(c *gin.Context) {
	booking, err := h.Engine.MarkNoShow(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondEngineError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}
