package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotwise/services/payment"
	"slotwise/services/scheduling"
)

// PaymentHandler reacts to verified gateway signals; capture mechanics stay
// with the gateway.
type PaymentHandler struct {
	Engine  *scheduling.Engine
	Gateway payment.Gateway
	Logger  *zap.Logger
}

func NewPaymentHandler(engine *scheduling.Engine, gateway payment.Gateway, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Engine: engine, Gateway: gateway, Logger: logger}
}

// Webhook handles POST /api/payments/webhook. A verified
// payment_intent.succeeded moves the booking from pending_payment to
// confirmed.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable payload"})
		return
	}

	event, err := h.Gateway.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.Logger.Warn("webhook rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "signature verification failed"})
		return
	}
	if event.BookingID == "" || (!event.Paid && !event.Refunded) {
		// Event types we do not act on are acknowledged, not retried.
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var booking any
	if event.Paid {
		booking, err = h.Engine.ConfirmPayment(c.Request.Context(), event.BookingID)
	} else {
		booking, err = h.Engine.MarkRefunded(c.Request.Context(), event.BookingID)
	}
	if err != nil {
		if e, ok := scheduling.AsError(err); ok && e.Code == scheduling.CodeInvalidState {
			// Duplicate delivery; the transition already happened.
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		respondEngineError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}
