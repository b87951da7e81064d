package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotwise/services/scheduling"
)

// statusFor maps engine error codes to HTTP statuses.
func statusFor(code string) int {
	switch code {
	case scheduling.CodeNotFound:
		return http.StatusNotFound
	case scheduling.CodeValidation:
		return http.StatusBadRequest
	case scheduling.CodeSlotConflict:
		return http.StatusConflict
	case scheduling.CodePolicyViolation:
		return http.StatusForbidden
	case scheduling.CodeAlreadyCheckedIn, scheduling.CodeInvalidState:
		return http.StatusConflict
	case scheduling.CodeWindowClosed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondEngineError renders an engine error with its structured detail, or a
// generic 500 for unexpected failures (cause logged server-side only).
func respondEngineError(c *gin.Context, logger *zap.Logger, err error) {
	if e, ok := scheduling.AsError(err); ok {
		payload := gin.H{"error": e.Message, "code": e.Code}
		if e.HoursUntilBooking != nil {
			payload["hoursUntilBooking"] = *e.HoursUntilBooking
		}
		if e.CheckedInAt != nil {
			payload["checkedInAt"] = *e.CheckedInAt
		}
		c.JSON(statusFor(e.Code), payload)
		return
	}
	logger.Error("unexpected engine failure", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
