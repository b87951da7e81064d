package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"slotwise/services/scheduling"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(scheduling.CodeNotFound))
	assert.Equal(t, http.StatusBadRequest, statusFor(scheduling.CodeValidation))
	assert.Equal(t, http.StatusConflict, statusFor(scheduling.CodeSlotConflict))
	assert.Equal(t, http.StatusForbidden, statusFor(scheduling.CodePolicyViolation))
	assert.Equal(t, http.StatusConflict, statusFor(scheduling.CodeAlreadyCheckedIn))
	assert.Equal(t, http.StatusConflict, statusFor(scheduling.CodeInvalidState))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(scheduling.CodeWindowClosed))
	assert.Equal(t, http.StatusInternalServerError, statusFor("something_else"))
}

func renderError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondEngineError(c, zap.NewNop(), err)
	return w
}

func TestRespondEngineError_CodedDetail(t *testing.T) {
	hours := 3.5
	w := renderError(&scheduling.Error{
		Code:              scheduling.CodePolicyViolation,
		Message:           "cancellations require at least 24 hours notice",
		HoursUntilBooking: &hours,
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, scheduling.CodePolicyViolation, body["code"])
	assert.Equal(t, 3.5, body["hoursUntilBooking"])
}

func TestRespondEngineError_AlreadyCheckedInCarriesTimestamp(t *testing.T) {
	at := time.Date(2026, 1, 26, 10, 0, 0, 0, time.UTC)
	w := renderError(&scheduling.Error{
		Code:        scheduling.CodeAlreadyCheckedIn,
		Message:     "booking is already checked in",
		CheckedInAt: &at,
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "checkedInAt")
}

func TestRespondEngineError_UnexpectedIsOpaque(t *testing.T) {
	w := renderError(errors.New("connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["error"])
	assert.NotContains(t, w.Body.String(), "connection reset")
}
