package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"slotwise/models"
)

func policyBooking(start time.Time) *models.Booking {
	return &models.Booking{
		ID:        "bk-1",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    models.StatusConfirmed,
	}
}

func TestEvaluatePolicy_Flexible(t *testing.T) {
	now := at(9, 0)
	biz := &models.Business{CancellationPolicy: models.PolicyFlexible}

	d := EvaluatePolicy(policyBooking(now.Add(10*time.Minute)), biz, now)
	assert.True(t, d.CanCancel)
	assert.InDelta(t, 10.0/60.0, d.HoursUntilBooking, 0.001)
}

func TestEvaluatePolicy_UnknownPolicyBehavesAsFlexible(t *testing.T) {
	now := at(9, 0)
	for _, policy := range []string{"", "lenient", "whatever"} {
		d := EvaluatePolicy(policyBooking(now.Add(time.Hour)), &models.Business{CancellationPolicy: policy}, now)
		assert.True(t, d.CanCancel, "policy %q", policy)
	}
}

func TestEvaluatePolicy_Strict(t *testing.T) {
	now := at(9, 0)
	biz := &models.Business{CancellationPolicy: models.PolicyStrict}

	d := EvaluatePolicy(policyBooking(now.AddDate(0, 0, 30)), biz, now)
	assert.False(t, d.CanCancel)
	assert.Equal(t, "booking cannot be cancelled due to strict cancellation policy", d.Reason)
	assert.InDelta(t, 30*24, d.HoursUntilBooking, 0.001)
}

func TestEvaluatePolicy_ModerateBoundaryIsInclusive(t *testing.T) {
	now := at(9, 0)
	biz := &models.Business{CancellationPolicy: models.PolicyModerate, CancellationHours: 24}

	// Exactly 24 hours of notice is allowed.
	d := EvaluatePolicy(policyBooking(now.Add(24*time.Hour)), biz, now)
	assert.True(t, d.CanCancel)

	// One minute short is not.
	d = EvaluatePolicy(policyBooking(now.Add(24*time.Hour-time.Minute)), biz, now)
	assert.False(t, d.CanCancel)
	assert.Equal(t, "cancellations require at least 24 hours notice", d.Reason)
	assert.Greater(t, d.HoursUntilBooking, 23.9)
}

func TestEvaluatePolicy_AlreadyStarted(t *testing.T) {
	now := at(9, 0)
	biz := &models.Business{CancellationPolicy: models.PolicyFlexible}

	d := EvaluatePolicy(policyBooking(now.Add(-time.Minute)), biz, now)
	assert.False(t, d.CanCancel)
	assert.Equal(t, "booking has already passed", d.Reason)
	assert.Less(t, d.HoursUntilBooking, 0.0)
}

func TestEvaluatePolicy_AlreadyCancelled(t *testing.T) {
	now := at(9, 0)
	b := policyBooking(now.Add(48 * time.Hour))
	b.Status = models.StatusCancelled

	d := EvaluatePolicy(b, &models.Business{CancellationPolicy: models.PolicyFlexible}, now)
	assert.False(t, d.CanCancel)
	assert.Equal(t, "booking is already cancelled", d.Reason)
}

func TestEvaluatePolicy_Deterministic(t *testing.T) {
	now := at(9, 0)
	biz := &models.Business{CancellationPolicy: models.PolicyModerate, CancellationHours: 24}
	b := policyBooking(now.Add(30 * time.Hour))

	first := EvaluatePolicy(b, biz, now)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, EvaluatePolicy(b, biz, now))
	}
}
