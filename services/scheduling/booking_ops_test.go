package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotwise/models"
)

func TestCreateBooking_CashDefaultsToConfirmed(t *testing.T) {
	env := newTestEnv(t, at(7, 0))

	booking, err := env.engine.CreateBooking(context.Background(), CreateBookingInput{
		BusinessID: "biz-1",
		ServiceID:  "svc-1",
		CustomerID: "cust-1",
		StartTime:  at(10, 0),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, models.StatusConfirmed, booking.Status)
	assert.Equal(t, models.PaymentCash, booking.PaymentMethod)
	assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)
	assert.True(t, booking.EndTime.Equal(at(11, 0)), "end derives from the 60-minute service")
	assert.Equal(t, 1, env.locker.acquired)

	stored, err := env.bookings.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
}

func TestCreateBooking_OnlineStartsPendingPayment(t *testing.T) {
	env := newTestEnv(t, at(7, 0))
	gateway := &fakeGateway{}
	env.engine.Payments = gateway

	booking, err := env.engine.CreateBooking(context.Background(), CreateBookingInput{
		BusinessID:    "biz-1",
		ServiceID:     "svc-1",
		CustomerID:    "cust-1",
		StartTime:     at(10, 0),
		PaymentMethod: models.PaymentOnline,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingPayment, booking.Status)
	assert.Equal(t, "pi_secret_"+booking.ID, booking.PaymentClientSecret)
	assert.Equal(t, []string{booking.ID}, gateway.intents)
}

func TestCreateBooking_IntentFailureKeepsBooking(t *testing.T) {
	env := newTestEnv(t, at(7, 0))
	env.engine.Payments = &fakeGateway{fail: true}

	booking, err := env.engine.CreateBooking(context.Background(), CreateBookingInput{
		BusinessID: "biz-1", ServiceID: "svc-1", CustomerID: "cust-1",
		StartTime: at(10, 0), PaymentMethod: models.PaymentOnline,
	})
	require.NoError(t, err)
	assert.Empty(t, booking.PaymentClientSecret)

	stored, err := env.bookings.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingPayment, stored.Status)
}

func TestCreateBooking_Validation(t *testing.T) {
	env := newTestEnv(t, at(7, 0))
	ctx := context.Background()

	_, err := env.engine.CreateBooking(ctx, CreateBookingInput{ServiceID: "svc-1", CustomerID: "cust-1", StartTime: at(10, 0)})
	requireCode(t, err, CodeValidation)

	_, err = env.engine.CreateBooking(ctx, CreateBookingInput{BusinessID: "biz-1", ServiceID: "svc-1", CustomerID: "cust-1"})
	requireCode(t, err, CodeValidation)

	_, err = env.engine.CreateBooking(ctx, CreateBookingInput{
		BusinessID: "biz-1", ServiceID: "svc-1", CustomerID: "cust-1",
		StartTime: at(10, 0), PaymentMethod: "barter",
	})
	requireCode(t, err, CodeValidation)
}

func TestCreateBooking_UnknownReferences(t *testing.T) {
	env := newTestEnv(t, at(7, 0))
	ctx := context.Background()

	_, err := env.engine.CreateBooking(ctx, CreateBookingInput{
		BusinessID: "ghost", ServiceID: "svc-1", CustomerID: "cust-1", StartTime: at(10, 0),
	})
	requireCode(t, err, CodeNotFound)

	_, err = env.engine.CreateBooking(ctx, CreateBookingInput{
		BusinessID: "biz-1", ServiceID: "ghost", CustomerID: "cust-1", StartTime: at(10, 0),
	})
	requireCode(t, err, CodeNotFound)

	_, err = env.engine.CreateBooking(ctx, CreateBookingInput{
		BusinessID: "biz-1", ServiceID: "svc-1", CustomerID: "ghost", StartTime: at(10, 0),
	})
	requireCode(t, err, CodeNotFound)
}

func TestCreateBooking_ConflictRejected(t *testing.T) {
	env := newTestEnv(t, at(7, 0))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	_, err := env.engine.CreateBooking(context.Background(), CreateBookingInput{
		BusinessID: "biz-1", ServiceID: "svc-1", CustomerID: "cust-1", StartTime: at(10, 30),
	})
	requireCode(t, err, CodeSlotConflict)
}

func TestCreateBooking_BufferGatesAdjacentStart(t *testing.T) {
	env := newTestEnv(t, at(7, 0))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	// 11:00 lands inside the 15-minute buffer after the 10:00-11:00 booking.
	_, err := env.engine.CreateBooking(context.Background(), CreateBookingInput{
		BusinessID: "biz-1", ServiceID: "svc-1", CustomerID: "cust-1", StartTime: at(11, 0),
	})
	requireCode(t, err, CodeSlotConflict)

	// 11:15 clears it.
	_, err = env.engine.CreateBooking(context.Background(), CreateBookingInput{
		BusinessID: "biz-1", ServiceID: "svc-1", CustomerID: "cust-1", StartTime: at(11, 15),
	})
	require.NoError(t, err)
}

func TestCreateBooking_BufferOffAllowsBackToBack(t *testing.T) {
	env := newTestEnv(t, at(7, 0))
	env.engine.Opts.EnforceBuffer = false
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	_, err := env.engine.CreateBooking(context.Background(), CreateBookingInput{
		BusinessID: "biz-1", ServiceID: "svc-1", CustomerID: "cust-1", StartTime: at(11, 0),
	})
	require.NoError(t, err)
}

func TestCreateBooking_CancelledBookingDoesNotBlock(t *testing.T) {
	env := newTestEnv(t, at(7, 0))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0), Status: models.StatusCancelled})

	_, err := env.engine.CreateBooking(context.Background(), CreateBookingInput{
		BusinessID: "biz-1", ServiceID: "svc-1", CustomerID: "cust-1", StartTime: at(10, 0),
	})
	require.NoError(t, err)
}

func TestCreateBooking_BeyondHorizon(t *testing.T) {
	env := newTestEnv(t, at(7, 0))
	env.biz().MaxAdvanceDays = 7

	_, err := env.engine.CreateBooking(context.Background(), CreateBookingInput{
		BusinessID: "biz-1", ServiceID: "svc-1", CustomerID: "cust-1",
		StartTime: at(10, 0).AddDate(0, 0, 8),
	})
	requireCode(t, err, CodeValidation)
}

func TestCancelBooking_Flexible(t *testing.T) {
	env := newTestEnv(t, at(9, 0))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	booking, err := env.engine.CancelBooking(context.Background(), "bk-1", models.CancelledByCustomer, "changed my mind")
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, booking.Status)
	assert.Equal(t, models.CancelledByCustomer, booking.CancelledBy)
	assert.Equal(t, "changed my mind", booking.CancellationReason)
	require.NotNil(t, booking.CancelledAt)
	assert.True(t, booking.CancelledAt.Equal(at(9, 0)))
}

func TestCancelBooking_ValidatesActor(t *testing.T) {
	env := newTestEnv(t, at(9, 0))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	_, err := env.engine.CancelBooking(context.Background(), "bk-1", "admin", "")
	requireCode(t, err, CodeValidation)
}

func TestCancelBooking_StrictPolicyRejects(t *testing.T) {
	env := newTestEnv(t, at(9, 0))
	env.biz().CancellationPolicy = models.PolicyStrict
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(9, 0).AddDate(0, 0, 5)})

	_, err := env.engine.CancelBooking(context.Background(), "bk-1", models.CancelledByCustomer, "")
	e := requireCode(t, err, CodePolicyViolation)
	require.NotNil(t, e.HoursUntilBooking)
	assert.InDelta(t, 5*24, *e.HoursUntilBooking, 0.001)
}

func TestCancelBooking_ModerateInsideWindowRejects(t *testing.T) {
	env := newTestEnv(t, at(9, 0))
	env.biz().CancellationPolicy = models.PolicyModerate
	env.biz().CancellationHours = 24
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(9, 0).Add(6 * time.Hour)})

	_, err := env.engine.CancelBooking(context.Background(), "bk-1", models.CancelledByCustomer, "")
	e := requireCode(t, err, CodePolicyViolation)
	assert.Equal(t, "cancellations require at least 24 hours notice", e.Message)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	env := newTestEnv(t, at(9, 0))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0), Status: models.StatusCancelled})

	_, err := env.engine.CancelBooking(context.Background(), "bk-1", models.CancelledByCustomer, "")
	requireCode(t, err, CodePolicyViolation)
}

func TestCancelBooking_NotFound(t *testing.T) {
	env := newTestEnv(t, at(9, 0))

	_, err := env.engine.CancelBooking(context.Background(), "ghost", models.CancelledByCustomer, "")
	requireCode(t, err, CodeNotFound)
}

func TestReschedule_LinksOriginalAndReplacement(t *testing.T) {
	env := newTestEnv(t, at(7, 0))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	original, replacement, err := env.engine.Reschedule(context.Background(), "bk-1", at(14, 0), time.Time{})
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, original.Status)
	assert.Equal(t, models.ReasonRescheduled, original.CancellationReason)
	assert.Equal(t, replacement.ID, original.RescheduledTo)

	assert.Equal(t, models.StatusConfirmed, replacement.Status)
	assert.Equal(t, "bk-1", replacement.RescheduledFrom)
	assert.True(t, replacement.StartTime.Equal(at(14, 0)))
	assert.True(t, replacement.EndTime.Equal(at(15, 0)))

	stored, err := env.bookings.GetByID(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored.Status)
	assert.Equal(t, replacement.ID, stored.RescheduledTo)
}

func TestReschedule_ExcludesOriginalFromConflictScan(t *testing.T) {
	env := newTestEnv(t, at(7, 0))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	// Shifting 15 minutes overlaps the original's own interval; that must not
	// count as a conflict.
	_, replacement, err := env.engine.Reschedule(context.Background(), "bk-1", at(10, 15), time.Time{})
	require.NoError(t, err)
	assert.True(t, replacement.StartTime.Equal(at(10, 15)))
}

func TestReschedule_ConflictWithOtherBookingLeavesOriginalIntact(t *testing.T) {
	env := newTestEnv(t, at(7, 0))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})
	env.seedBooking(t, models.Booking{ID: "bk-2", StartTime: at(14, 0)})

	_, _, err := env.engine.Reschedule(context.Background(), "bk-1", at(14, 30), time.Time{})
	requireCode(t, err, CodeSlotConflict)

	stored, err := env.bookings.GetByID(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
}

func TestReschedule_MismatchedEndRejected(t *testing.T) {
	env := newTestEnv(t, at(7, 0))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	_, _, err := env.engine.Reschedule(context.Background(), "bk-1", at(14, 0), at(14, 30))
	requireCode(t, err, CodeValidation)
}

func TestReschedule_PolicyGateApplies(t *testing.T) {
	env := newTestEnv(t, at(9, 0))
	env.biz().CancellationPolicy = models.PolicyStrict
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(9, 0).AddDate(0, 0, 2)})

	_, _, err := env.engine.Reschedule(context.Background(), "bk-1", at(9, 0).AddDate(0, 0, 3), time.Time{})
	requireCode(t, err, CodePolicyViolation)
}

func TestReschedule_CarriesPaymentState(t *testing.T) {
	env := newTestEnv(t, at(7, 0))
	paidAt := at(6, 0)
	env.seedBooking(t, models.Booking{
		ID:            "bk-1",
		StartTime:     at(10, 0),
		PaymentMethod: models.PaymentOnline,
		PaymentStatus: models.PaymentStatusPaid,
		PaidAt:        &paidAt,
	})

	_, replacement, err := env.engine.Reschedule(context.Background(), "bk-1", at(14, 0), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentOnline, replacement.PaymentMethod)
	assert.Equal(t, models.PaymentStatusPaid, replacement.PaymentStatus)
	require.NotNil(t, replacement.PaidAt)
	assert.True(t, replacement.PaidAt.Equal(paidAt))
}
