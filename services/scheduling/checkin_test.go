package scheduling

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slotwise/models"
)

func TestCheckIn_OnTime(t *testing.T) {
	env := newTestEnv(t, at(10, 0))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	result, err := env.engine.CheckIn(context.Background(), "bk-1")
	require.NoError(t, err)

	assert.Equal(t, models.StatusCheckedIn, result.Booking.Status)
	require.NotNil(t, result.Booking.CheckedInAt)
	assert.True(t, result.Booking.CheckedInAt.Equal(at(10, 0)))
	assert.False(t, result.IsEarly)
	assert.False(t, result.IsLate)
}

func TestCheckIn_GraceBoundaryInclusive(t *testing.T) {
	// Exactly start + 30 minutes is still allowed.
	env := newTestEnv(t, at(10, 30))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	result, err := env.engine.CheckIn(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.True(t, result.IsLate)
}

func TestCheckIn_WindowClosedAfterGrace(t *testing.T) {
	env := newTestEnv(t, at(10, 31))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	_, err := env.engine.CheckIn(context.Background(), "bk-1")
	requireCode(t, err, CodeWindowClosed)
}

func TestCheckIn_EarlyArrivalAdvisory(t *testing.T) {
	env := newTestEnv(t, at(8, 30))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	result, err := env.engine.CheckIn(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.True(t, result.IsEarly, "90 minutes early crosses the one-hour advisory")
	assert.False(t, result.IsLate)
}

func TestCheckIn_SlightlyEarlyNotFlagged(t *testing.T) {
	env := newTestEnv(t, at(9, 30))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	result, err := env.engine.CheckIn(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.False(t, result.IsEarly)
}

func TestCheckIn_AlreadyCheckedInReportsOriginalTime(t *testing.T) {
	env := newTestEnv(t, at(10, 0))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	_, err := env.engine.CheckIn(context.Background(), "bk-1")
	require.NoError(t, err)

	env.setClock(at(10, 5))
	_, err = env.engine.CheckIn(context.Background(), "bk-1")
	e := requireCode(t, err, CodeAlreadyCheckedIn)
	require.NotNil(t, e.CheckedInAt)
	assert.True(t, e.CheckedInAt.Equal(at(10, 0)), "second attempt reports the first check-in time")
}

func TestCheckIn_CashAutoSettles(t *testing.T) {
	env := newTestEnv(t, at(10, 0))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	result, err := env.engine.CheckIn(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, result.Booking.PaymentStatus)
	require.NotNil(t, result.Booking.PaidAt)
	assert.True(t, result.Booking.PaidAt.Equal(at(10, 0)))
}

func TestCheckIn_OnlinePaidStaysUntouched(t *testing.T) {
	env := newTestEnv(t, at(10, 0))
	paidAt := at(8, 0)
	env.seedBooking(t, models.Booking{
		ID:            "bk-1",
		StartTime:     at(10, 0),
		PaymentMethod: models.PaymentOnline,
		PaymentStatus: models.PaymentStatusPaid,
		PaidAt:        &paidAt,
	})

	result, err := env.engine.CheckIn(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, result.Booking.PaymentStatus)
	assert.True(t, result.Booking.PaidAt.Equal(paidAt), "paid_at not overwritten")
}

func TestCheckIn_RequiresConfirmed(t *testing.T) {
	env := newTestEnv(t, at(10, 0))
	env.seedBooking(t, models.Booking{
		ID: "bk-1", StartTime: at(10, 0),
		Status: models.StatusPendingPayment, PaymentMethod: models.PaymentOnline,
	})

	_, err := env.engine.CheckIn(context.Background(), "bk-1")
	requireCode(t, err, CodeInvalidState)
}

func TestCheckIn_NotFound(t *testing.T) {
	env := newTestEnv(t, at(10, 0))

	_, err := env.engine.CheckIn(context.Background(), "ghost")
	requireCode(t, err, CodeNotFound)
}

func TestConfirmPayment_MovesPendingToConfirmed(t *testing.T) {
	env := newTestEnv(t, at(9, 0))
	env.seedBooking(t, models.Booking{
		ID: "bk-1", StartTime: at(10, 0),
		Status: models.StatusPendingPayment, PaymentMethod: models.PaymentOnline,
	})

	booking, err := env.engine.ConfirmPayment(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, booking.Status)
	assert.Equal(t, models.PaymentStatusPaid, booking.PaymentStatus)
	require.NotNil(t, booking.PaidAt)
}

func TestConfirmPayment_DuplicateSignalRejected(t *testing.T) {
	env := newTestEnv(t, at(9, 0))
	env.seedBooking(t, models.Booking{
		ID: "bk-1", StartTime: at(10, 0),
		Status: models.StatusPendingPayment, PaymentMethod: models.PaymentOnline,
	})

	_, err := env.engine.ConfirmPayment(context.Background(), "bk-1")
	require.NoError(t, err)

	_, err = env.engine.ConfirmPayment(context.Background(), "bk-1")
	requireCode(t, err, CodeInvalidState)
}

func TestMarkPaid_CashOnly(t *testing.T) {
	env := newTestEnv(t, at(9, 0))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	booking, err := env.engine.MarkPaid(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, booking.PaymentStatus)

	// Already settled; nothing left to pay.
	_, err = env.engine.MarkPaid(context.Background(), "bk-1")
	requireCode(t, err, CodeInvalidState)
}

func TestMarkPaid_RejectsOnlineBookings(t *testing.T) {
	env := newTestEnv(t, at(9, 0))
	env.seedBooking(t, models.Booking{
		ID: "bk-1", StartTime: at(10, 0), PaymentMethod: models.PaymentOnline,
	})

	_, err := env.engine.MarkPaid(context.Background(), "bk-1")
	requireCode(t, err, CodeInvalidState)
}

func TestMarkRefunded_PaidOnly(t *testing.T) {
	env := newTestEnv(t, at(9, 0))
	paidAt := at(8, 0)
	env.seedBooking(t, models.Booking{
		ID: "bk-1", StartTime: at(10, 0),
		PaymentMethod: models.PaymentOnline,
		PaymentStatus: models.PaymentStatusPaid, PaidAt: &paidAt,
	})

	booking, err := env.engine.MarkRefunded(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, booking.PaymentStatus)

	// A second refund signal finds nothing to flip.
	_, err = env.engine.MarkRefunded(context.Background(), "bk-1")
	requireCode(t, err, CodeInvalidState)
}

func TestMarkRefunded_PendingPaymentRejected(t *testing.T) {
	env := newTestEnv(t, at(9, 0))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	_, err := env.engine.MarkRefunded(context.Background(), "bk-1")
	requireCode(t, err, CodeInvalidState)
}

func TestMarkNoShow_RejectedWhileBookingRunning(t *testing.T) {
	env := newTestEnv(t, at(10, 30))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	_, err := env.engine.MarkNoShow(context.Background(), "bk-1")
	requireCode(t, err, CodeInvalidState)
}

func TestMarkNoShow_AfterEndBumpsCounter(t *testing.T) {
	env := newTestEnv(t, at(11, 30))
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	booking, err := env.engine.MarkNoShow(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusNoShow, booking.Status)
	assert.Equal(t, 1, env.customers.noShowCount("cust-1"))
}

func TestMarkNoShow_RequiresConfirmed(t *testing.T) {
	env := newTestEnv(t, at(11, 30))
	env.seedBooking(t, models.Booking{
		ID: "bk-1", StartTime: at(10, 0), Status: models.StatusCompleted,
	})

	_, err := env.engine.MarkNoShow(context.Background(), "bk-1")
	requireCode(t, err, CodeInvalidState)
	assert.Equal(t, 0, env.customers.noShowCount("cust-1"))
}

func TestCheckIn_CustomGracePeriod(t *testing.T) {
	env := newTestEnv(t, at(10, 45))
	env.engine.Opts.CheckinGraceMinutes = 60
	env.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	_, err := env.engine.CheckIn(context.Background(), "bk-1")
	require.NoError(t, err)

	env2 := newTestEnv(t, at(10, 45))
	env2.engine.Opts.CheckinGraceMinutes = 30
	env2.seedBooking(t, models.Booking{ID: "bk-1", StartTime: at(10, 0)})

	_, err = env2.engine.CheckIn(context.Background(), "bk-1")
	requireCode(t, err, CodeWindowClosed)
}
