// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"slotwise/models"
)

// BookingRepository is the store contract the scheduling engine depends on.
//
// Every mutation that advances the lifecycle is a conditional update: the
// expected prior status is part of the update filter, so a row already moved
// by a concurrent request or sweep is simply not matched. Matched=false means
// the caller lost the race (or the state was wrong to begin with).
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)

	// ListForDay returns non-cancelled bookings whose interval touches
	// [dayStart, dayEnd) for the business.
	ListForDay(ctx context.Context, businessID string, dayStart, dayEnd time.Time) ([]models.Booking, error)

	// ListOverlapping returns non-cancelled bookings overlapping [start, end),
	// optionally excluding one booking id (the original during a reschedule).
	ListOverlapping(ctx context.Context, businessID string, start, end time.Time, excludeID string) ([]models.Booking, error)

	// Cancel moves confirmed/pending_payment -> cancelled, recording when, by
	// whom and why. rescheduledTo links the replacement when the cancellation
	// is part of a reschedule; pass "" otherwise.
	Cancel(ctx context.Context, id string, at time.Time, by, reason, rescheduledTo string) (bool, error)

	// MarkCheckedIn moves confirmed -> checked_in once. settleCash also flips
	// payment_status to paid with paid_at = at (cash auto-settlement).
	MarkCheckedIn(ctx context.Context, id string, at time.Time, settleCash bool) (bool, error)

	// ConfirmPayment moves pending_payment -> confirmed and marks the booking paid.
	ConfirmPayment(ctx context.Context, id string, paidAt time.Time) (bool, error)

	// MarkPaid settles a pending payment without changing status.
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error)

	// MarkRefunded moves payment_status paid -> refunded without changing status.
	MarkRefunded(ctx context.Context, id string) (bool, error)

	// MarkNoShow moves confirmed -> no_show; the status filter is the guard
	// against double transitions from overlapping sweeps.
	MarkNoShow(ctx context.Context, id string) (bool, error)

	// CompleteFinished moves every checked_in booking with end_time < now to
	// completed in one batch and reports how many rows changed.
	CompleteFinished(ctx context.Context, now time.Time) (int64, error)

	// ListNoShowCandidates returns confirmed, never-checked-in bookings whose
	// start_time is before the cutoff.
	ListNoShowCandidates(ctx context.Context, cutoff time.Time) ([]models.Booking, error)
}
