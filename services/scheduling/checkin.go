package scheduling

import (
	"context"
	"time"

	"go.uber.org/zap"

	"slotwise/models"
)

// earlyArrival is the advisory threshold before start time. The server does
// not reject early check-ins; clients may warn on the flag.
const earlyArrival = time.Hour

// CheckInResult carries the updated booking plus arrival advisories.
type CheckInResult struct {
	Booking *models.Booking `json:"booking"`
	IsEarly bool            `json:"isEarly"`
	IsLate  bool            `json:"isLate"`
}

// CheckIn marks a confirmed booking as checked in. It is permitted at any
// time up to the grace period (30 minutes) after start, inclusive; later
// attempts fail with a window-closed error. An unpaid cash booking settles on
// check-in.
func (e *Engine) CheckIn(ctx context.Context, bookingID string) (*CheckInResult, error) {
	booking, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if isNoDocuments(err) {
			return nil, errNotFound("booking")
		}
		return nil, err
	}
	if booking.CheckedInAt != nil {
		return nil, errAlreadyCheckedIn(*booking.CheckedInAt)
	}
	if booking.Status != models.StatusConfirmed {
		return nil, errInvalidState("only confirmed bookings can be checked in")
	}

	now := e.now()
	if now.After(booking.StartTime.Add(e.grace())) {
		return nil, errWindowClosed()
	}

	settleCash := booking.PaymentMethod == models.PaymentCash &&
		booking.PaymentStatus == models.PaymentStatusPending

	ok, err := e.Bookings.MarkCheckedIn(ctx, booking.ID, now, settleCash)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost a race; re-read to report the original check-in time.
		if fresh, err := e.Bookings.GetByID(ctx, booking.ID); err == nil && fresh.CheckedInAt != nil {
			return nil, errAlreadyCheckedIn(*fresh.CheckedInAt)
		}
		return nil, errInvalidState("booking can no longer be checked in")
	}

	booking.Status = models.StatusCheckedIn
	booking.CheckedInAt = &now
	if settleCash {
		booking.PaymentStatus = models.PaymentStatusPaid
		booking.PaidAt = &now
	}

	return &CheckInResult{
		Booking: booking,
		IsEarly: now.Before(booking.StartTime.Add(-earlyArrival)),
		IsLate:  now.After(booking.StartTime),
	}, nil
}

// ConfirmPayment reacts to a verified payment signal from the gateway,
// moving pending_payment -> confirmed.
func (e *Engine) ConfirmPayment(ctx context.Context, bookingID string) (*models.Booking, error) {
	now := e.now()
	ok, err := e.Bookings.ConfirmPayment(ctx, bookingID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errInvalidState("booking is not awaiting payment")
	}
	booking, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	e.notify("booking.confirmed", func() error {
		return e.Notifier.BookingConfirmed(context.Background(), booking)
	})
	return booking, nil
}

// MarkPaid settles a cash booking manually.
func (e *Engine) MarkPaid(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if isNoDocuments(err) {
			return nil, errNotFound("booking")
		}
		return nil, err
	}
	if booking.PaymentMethod != models.PaymentCash {
		return nil, errInvalidState("only cash bookings can be marked paid manually")
	}

	now := e.now()
	ok, err := e.Bookings.MarkPaid(ctx, booking.ID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errInvalidState("payment is not pending")
	}
	booking.PaymentStatus = models.PaymentStatusPaid
	booking.PaidAt = &now
	return booking, nil
}

// MarkRefunded records a verified refund signal from the gateway, moving
// payment_status paid -> refunded. The booking status itself is untouched.
func (e *Engine) MarkRefunded(ctx context.Context, bookingID string) (*models.Booking, error) {
	ok, err := e.Bookings.MarkRefunded(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errInvalidState("payment is not refundable")
	}
	booking, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// MarkNoShow is the staff-initiated no-show: rejected while the booking's
// end time is still in the future. Bumps the customer's no-show counter.
func (e *Engine) MarkNoShow(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if isNoDocuments(err) {
			return nil, errNotFound("booking")
		}
		return nil, err
	}

	now := e.now()
	if booking.EndTime.After(now) {
		return nil, errInvalidState("booking has not finished yet")
	}
	if booking.Status != models.StatusConfirmed {
		return nil, errInvalidState("only confirmed bookings can be marked as no-show")
	}

	ok, err := e.Bookings.MarkNoShow(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errInvalidState("booking was already transitioned")
	}
	if err := e.Customers.IncrementNoShow(ctx, booking.CustomerID); err != nil {
		e.Logger.Error("failed to increment no-show counter",
			zap.String("customerID", booking.CustomerID), zap.Error(err))
	}

	booking.Status = models.StatusNoShow
	return booking, nil
}
