package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"slotwise/models"
)

const lockTTL = 5 * time.Second

// CreateBookingInput is a public or staff booking submission.
type CreateBookingInput struct {
	BusinessID    string
	ServiceID     string
	CustomerID    string
	StartTime     time.Time
	PaymentMethod string // "cash" or "online"; empty defaults to cash
}

// CreateBooking validates the request, gates it through conflict detection
// under the per-business lock, and inserts the booking. EndTime is derived
// from the service duration; online-payment bookings start in
// pending_payment, everything else in confirmed.
func (e *Engine) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if in.BusinessID == "" || in.ServiceID == "" || in.CustomerID == "" {
		return nil, errValidation("business_id, service_id and customer_id are required")
	}
	if in.StartTime.IsZero() {
		return nil, errValidation("start_time is required")
	}
	method := in.PaymentMethod
	if method == "" {
		method = models.PaymentCash
	}
	if method != models.PaymentCash && method != models.PaymentOnline {
		return nil, errValidation("payment_method must be cash or online")
	}

	biz, err := e.Businesses.GetByID(ctx, in.BusinessID)
	if err != nil {
		if isNoDocuments(err) {
			return nil, errNotFound("business")
		}
		return nil, err
	}
	svc, err := e.Businesses.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		if isNoDocuments(err) {
			return nil, errNotFound("service")
		}
		return nil, err
	}
	if _, err := e.Customers.GetByID(ctx, in.CustomerID); err != nil {
		if isNoDocuments(err) {
			return nil, errNotFound("customer")
		}
		return nil, err
	}

	now := e.now()
	if biz.MaxAdvanceDays > 0 && in.StartTime.After(now.AddDate(0, 0, biz.MaxAdvanceDays)) {
		return nil, errValidation("start_time is beyond the booking horizon")
	}

	start := in.StartTime
	end := start.Add(time.Duration(svc.DurationMinutes) * time.Minute)
	buffer := e.buffer(biz)

	// The overlap check and insert must act as one unit; two concurrent
	// requests for the same business otherwise both pass the check.
	release, err := e.Locks.Acquire(ctx, "booking:"+in.BusinessID, lockTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := e.ensureFree(ctx, in.BusinessID, start, end, buffer, ""); err != nil {
		return nil, err
	}

	status := models.StatusConfirmed
	if method == models.PaymentOnline {
		status = models.StatusPendingPayment
	}
	booking := &models.Booking{
		ID:            uuid.New().String(),
		BusinessID:    in.BusinessID,
		ServiceID:     in.ServiceID,
		CustomerID:    in.CustomerID,
		StartTime:     start,
		EndTime:       end,
		Status:        status,
		PaymentMethod: method,
		PaymentStatus: models.PaymentStatusPending,
		CreatedAt:     now,
	}
	if err := e.Bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if status == models.StatusConfirmed {
		e.notify("booking.confirmed", func() error {
			return e.Notifier.BookingConfirmed(context.Background(), booking)
		})
	} else if e.Payments != nil {
		// The booking stands even if intent creation fails; the client can
		// retry payment while the slot is held in pending_payment.
		secret, err := e.Payments.CreateIntent(ctx, booking, svc.Price, e.currency())
		if err != nil {
			e.Logger.Warn("payment intent creation failed",
				zap.String("bookingID", booking.ID), zap.Error(err))
		} else {
			booking.PaymentClientSecret = secret
		}
	}
	return booking, nil
}

// CancelBooking cancels a booking on behalf of the customer or the business,
// gated by the cancellation policy.
func (e *Engine) CancelBooking(ctx context.Context, bookingID, cancelledBy, reason string) (*models.Booking, error) {
	if cancelledBy != models.CancelledByCustomer && cancelledBy != models.CancelledByBusiness {
		return nil, errValidation("cancelled_by must be customer or business")
	}

	booking, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if isNoDocuments(err) {
			return nil, errNotFound("booking")
		}
		return nil, err
	}
	biz, err := e.Businesses.GetByID(ctx, booking.BusinessID)
	if err != nil {
		return nil, err
	}

	now := e.now()
	decision := EvaluatePolicy(booking, biz, now)
	if !decision.CanCancel {
		return nil, errPolicy(decision)
	}

	ok, err := e.Bookings.Cancel(ctx, booking.ID, now, cancelledBy, reason, "")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errInvalidState("booking can no longer be cancelled")
	}

	booking.Status = models.StatusCancelled
	booking.CancelledAt = &now
	booking.CancelledBy = cancelledBy
	booking.CancellationReason = reason

	e.notify("booking.cancelled", func() error {
		return e.Notifier.BookingCancelled(context.Background(), booking)
	})
	return booking, nil
}

// Reschedule cancels the original booking with reason "Rescheduled" and
// creates its conflict-checked replacement, linking the two. The replacement
// goes through the same conflict gate as creation, with the original excluded
// from the overlap scan.
func (e *Engine) Reschedule(ctx context.Context, bookingID string, newStart, newEnd time.Time) (*models.Booking, *models.Booking, error) {
	if newStart.IsZero() {
		return nil, nil, errValidation("new_start_time is required")
	}

	original, err := e.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil, errNotFound("booking")
		}
		return nil, nil, err
	}
	biz, err := e.Businesses.GetByID(ctx, original.BusinessID)
	if err != nil {
		return nil, nil, err
	}
	svc, err := e.Businesses.GetService(ctx, original.BusinessID, original.ServiceID)
	if err != nil {
		return nil, nil, err
	}

	now := e.now()
	decision := EvaluatePolicy(original, biz, now)
	if !decision.CanCancel {
		return nil, nil, errPolicy(decision)
	}

	// End is always recomputed from the service duration; a mismatched
	// explicit end is a malformed request.
	computedEnd := newStart.Add(time.Duration(svc.DurationMinutes) * time.Minute)
	if !newEnd.IsZero() && !newEnd.Equal(computedEnd) {
		return nil, nil, errValidation("new_end_time does not match the service duration")
	}
	buffer := e.buffer(biz)

	release, err := e.Locks.Acquire(ctx, "booking:"+original.BusinessID, lockTTL)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	if err := e.ensureFree(ctx, original.BusinessID, newStart, computedEnd, buffer, original.ID); err != nil {
		return nil, nil, err
	}

	replacementID := uuid.New().String()
	ok, err := e.Bookings.Cancel(ctx, original.ID, now, models.CancelledByCustomer, models.ReasonRescheduled, replacementID)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, errInvalidState("booking can no longer be rescheduled")
	}

	replacement := &models.Booking{
		ID:              replacementID,
		BusinessID:      original.BusinessID,
		ServiceID:       original.ServiceID,
		CustomerID:      original.CustomerID,
		StartTime:       newStart,
		EndTime:         computedEnd,
		Status:          models.StatusConfirmed,
		PaymentMethod:   original.PaymentMethod,
		PaymentStatus:   original.PaymentStatus,
		PaidAt:          original.PaidAt,
		RescheduledFrom: original.ID,
		CreatedAt:       now,
	}
	if err := e.Bookings.Create(ctx, replacement); err != nil {
		// The original is already cancelled; surface the failure loudly so
		// the operator can reconcile rather than silently double-booking.
		e.Logger.Error("reschedule: replacement insert failed after cancel",
			zap.String("originalID", original.ID),
			zap.String("replacementID", replacementID),
			zap.Error(err))
		return nil, nil, err
	}

	original.Status = models.StatusCancelled
	original.CancelledAt = &now
	original.CancelledBy = models.CancelledByCustomer
	original.CancellationReason = models.ReasonRescheduled
	original.RescheduledTo = replacementID

	e.notify("booking.rescheduled", func() error {
		return e.Notifier.BookingRescheduled(context.Background(), original, replacement)
	})
	return original, replacement, nil
}

// ensureFree rejects when [start,end) overlaps any non-cancelled booking for
// the business, stretching existing intervals by buffer. The overlap query
// widens its window by the buffer so stretched intervals are not missed.
func (e *Engine) ensureFree(ctx context.Context, businessID string, start, end time.Time, buffer time.Duration, excludeID string) error {
	others, err := e.Bookings.ListOverlapping(ctx, businessID, start.Add(-buffer), end, excludeID)
	if err != nil {
		return err
	}
	existing := make([]Interval, 0, len(others))
	for _, b := range others {
		existing = append(existing, Interval{Start: b.StartTime, End: b.EndTime})
	}
	if HasConflict(existing, start, end, buffer) {
		return errConflict("requested time overlaps an existing booking")
	}
	return nil
}
