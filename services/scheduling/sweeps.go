package scheduling

import (
	"context"

	"go.uber.org/zap"
)

// AutoComplete moves every checked-in booking whose end time has passed to
// completed. Idempotent: a second run with no intervening mutation finds
// nothing.
func (e *Engine) AutoComplete(ctx context.Context) (int64, error) {
	updated, err := e.Bookings.CompleteFinished(ctx, e.now())
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		e.Logger.Info("auto-complete sweep", zap.Int64("updated", updated))
	}
	return updated, nil
}

// AutoNoShow moves confirmed, never-checked-in bookings whose start passed
// more than the grace period ago to no_show and bumps each customer's
// counter. Each flip is conditioned on the booking still being confirmed, so
// overlapping sweep runs cannot double-transition or double-increment.
func (e *Engine) AutoNoShow(ctx context.Context) (int64, error) {
	cutoff := e.now().Add(-e.grace())
	candidates, err := e.Bookings.ListNoShowCandidates(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	var updated int64
	for _, b := range candidates {
		ok, err := e.Bookings.MarkNoShow(ctx, b.ID)
		if err != nil {
			e.Logger.Error("auto-no-show: mark failed", zap.String("bookingID", b.ID), zap.Error(err))
			continue
		}
		if !ok {
			// Transitioned by a concurrent sweep or a late check-in.
			continue
		}
		updated++
		if err := e.Customers.IncrementNoShow(ctx, b.CustomerID); err != nil {
			e.Logger.Error("auto-no-show: counter increment failed",
				zap.String("customerID", b.CustomerID), zap.Error(err))
		}
	}
	if updated > 0 {
		e.Logger.Info("auto-no-show sweep", zap.Int64("updated", updated))
	}
	return updated, nil
}
