package scheduling

import (
	"fmt"
	"time"

	"slotwise/models"
)

// Decision is the outcome of a cancellation/reschedule eligibility check.
type Decision struct {
	CanCancel         bool    `json:"canCancel"`
	Reason            string  `json:"reason,omitempty"`
	HoursUntilBooking float64 `json:"hoursUntilBooking"`
}

// EvaluatePolicy gates a cancellation (or reschedule, which shares the same
// rules) against the business's configured policy.
//
// Rules in order: a booking that already started cannot be cancelled; neither
// can one that is already cancelled. Otherwise flexible always allows, strict
// always rejects, and moderate allows iff the remaining notice meets
// CancellationHours (inclusive). An unknown or unset policy behaves as
// flexible.
func EvaluatePolicy(b *models.Booking, biz *models.Business, now time.Time) Decision {
	hoursUntil := b.StartTime.Sub(now).Hours()

	if now.After(b.StartTime) {
		return Decision{Reason: "booking has already passed", HoursUntilBooking: hoursUntil}
	}
	if b.Status == models.StatusCancelled {
		return Decision{Reason: "booking is already cancelled", HoursUntilBooking: hoursUntil}
	}

	switch biz.CancellationPolicy {
	case models.PolicyStrict:
		return Decision{
			Reason:            "booking cannot be cancelled due to strict cancellation policy",
			HoursUntilBooking: hoursUntil,
		}
	case models.PolicyModerate:
		if hoursUntil >= float64(biz.CancellationHours) {
			return Decision{CanCancel: true, HoursUntilBooking: hoursUntil}
		}
		return Decision{
			Reason:            fmt.Sprintf("cancellations require at least %d hours notice", biz.CancellationHours),
			HoursUntilBooking: hoursUntil,
		}
	default:
		// flexible, or anything unrecognized
		return Decision{CanCancel: true, HoursUntilBooking: hoursUntil}
	}
}
