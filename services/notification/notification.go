package notification

import (
	"context"

	"go.uber.org/zap"

	"slotwise/models"
)

// Sender delivers customer- and business-facing booking notifications.
// Senders are best-effort: the engine logs and swallows failures, a booking
// state change never rolls back because an email did not go out.
type Sender interface {
	BookingConfirmed(ctx context.Context, b *models.Booking) error
	BookingCancelled(ctx context.Context, b *models.Booking) error
	BookingRescheduled(ctx context.Context, original, replacement *models.Booking) error
}

// LogSender is the default Sender: it records the notification intent and
// leaves delivery to an external mailer consuming the logs/queue.
type LogSender struct {
	Logger *zap.Logger
}

func (s *LogSender) BookingConfirmed(ctx context.Context, b *models.Booking) error {
	s.Logger.Info("notify: booking confirmed",
		zap.String("bookingID", b.ID),
		zap.String("businessID", b.BusinessID),
		zap.Time("startTime", b.StartTime))
	return nil
}

func (s *LogSender) BookingCancelled(ctx context.Context, b *models.Booking) error {
	s.Logger.Info("notify: booking cancelled",
		zap.String("bookingID", b.ID),
		zap.String("businessID", b.BusinessID),
		zap.String("cancelledBy", b.CancelledBy),
		zap.String("reason", b.CancellationReason))
	return nil
}

func (s *LogSender) BookingRescheduled(ctx context.Context, original, replacement *models.Booking) error {
	s.Logger.Info("notify: booking rescheduled",
		zap.String("originalID", original.ID),
		zap.String("replacementID", replacement.ID),
		zap.Time("newStartTime", replacement.StartTime))
	return nil
}
