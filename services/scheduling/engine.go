package scheduling

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	bookingRepo "slotwise/database/repository/booking"
	businessRepo "slotwise/database/repository/business"
	customerRepo "slotwise/database/repository/customer"
	"slotwise/models"
	"slotwise/services/notification"
	"slotwise/services/payment"
)

// Locker serializes the read-then-write sections (overlap check + insert) per
// business. Acquire blocks until the lock is held or ctx is done and returns
// the release func.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

// Options are the engine-wide knobs, loaded from configuration at startup.
type Options struct {
	SlotStepMinutes     int
	CheckinGraceMinutes int
	EnforceBuffer       bool
	Currency            string // defaults to "usd"
}

// Engine is the scheduling core: slot generation, conflict gating and the
// booking lifecycle state machine.
type Engine struct {
	Bookings   bookingRepo.BookingRepository
	Businesses businessRepo.BusinessRepository
	Customers  customerRepo.CustomerRepository
	Locks      Locker
	Notifier   notification.Sender
	Payments   payment.Gateway // nil disables online-payment intents
	Clock      Clock
	Logger     *zap.Logger
	Opts       Options
}

func (e *Engine) now() time.Time {
	if e.Clock != nil {
		return e.Clock.Now()
	}
	return time.Now()
}

func (e *Engine) grace() time.Duration {
	if e.Opts.CheckinGraceMinutes > 0 {
		return time.Duration(e.Opts.CheckinGraceMinutes) * time.Minute
	}
	return 30 * time.Minute
}

// buffer returns the effective conflict buffer for a business: zero unless
// enforcement is enabled.
func (e *Engine) buffer(biz *models.Business) time.Duration {
	if !e.Opts.EnforceBuffer {
		return 0
	}
	return time.Duration(biz.BufferMinutes) * time.Minute
}

// notify runs a notification send without letting its outcome touch the
// booking mutation that triggered it.
func (e *Engine) notify(what string, send func() error) {
	go func() {
		if err := send(); err != nil {
			e.Logger.Warn("notification send failed", zap.String("event", what), zap.Error(err))
		}
	}()
}

func (e *Engine) currency() string {
	if e.Opts.Currency != "" {
		return e.Opts.Currency
	}
	return "usd"
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// AvailableSlots answers the time-slot query: the ordered candidate slots for
// a business, service and "2006-01-02" date. An empty list (blocked date,
// closed weekday, or beyond the booking horizon) is a valid answer, not an
// error.
func (e *Engine) AvailableSlots(ctx context.Context, businessID, serviceID, date string) ([]models.Slot, error) {
	biz, err := e.Businesses.GetByID(ctx, businessID)
	if err != nil {
		if isNoDocuments(err) {
			return nil, errNotFound("business")
		}
		return nil, err
	}
	svc, err := e.Businesses.GetService(ctx, businessID, serviceID)
	if err != nil {
		if isNoDocuments(err) {
			return nil, errNotFound("service")
		}
		return nil, err
	}

	blocked, err := e.Businesses.ListBlockedDates(ctx, businessID, date, date)
	if err != nil {
		return nil, err
	}
	cal, err := BuildCalendar(biz, blocked)
	if err != nil {
		return nil, err
	}

	day, err := time.ParseInLocation("2006-01-02", date, cal.Location())
	if err != nil {
		return nil, errValidation("invalid date, want YYYY-MM-DD")
	}

	now := e.now()
	if biz.MaxAdvanceDays > 0 && day.After(now.AddDate(0, 0, biz.MaxAdvanceDays)) {
		return []models.Slot{}, nil
	}

	dayEnd := day.AddDate(0, 0, 1)
	bookings, err := e.Bookings.ListForDay(ctx, businessID, day, dayEnd)
	if err != nil {
		return nil, err
	}
	existing := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		existing = append(existing, Interval{Start: b.StartTime, End: b.EndTime})
	}

	return GenerateSlots(cal, date, SlotParams{
		DurationMinutes: svc.DurationMinutes,
		BufferMinutes:   biz.BufferMinutes,
		MinNoticeHours:  biz.MinNoticeHours,
		StepMinutes:     e.Opts.SlotStepMinutes,
		EnforceBuffer:   e.Opts.EnforceBuffer,
	}, existing, now)
}

// ListBookings returns the non-cancelled bookings touching a "2006-01-02" day
// for a business, in business-local time.
func (e *Engine) ListBookings(ctx context.Context, businessID, date string) ([]models.Booking, error) {
	biz, err := e.Businesses.GetByID(ctx, businessID)
	if err != nil {
		if isNoDocuments(err) {
			return nil, errNotFound("business")
		}
		return nil, err
	}

	loc := time.UTC
	if biz.Timezone != "" {
		if l, err := time.LoadLocation(biz.Timezone); err == nil {
			loc = l
		}
	}
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, errValidation("invalid date, want YYYY-MM-DD")
	}

	bookings, err := e.Bookings.ListForDay(ctx, businessID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}
