package scheduling

import (
	"fmt"
	"time"

	"slotwise/models"
)

// DefaultStepMinutes is the fixed slot cadence. Keeping it independent of the
// service duration keeps start times predictable across services sharing one
// calendar.
const DefaultStepMinutes = 15

// SlotParams carry the per-request knobs for slot generation.
type SlotParams struct {
	DurationMinutes int
	BufferMinutes   int
	MinNoticeHours  int
	StepMinutes     int // 0 falls back to DefaultStepMinutes
	EnforceBuffer   bool
}

// GenerateSlots produces the ordered candidate slots for a "2006-01-02" date.
//
// A blocked date or a weekday without an enabled window yields an empty list.
// Slots starting before now+MinNoticeHours are dropped. Remaining slots are
// flagged "past" when their start is already behind now, "booked" when the
// slot interval overlaps an existing booking (half-open), else "available".
// When EnforceBuffer is set, each existing booking's end is stretched by
// BufferMinutes before the overlap test; with it off the buffer has no effect
// on slot availability.
func GenerateSlots(cal *Calendar, date string, p SlotParams, existing []Interval, now time.Time) ([]models.Slot, error) {
	if p.DurationMinutes <= 0 {
		return nil, fmt.Errorf("non-positive service duration %d", p.DurationMinutes)
	}
	if cal.IsBlocked(date) {
		return []models.Slot{}, nil
	}

	day, err := time.ParseInLocation("2006-01-02", date, cal.Location())
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	win, ok := cal.WindowFor(day.Weekday())
	if !ok {
		return []models.Slot{}, nil
	}

	startMin, err := minuteOfDay(win.Start)
	if err != nil {
		return nil, err
	}
	endMin, err := minuteOfDay(win.End)
	if err != nil {
		return nil, err
	}

	step := p.StepMinutes
	if step <= 0 {
		step = DefaultStepMinutes
	}

	buffer := time.Duration(0)
	if p.EnforceBuffer {
		buffer = time.Duration(p.BufferMinutes) * time.Minute
	}
	duration := time.Duration(p.DurationMinutes) * time.Minute
	noticeFloor := now.Add(time.Duration(p.MinNoticeHours) * time.Hour)

	slots := []models.Slot{}
	for m := startMin; m+p.DurationMinutes <= endMin; m += step {
		slotStart := day.Add(time.Duration(m) * time.Minute)
		slotEnd := slotStart.Add(duration)

		if slotStart.Before(noticeFloor) && p.MinNoticeHours > 0 {
			continue
		}

		status := models.SlotAvailable
		switch {
		case slotStart.Before(now):
			status = models.SlotPast
		case HasConflict(existing, slotStart, slotEnd, buffer):
			status = models.SlotBooked
		}

		slots = append(slots, models.Slot{
			Time:      slotStart.Format("15:04"),
			DateTime:  slotStart,
			Available: status == models.SlotAvailable,
			Status:    status,
		})
	}
	return slots, nil
}
