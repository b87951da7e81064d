package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"slotwise/models"
)

// Calendar is an immutable per-request view of a business's recurring weekly
// windows plus its blocked dates. Built once from a store read, never mutated.
type Calendar struct {
	windows map[int]models.AvailabilityWindow
	blocked map[string]struct{}
	loc     *time.Location
}

// BuildCalendar assembles a Calendar from the business document and the
// blocked-date rows relevant to the request.
func BuildCalendar(biz *models.Business, blocked []models.BlockedDate) (*Calendar, error) {
	loc := time.UTC
	if biz.Timezone != "" {
		l, err := time.LoadLocation(biz.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid business timezone %q: %w", biz.Timezone, err)
		}
		loc = l
	}

	windows := make(map[int]models.AvailabilityWindow, len(biz.Availability))
	for _, w := range biz.Availability {
		if w.Enabled {
			windows[w.Weekday] = w
		}
	}

	blockedSet := make(map[string]struct{}, len(blocked))
	for _, b := range blocked {
		blockedSet[b.Date] = struct{}{}
	}

	return &Calendar{windows: windows, blocked: blockedSet, loc: loc}, nil
}

// WindowFor returns the enabled window for a weekday (0=Sunday), if any.
func (c *Calendar) WindowFor(weekday time.Weekday) (models.AvailabilityWindow, bool) {
	w, ok := c.windows[int(weekday)]
	return w, ok
}

// IsBlocked reports whether the "2006-01-02" date is fully blocked.
func (c *Calendar) IsBlocked(date string) bool {
	_, ok := c.blocked[date]
	return ok
}

// Location returns the business timezone.
func (c *Calendar) Location() *time.Location { return c.loc }

// minuteOfDay parses an "HH:MM" clock string into minutes from midnight.
func minuteOfDay(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", clock)
	}
	return h*60 + m, nil
}
