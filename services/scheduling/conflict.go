package scheduling

import "time"

// Interval is a half-open [Start, End) time range.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect: aStart < bEnd && bStart < aEnd.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// HasConflict reports whether [start,end) overlaps any existing interval.
// When buffer > 0 each existing interval's end is stretched by the buffer, so
// a new booking cannot start inside the gap a business wants after each
// appointment. Callers pass buffer 0 to reproduce the unbuffered behavior.
func HasConflict(existing []Interval, start, end time.Time, buffer time.Duration) bool {
	for _, iv := range existing {
		if Overlaps(start, end, iv.Start, iv.End.Add(buffer)) {
			return true
		}
	}
	return false
}
