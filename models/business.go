package models

// Cancellation policies a business can configure.
const (
	PolicyFlexible = "flexible"
	PolicyModerate = "moderate"
	PolicyStrict   = "strict"
)

// AvailabilityWindow is one recurring weekly opening, keyed by weekday (0=Sunday).
type AvailabilityWindow struct {
	Weekday int    `bson:"weekday" json:"weekday"`
	Start   string `bson:"start" json:"start"` // "HH:MM", 24h
	End     string `bson:"end" json:"end"`     // "HH:MM", 24h
	Enabled bool   `bson:"enabled" json:"enabled"`
}

// Business owns a single bookable calendar (one implicit resource).
type Business struct {
	ID                 string               `bson:"id" json:"id"`
	Name               string               `bson:"name" json:"name"`
	Timezone           string               `bson:"timezone" json:"timezone"` // IANA name, e.g. "America/New_York"
	Availability       []AvailabilityWindow `bson:"availability" json:"availability"`
	BufferMinutes      int                  `bson:"buffer_minutes" json:"bufferMinutes"`
	MinNoticeHours     int                  `bson:"min_notice_hours" json:"minNoticeHours"`
	MaxAdvanceDays     int                  `bson:"max_advance_days" json:"maxAdvanceDays"`
	CancellationPolicy string               `bson:"cancellation_policy" json:"cancellationPolicy"`
	CancellationHours  int                  `bson:"cancellation_hours" json:"cancellationHours"` // notice required under the moderate policy
}

// WindowFor returns the enabled availability window for a weekday, if any.
func (b *Business) WindowFor(weekday int) (AvailabilityWindow, bool) {
	for _, w := range b.Availability {
		if w.Weekday == weekday && w.Enabled {
			return w, true
		}
	}
	return AvailabilityWindow{}, false
}
