package models

import "time"

// Slot statuses returned by the slot query.
const (
	SlotAvailable = "available"
	SlotPast      = "past"
	SlotBooked    = "booked"
)

// Slot is one candidate bookable interval on a given date.
type Slot struct {
	Time      string    `json:"time"`     // "HH:MM" in the business timezone
	DateTime  time.Time `json:"datetime"` // slot start
	Available bool      `json:"available"`
	Status    string    `json:"status"`
}
