package models

import "time"

// BlockedDate takes a calendar date out of circulation for a business.
// Slot generation treats any row for a date as blocking the whole day.
type BlockedDate struct {
	ID         string    `bson:"id" json:"id"`
	BusinessID string    `bson:"business_id" json:"business_id"`
	Date       string    `bson:"date" json:"date"` // "2006-01-02", business-local
	AllDay     bool      `bson:"all_day" json:"all_day"`
	Reason     string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
