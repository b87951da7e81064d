package models

// Service is a bookable offering. Immutable for the duration of a slot computation.
type Service struct {
	ID              string  `bson:"id" json:"id"`
	BusinessID      string  `bson:"business_id" json:"business_id"`
	Name            string  `bson:"name" json:"name"`
	DurationMinutes int     `bson:"duration_minutes" json:"duration_minutes"`
	Price           float64 `bson:"price" json:"price"`
}
