package models

// Customer carries only what the scheduling core needs; account management
// lives elsewhere.
type Customer struct {
	ID          string `bson:"id" json:"id"`
	BusinessID  string `bson:"business_id" json:"business_id"`
	Name        string `bson:"name" json:"name"`
	Email       string `bson:"email" json:"email"`
	Phone       string `bson:"phone,omitempty" json:"phone,omitempty"`
	NoShowCount int    `bson:"no_show_count" json:"no_show_count"`
}
