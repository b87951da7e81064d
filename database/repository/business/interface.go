// File: database/repository/business/interface.go
package businessRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"slotwise/database"
	"slotwise/models"
)

// BusinessRepository exposes the read-only settings the scheduling core
// consumes. Businesses mutate their own settings elsewhere; the core never
// writes here.
type BusinessRepository interface {
	GetByID(ctx context.Context, id string) (*models.Business, error)
	GetService(ctx context.Context, businessID, serviceID string) (*models.Service, error)
	ListBlockedDates(ctx context.Context, businessID string, from, to string) ([]models.BlockedDate, error)
}

type mongoBusinessRepo struct {
	businesses *mongo.Collection
	services   *mongo.Collection
	blocked    *mongo.Collection
}

// NewMongoBusinessRepo constructs a new MongoDB BusinessRepository.
func NewMongoBusinessRepo() BusinessRepository {
	db := database.DB()
	return &mongoBusinessRepo{
		businesses: db.Collection("businesses"),
		services:   db.Collection("services"),
		blocked:    db.Collection("blocked_dates"),
	}
}
