// File: database/repository/customer/interface.go
package customerRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"slotwise/database"
	"slotwise/models"
)

// CustomerRepository covers the slice of customer data the scheduling core
// touches: lookups and the no-show counter. Account CRUD lives elsewhere.
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	IncrementNoShow(ctx context.Context, id string) error
}

type mongoCustomerRepo struct {
	coll *mongo.Collection
}

// NewMongoCustomerRepo constructs a new MongoDB CustomerRepository.
func NewMongoCustomerRepo() CustomerRepository {
	return &mongoCustomerRepo{coll: database.DB().Collection("customers")}
}
