// File: database/repository/customer/crud.go
package customerRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"slotwise/models"
)

func (r *mongoCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c models.Customer
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *mongoCustomerRepo) IncrementNoShow(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"no_show_count": 1}})
	return err
}
