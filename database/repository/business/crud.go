// File: database/repository/business/crud.go
package businessRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"slotwise/models"
)

func (r *mongoBusinessRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var biz models.Business
	if err := r.businesses.FindOne(ctx, bson.M{"id": id}).Decode(&biz); err != nil {
		return nil, err
	}
	return &biz, nil
}

func (r *mongoBusinessRepo) GetService(ctx context.Context, businessID, serviceID string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": serviceID, "business_id": businessID}
	var svc models.Service
	if err := r.services.FindOne(ctx, filter).Decode(&svc); err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *mongoBusinessRepo) ListBlockedDates(ctx context.Context, businessID string, from, to string) ([]models.BlockedDate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"business_id": businessID,
		"date":        bson.M{"$gte": from, "$lte": to},
	}
	cursor, err := r.blocked.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocked dates: %w", err)
	}
	defer cursor.Close(ctx)

	var blocked []models.BlockedDate
	if err := cursor.All(ctx, &blocked); err != nil {
		return nil, fmt.Errorf("error decoding blocked dates: %w", err)
	}
	return blocked, nil
}
