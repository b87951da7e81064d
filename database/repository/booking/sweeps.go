// File: database/repository/booking/sweeps.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"slotwise/models"
)

func (r *mongoBookingRepo) CompleteFinished(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":   models.StatusCheckedIn,
		"end_time": bson.M{"$lt": now},
	}
	res, err := r.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"status": models.StatusCompleted}})
	if err != nil {
		return 0, fmt.Errorf("auto-complete update failed: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *mongoBookingRepo) ListNoShowCandidates(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":        models.StatusConfirmed,
		"checked_in_at": bson.M{"$exists": false},
		"start_time":    bson.M{"$lt": cutoff},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch no-show candidates: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}
