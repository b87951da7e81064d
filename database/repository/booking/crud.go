// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slotwise/database"
	"slotwise/models"
)

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by the "bookings"
// collection.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{coll: database.DB().Collection("bookings")}
}

func (r *mongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	_, err := r.coll.InsertOne(ctx, b)
	return err
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *mongoBookingRepo) Cancel(ctx context.Context, id string, at time.Time, by, reason, rescheduledTo string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"status":              models.StatusCancelled,
		"cancelled_at":        at,
		"cancelled_by":        by,
		"cancellation_reason": reason,
	}
	if rescheduledTo != "" {
		set["rescheduled_to"] = rescheduledTo
	}
	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": []string{models.StatusConfirmed, models.StatusPendingPayment}},
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *mongoBookingRepo) MarkCheckedIn(ctx context.Context, id string, at time.Time, settleCash bool) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{
		"status":        models.StatusCheckedIn,
		"checked_in_at": at,
	}
	if settleCash {
		set["payment_status"] = models.PaymentStatusPaid
		set["paid_at"] = at
	}
	filter := bson.M{
		"id":            id,
		"status":        models.StatusConfirmed,
		"checked_in_at": bson.M{"$exists": false},
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *mongoBookingRepo) ConfirmPayment(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.StatusPendingPayment}
	update := bson.M{"$set": bson.M{
		"status":         models.StatusConfirmed,
		"payment_status": models.PaymentStatusPaid,
		"paid_at":        paidAt,
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *mongoBookingRepo) MarkPaid(ctx context.Context, id string, paidAt time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "payment_status": models.PaymentStatusPending}
	update := bson.M{"$set": bson.M{
		"payment_status": models.PaymentStatusPaid,
		"paid_at":        paidAt,
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *mongoBookingRepo) MarkRefunded(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "payment_status": models.PaymentStatusPaid}
	update := bson.M{"$set": bson.M{"payment_status": models.PaymentStatusRefunded}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *mongoBookingRepo) MarkNoShow(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.StatusConfirmed}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": models.StatusNoShow}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
