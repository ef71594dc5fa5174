package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"nailbook/internal/store"
	"nailbook/pkg/config"
	"nailbook/pkg/model"
)

type BookingRepository interface {
	// All returns every booking row. Callers work on the in-memory snapshot;
	// the table is small enough that full scans beat index bookkeeping.
	All(ctx context.Context) ([]model.Booking, error)
	Insert(ctx context.Context, booking *model.Booking) error
	UpdateStatus(ctx context.Context, orderID string, status model.BookingStatus) (bool, error)
	SetApproval(ctx context.Context, orderID, approvedBy string, approvedAt time.Time) error
	SetSlip(ctx context.Context, orderID, slipURL string) (bool, error)
	Delete(ctx context.Context, orderID string) (bool, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config, st *store.Store) BookingRepository {
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: st.Bookings(),
	}
}

func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) All(ctx context.Context) ([]model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var out []model.Booking
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return out, nil
}

func (r *mongoBookingRepository) Insert(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to insert booking %s: %w", booking.OrderID, err)
	}
	return nil
}

func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, orderID string, status model.BookingStatus) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"order_id": orderID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update booking %s: %w", orderID, err)
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoBookingRepository) SetApproval(ctx context.Context, orderID, approvedBy string, approvedAt time.Time) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"order_id": orderID},
		bson.M{"$set": bson.M{"approved_by": approvedBy, "approved_at": approvedAt}},
	)
	if err != nil {
		return fmt.Errorf("failed to record approval for %s: %w", orderID, err)
	}
	return nil
}

// SetSlip attaches a payment slip and moves the booking to payment_uploaded
// in one write.
func (r *mongoBookingRepository) SetSlip(ctx context.Context, orderID, slipURL string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"order_id": orderID},
		bson.M{"$set": bson.M{"slip_url": slipURL, "status": model.StatusPaymentUploaded}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to attach slip to %s: %w", orderID, err)
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoBookingRepository) Delete(ctx context.Context, orderID string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"order_id": orderID})
	if err != nil {
		return false, fmt.Errorf("failed to delete booking %s: %w", orderID, err)
	}
	return res.DeletedCount > 0, nil
}
