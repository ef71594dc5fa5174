package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nailbook/internal/store"
	"nailbook/pkg/config"
	"nailbook/pkg/model"
)

type CustomerRepository interface {
	All(ctx context.Context) ([]model.Customer, error)
	Upsert(ctx context.Context, customer *model.Customer) error
}

type mongoCustomerRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoCustomerRepository(cfg *config.Config, st *store.Store) CustomerRepository {
	return &mongoCustomerRepository{
		cfg:        cfg,
		collection: st.Customers(),
	}
}

func (r *mongoCustomerRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCustomerRepository) All(ctx context.Context) ([]model.Customer, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}
	defer cursor.Close(ctx)

	var out []model.Customer
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}
	return out, nil
}

// Upsert writes the profile keyed by customer ID.
func (r *mongoCustomerRepository) Upsert(ctx context.Context, customer *model.Customer) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"customer_id": customer.ID}
	update := bson.M{"$set": customer}
	if _, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to upsert customer %s: %w", customer.ID, err)
	}
	return nil
}
