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

type ReviewRepository interface {
	All(ctx context.Context) ([]model.Review, error)
	Insert(ctx context.Context, review *model.Review) error
	InsertMany(ctx context.Context, reviews []model.Review) error
	UpdateStatus(ctx context.Context, orderID string, status model.ReviewStatus) (bool, error)
	SetImage(ctx context.Context, orderID, imageURL string) (bool, error)
}

type mongoReviewRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoReviewRepository(cfg *config.Config, st *store.Store) ReviewRepository {
	return &mongoReviewRepository{
		cfg:        cfg,
		collection: st.Reviews(),
	}
}

func (r *mongoReviewRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoReviewRepository) All(ctx context.Context) ([]model.Review, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to read reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var out []model.Review
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return out, nil
}

func (r *mongoReviewRepository) Insert(ctx context.Context, review *model.Review) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, review); err != nil {
		return fmt.Errorf("failed to insert review for %s: %w", review.OrderID, err)
	}
	return nil
}

func (r *mongoReviewRepository) InsertMany(ctx context.Context, reviews []model.Review) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	docs := make([]any, len(reviews))
	for i := range reviews {
		docs[i] = reviews[i]
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert %d reviews: %w", len(reviews), err)
	}
	return nil
}

func (r *mongoReviewRepository) UpdateStatus(ctx context.Context, orderID string, status model.ReviewStatus) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"order_id": orderID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update review %s: %w", orderID, err)
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoReviewRepository) SetImage(ctx context.Context, orderID, imageURL string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"order_id": orderID},
		bson.M{"$set": bson.M{"image_url": imageURL}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to attach image to review %s: %w", orderID, err)
	}
	return res.MatchedCount > 0, nil
}
