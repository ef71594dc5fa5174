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

type SettingsRepository interface {
	All(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string) error
}

type mongoSettingsRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSettingsRepository(cfg *config.Config, st *store.Store) SettingsRepository {
	return &mongoSettingsRepository{
		cfg:        cfg,
		collection: st.Settings(),
	}
}

func (r *mongoSettingsRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// All reads the whole settings table. Every request that needs settings
// re-reads them so admin edits take effect immediately.
func (r *mongoSettingsRepository) All(ctx context.Context) (map[string]string, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	defer cursor.Close(ctx)

	out := make(map[string]string)
	for cursor.Next(ctx) {
		var row model.Setting
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode setting row: %w", err)
		}
		out[row.Key] = row.Value
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("settings cursor failed: %w", err)
	}
	return out, nil
}

func (r *mongoSettingsRepository) Set(ctx context.Context, key, value string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"key": key}
	update := bson.M{"$set": bson.M{"key": key, "value": value}}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert setting %q: %w", key, err)
	}
	return nil
}

func (r *mongoSettingsRepository) SetMany(ctx context.Context, values map[string]string) error {
	for key, value := range values {
		if err := r.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}
