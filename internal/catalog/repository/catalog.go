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

// CatalogRepository reads the services and staff tables. Both are
// admin-curated and tiny; full scans per request keep them fresh.
type CatalogRepository interface {
	Services(ctx context.Context) ([]model.Service, error)
	Staffs(ctx context.Context) ([]model.Staff, error)
}

type mongoCatalogRepository struct {
	cfg      *config.Config
	services *mongo.Collection
	staffs   *mongo.Collection
}

func NewMongoCatalogRepository(cfg *config.Config, st *store.Store) CatalogRepository {
	return &mongoCatalogRepository{
		cfg:      cfg,
		services: st.Services(),
		staffs:   st.Staffs(),
	}
}

func (r *mongoCatalogRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCatalogRepository) Services(ctx context.Context) ([]model.Service, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.services.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to read services: %w", err)
	}
	defer cursor.Close(ctx)

	var out []model.Service
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return out, nil
}

func (r *mongoCatalogRepository) Staffs(ctx context.Context) ([]model.Staff, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.staffs.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to read staffs: %w", err)
	}
	defer cursor.Close(ctx)

	var out []model.Staff
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode staffs: %w", err)
	}
	return out, nil
}
