package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"nailbook/internal/store"
	"nailbook/pkg/config"
	"nailbook/pkg/model"
)

// ServiceRecordRepository archives completed visits.
type ServiceRecordRepository interface {
	Insert(ctx context.Context, record *model.ServiceRecord) error
}

type mongoServiceRecordRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoServiceRecordRepository(cfg *config.Config, st *store.Store) ServiceRecordRepository {
	return &mongoServiceRecordRepository{
		cfg:        cfg,
		collection: st.ServiceRecords(),
	}
}

func (r *mongoServiceRecordRepository) Insert(ctx context.Context, record *model.ServiceRecord) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.WriteTimeout)
		defer cancel()
	}

	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to archive service record for %s: %w", record.OrderID, err)
	}
	return nil
}

// NewServiceRecord builds the archive row for a just-completed booking.
func NewServiceRecord(b *model.Booking, now time.Time) *model.ServiceRecord {
	return &model.ServiceRecord{
		RecordID:     fmt.Sprintf("SR-%s", b.OrderID),
		OrderID:      b.OrderID,
		Date:         b.Date,
		StaffID:      b.StaffID,
		ServicesDone: b.ServiceName,
		CreatedAt:    now,
	}
}
