package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nailbook/pkg/config"
	"nailbook/pkg/model"
)

const (
	CollectionBookings       = "bookings"
	CollectionStaffs         = "staffs"
	CollectionServices       = "services"
	CollectionCustomers      = "customers"
	CollectionServiceRecords = "service_records"
	CollectionSettings       = "settings"
	CollectionReviews        = "reviews"
)

// Store hands out the collections backing the seven tables. All reads are
// full-collection scans resolved per request; no document is cached across
// requests.
type Store struct {
	cfg *config.Config
	db  *mongo.Database
}

func New(cfg *config.Config) *Store {
	return &Store{
		cfg: cfg,
		db:  cfg.Client.Mongo.Database(cfg.MongoDatabaseName),
	}
}

func (s *Store) Bookings() *mongo.Collection       { return s.db.Collection(CollectionBookings) }
func (s *Store) Staffs() *mongo.Collection         { return s.db.Collection(CollectionStaffs) }
func (s *Store) Services() *mongo.Collection       { return s.db.Collection(CollectionServices) }
func (s *Store) Customers() *mongo.Collection      { return s.db.Collection(CollectionCustomers) }
func (s *Store) ServiceRecords() *mongo.Collection { return s.db.Collection(CollectionServiceRecords) }
func (s *Store) Settings() *mongo.Collection       { return s.db.Collection(CollectionSettings) }
func (s *Store) Reviews() *mongo.Collection        { return s.db.Collection(CollectionReviews) }

// Ping reports backend liveness for the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.cfg.Client.Mongo.Ping(ctx, nil)
}

// defaultSettings are written on first boot so a fresh database serves a
// working shop. $setOnInsert keeps existing values untouched on restarts.
func defaultSettings() []model.Setting {
	return []model.Setting{
		{Key: model.SettingShopName, Value: config.DefaultShopName},
		{Key: model.SettingTimeSlots, Value: config.DefaultTimeSlots},
		{Key: model.SettingAdminPassword, Value: config.DefaultAdminPassword},
		{Key: model.SettingShopOpen, Value: "true"},
		{Key: model.SettingSpecialDates, Value: "[]"},
	}
}

// Bootstrap seeds the settings table with defaults for any missing key.
func (s *Store) Bootstrap(ctx context.Context) error {
	coll := s.Settings()
	opts := options.Update().SetUpsert(true)

	for _, setting := range defaultSettings() {
		filter := bson.M{"key": setting.Key}
		update := bson.M{"$setOnInsert": bson.M{"key": setting.Key, "value": setting.Value}}
		if _, err := coll.UpdateOne(ctx, filter, update, opts); err != nil {
			return err
		}
	}

	s.cfg.Log.Info("Store bootstrapped", "database", s.cfg.MongoDatabaseName)
	return nil
}
