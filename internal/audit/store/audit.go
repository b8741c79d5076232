package store

import (
	"context"
	"fmt"

	"digilist/pkg/config"
	mongotx "digilist/pkg/db/mongo"
	"digilist/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "BookingAudit"

type AuditStore interface {
	// Record stores an entry once per event id. Redelivered events are
	// ignored.
	Record(ctx context.Context, entry *model.AuditEntry) error
	FindByBooking(ctx context.Context, bookingID string, limit int, offset int64) ([]*model.AuditEntry, error)
	CountByBooking(ctx context.Context, bookingID string) (int64, error)
}

type mongoAuditStore struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAuditStore(cfg *config.Config) AuditStore {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAuditStore{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (s *mongoAuditStore) Record(ctx context.Context, entry *model.AuditEntry) error {
	ctx, cancel := mongotx.WithTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()

	entry.RecordedAt = mongotx.NowMillis()
	opts := options.Update().SetUpsert(true)
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"event_id": entry.EventID},
		bson.M{"$setOnInsert": entry},
		opts,
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

func (s *mongoAuditStore) FindByBooking(ctx context.Context, bookingID string, limit int, offset int64) ([]*model.AuditEntry, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := s.collection.Find(ctx, bson.M{"booking_id": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []*model.AuditEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit entries: %w", err)
	}
	return entries, nil
}

func (s *mongoAuditStore) CountByBooking(ctx context.Context, bookingID string) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	count, err := s.collection.CountDocuments(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return 0, fmt.Errorf("failed to count audit entries: %w", err)
	}
	return count, nil
}
