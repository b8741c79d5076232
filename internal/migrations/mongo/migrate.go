package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"digilist/internal/migrations/mongo/validators"
	"digilist/pkg/logger"
)

const (
	ListingsCollection = "Listings"
	BookingsCollection = "Bookings"
	AuditCollection    = "BookingAudit"
)

var (
	ListingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "organization_id", Value: 1}}},
		{Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "city", Value: 1},
			{Key: "category", Value: 1},
		}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "listing_id", Value: 1},
			{Key: "start_time", Value: 1},
		}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{
			Keys:    bson.D{{Key: "receipt_token", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	// event_id uniqueness is what makes audit recording idempotent under redelivery.
	AuditIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{
			{Key: "booking_id", Value: 1},
			{Key: "occurred_at", Value: 1},
		}},
	}
)

type CollectionDef struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections returns the managed collections in the order they are migrated.
func Collections() []CollectionDef {
	return []CollectionDef{
		{Name: ListingsCollection, Indexes: ListingsIndexes, Validator: validators.ListingValidator},
		{Name: BookingsCollection, Indexes: BookingsIndexes, Validator: validators.BookingValidator},
		{Name: AuditCollection, Indexes: AuditIndexes, Validator: validators.AuditValidator},
	}
}

func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running mongo migrations", "database", dbName)

	for _, def := range Collections() {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully", "collections", len(Collections()))
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	names, err := db.Collection(name).Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "indexes", names)
	return nil
}
