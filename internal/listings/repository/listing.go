package repository

import (
	"context"
	"errors"
	"fmt"

	listingserrors "digilist/internal/listings/errors"
	"digilist/pkg/config"
	mongotx "digilist/pkg/db/mongo"
	"digilist/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Listings"
)

// ListingFilter narrows list queries. Empty fields match everything.
type ListingFilter struct {
	OrganizationID string
	Status         model.ListingStatus
	City           string
	Category       string
}

func (f ListingFilter) toBSON() bson.M {
	filter := bson.M{}
	if f.OrganizationID != "" {
		filter["organization_id"] = f.OrganizationID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.City != "" {
		filter["city"] = f.City
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	return filter
}

type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	FindByID(ctx context.Context, id string) (*model.Listing, error)
	FindAll(ctx context.Context, filter ListingFilter, limit int, offset int64) ([]*model.Listing, error)
	Count(ctx context.Context, filter ListingFilter) (int64, error)
	Update(ctx context.Context, id string, listing *model.Listing) error
	UpdateStatus(ctx context.Context, id string, status model.ListingStatus) error
	Delete(ctx context.Context, id string) error

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoListingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoListingRepository(cfg *config.Config) ListingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoListingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", listingserrors.ErrInvalidID, id)
	}
	return oid, nil
}

func (r *mongoListingRepository) Create(ctx context.Context, listing *model.Listing) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := mongotx.NowMillis()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, listing)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		listing.ID = oid.Hex()
	}

	return nil
}

func (r *mongoListingRepository) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var listing model.Listing
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&listing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", listingserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}
	return &listing, nil
}

func (r *mongoListingRepository) FindAll(ctx context.Context, filter ListingFilter, limit int, offset int64) ([]*model.Listing, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter.toBSON(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer cursor.Close(ctx)

	listings := []*model.Listing{}
	if err = cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}

	return listings, nil
}

func (r *mongoListingRepository) Count(ctx context.Context, filter ListingFilter) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter.toBSON())
	if err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return count, nil
}

func (r *mongoListingRepository) Update(ctx context.Context, id string, listing *model.Listing) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	listing.UpdatedAt = mongotx.NowMillis()
	update := bson.M{
		"$set": bson.M{
			"name":          listing.Name,
			"description":   listing.Description,
			"category":      listing.Category,
			"city":          listing.City,
			"address":       listing.Address,
			"contact_phone": listing.ContactPhone,
			"website":       listing.Website,
			"time_zone":     listing.TimeZone,
			"booking_mode":  listing.BookingMode,
			"pricing":       listing.Pricing,
			"updated_at":    listing.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", listingserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoListingRepository) UpdateStatus(ctx context.Context, id string, status model.ListingStatus) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"status": status, "updated_at": mongotx.NowMillis()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update listing status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", listingserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoListingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", listingserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoListingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
