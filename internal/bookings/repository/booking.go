package repository

import (
	"context"
	"errors"
	"fmt"

	bookingserrors "digilist/internal/bookings/errors"
	"digilist/pkg/config"
	mongotx "digilist/pkg/db/mongo"
	"digilist/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Bookings"
)

type BookingFilter struct {
	ListingID string
	Status    model.BookingStatus
}

func (f BookingFilter) toBSON() bson.M {
	filter := bson.M{}
	if f.ListingID != "" {
		filter["listing_id"] = f.ListingID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	return filter
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindAll(ctx context.Context, filter BookingFilter, limit int, offset int64) ([]*model.Booking, error)
	Count(ctx context.Context, filter BookingFilter) (int64, error)
	UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus) error
	SetReceiptToken(ctx context.Context, id, token string) error
	Delete(ctx context.Context, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}
	return oid, nil
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := mongotx.NowMillis()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var booking model.Booking
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindAll(ctx context.Context, filter BookingFilter, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter.toBSON(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) Count(ctx context.Context, filter BookingFilter) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter.toBSON())
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// UpdateStatus only applies when the stored status is still from. A booking
// that exists but has moved on yields ErrStatusChanged.
func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id string, from, to model.BookingStatus) error {
	err := r.set(ctx, id, bson.M{"status": from}, bson.M{"status": to})
	if !errors.Is(err, bookingserrors.ErrNotFound) {
		return err
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	oid, _ := objectID(id)
	count, cerr := r.collection.CountDocuments(ctx, bson.M{"_id": oid})
	if cerr != nil {
		return fmt.Errorf("failed to check booking: %w", cerr)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", bookingserrors.ErrStatusChanged, id)
	}
	return err
}

func (r *mongoBookingRepository) SetReceiptToken(ctx context.Context, id, token string) error {
	return r.set(ctx, id, nil, bson.M{"receipt_token": token})
}

// set updates fields on the booking matching id and any extra match conditions.
func (r *mongoBookingRepository) set(ctx context.Context, id string, match bson.M, fields bson.M) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": oid}
	for k, v := range match {
		filter[k] = v
	}

	fields["updated_at"] = mongotx.NowMillis()
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoBookingRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
	}

	return nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
