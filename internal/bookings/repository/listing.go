package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	bookingserrors "digilist/internal/bookings/errors"
	"digilist/pkg/client"
	"digilist/pkg/config"
	mongotx "digilist/pkg/db/mongo"
	"digilist/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ListingsCollectionName = "Listings"

// ListingReader loads the listing a booking is placed on. Missing listings
// are reported as ErrListingNotFound.
type ListingReader interface {
	Listing(ctx context.Context, id string) (*model.Listing, error)
}

type mongoListingReader struct {
	cfg        *config.Config
	collection *mongo.Collection
}

// NewMongoListingReader reads listings straight from the collection the
// listings service owns.
func NewMongoListingReader(cfg *config.Config) ListingReader {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoListingReader{
		cfg:        cfg,
		collection: db.Collection(ListingsCollectionName),
	}
}

func (r *mongoListingReader) Listing(ctx context.Context, id string) (*model.Listing, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrListingNotFound, id)
	}

	opts := options.FindOne().SetProjection(bson.M{
		"organization_id": 1,
		"name":            1,
		"booking_mode":    1,
		"status":          1,
		"pricing":         1,
	})

	var listing model.Listing
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&listing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", bookingserrors.ErrListingNotFound, id)
		}
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}
	return &listing, nil
}

type httpListingReader struct {
	client *client.ListingClient
}

// NewHTTPListingReader reads listings through the listings service API.
func NewHTTPListingReader(c *client.ListingClient) ListingReader {
	return &httpListingReader{client: c}
}

func (r *httpListingReader) Listing(ctx context.Context, id string) (*model.Listing, error) {
	listing, err := r.client.Listing(ctx, id)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusNotFound || apiErr.StatusCode == http.StatusBadRequest) {
			return nil, fmt.Errorf("%w: %s", bookingserrors.ErrListingNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}
	return listing, nil
}
