package client

import (
	"context"
	"fmt"
	"net/url"

	"digilist/pkg/adapters"
	"digilist/pkg/model"
	"digilist/pkg/pricing"
)

const listingsPath = "/api/v1/listings"

type ListingClient struct {
	http *HttpClient
}

func NewListingClient(cfg Config) *ListingClient {
	return &ListingClient{http: NewHttpClient(cfg)}
}

func (c *ListingClient) Create(ctx context.Context, listing model.Listing) (*adapters.ListingDTO, error) {
	return decode[adapters.ListingDTO](c.http.Post(ctx, listingsPath, listing))
}

func (c *ListingClient) Get(ctx context.Context, id string) (*adapters.ListingDTO, error) {
	return decode[adapters.ListingDTO](c.http.Get(ctx, listingPath(id)))
}

func (c *ListingClient) List(ctx context.Context, limit int, offset int64, status string) (*adapters.Paginated[adapters.ListingDTO], error) {
	q := url.Values{}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))
	if status != "" {
		q.Set("status", status)
	}
	return decode[adapters.Paginated[adapters.ListingDTO]](c.http.Get(ctx, listingsPath+"?"+q.Encode()))
}

func (c *ListingClient) Update(ctx context.Context, id string, update model.ListingUpdate) (*adapters.ListingDTO, error) {
	return decode[adapters.ListingDTO](c.http.Patch(ctx, listingPath(id), update))
}

func (c *ListingClient) Delete(ctx context.Context, id string) error {
	_, err := c.http.Delete(ctx, listingPath(id))
	return err
}

func (c *ListingClient) SetStatus(ctx context.Context, id string, change model.StatusChange) (*adapters.MutationResult, error) {
	return decode[adapters.MutationResult](c.http.Post(ctx, listingPath(id)+"/status", change))
}

func (c *ListingClient) Pricing(ctx context.Context, id string) (*model.ListingPricing, error) {
	return decode[model.ListingPricing](c.http.Get(ctx, listingPath(id)+"/pricing"))
}

func (c *ListingClient) Quote(ctx context.Context, id string, booking pricing.BookingDetails) (*model.Quote, error) {
	return decode[model.Quote](c.http.Post(ctx, listingPath(id)+"/quote", booking))
}

// Listing returns the raw listing with its pricing configuration.
// It satisfies the listing reader the bookings service depends on.
func (c *ListingClient) Listing(ctx context.Context, id string) (*model.Listing, error) {
	dto, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.Listing{
		ID:             dto.ID,
		OrganizationID: dto.OrganizationID,
		Name:           dto.Name,
		Category:       dto.Category,
		City:           dto.City,
		BookingMode:    dto.BookingMode,
		Status:         dto.InternalStatus,
		Pricing:        dto.Pricing,
	}, nil
}

func listingPath(id string) string {
	return listingsPath + "/id/" + url.PathEscape(id)
}

func decode[T any](resp *Response, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	var out T
	if err := resp.DecodeData(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
