package client

import (
	"context"
	"fmt"
	"net/url"

	"digilist/pkg/adapters"
	"digilist/pkg/model"
)

const bookingsPath = "/api/v1/bookings"

type BookingClient struct {
	http *HttpClient
}

func NewBookingClient(cfg Config) *BookingClient {
	return &BookingClient{http: NewHttpClient(cfg)}
}

// Create places a booking. idempotencyKey may be empty.
func (c *BookingClient) Create(ctx context.Context, booking model.Booking, idempotencyKey string) (*adapters.BookingDTO, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}
	return decode[adapters.BookingDTO](c.http.Do(ctx, "POST", bookingsPath, booking, headers))
}

func (c *BookingClient) Get(ctx context.Context, id string) (*adapters.BookingDTO, error) {
	return decode[adapters.BookingDTO](c.http.Get(ctx, bookingPath(id)))
}

func (c *BookingClient) List(ctx context.Context, limit int, offset int64, listingID string) (*adapters.Paginated[adapters.BookingDTO], error) {
	q := url.Values{}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))
	if listingID != "" {
		q.Set("listing_id", listingID)
	}
	return decode[adapters.Paginated[adapters.BookingDTO]](c.http.Get(ctx, bookingsPath+"?"+q.Encode()))
}

func (c *BookingClient) Delete(ctx context.Context, id string) error {
	_, err := c.http.Delete(ctx, bookingPath(id))
	return err
}

func (c *BookingClient) SetStatus(ctx context.Context, id string, change model.StatusChange) (*adapters.MutationResult, error) {
	return decode[adapters.MutationResult](c.http.Post(ctx, bookingPath(id)+"/status", change))
}

func (c *BookingClient) Receipt(ctx context.Context, token string) (*adapters.BookingDTO, error) {
	return decode[adapters.BookingDTO](c.http.Get(ctx, bookingsPath+"/receipt/"+url.PathEscape(token)))
}

func (c *BookingClient) Quote(ctx context.Context, req model.QuoteRequest) (*model.Quote, error) {
	return decode[model.Quote](c.http.Post(ctx, bookingsPath+"/quote", req))
}

func bookingPath(id string) string {
	return bookingsPath + "/id/" + url.PathEscape(id)
}
