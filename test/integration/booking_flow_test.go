//go:build integration

package integration

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"digilist/pkg/client"
	"digilist/pkg/model"
	"digilist/pkg/pricing"
)

// These tests run against live listings and bookings services, e.g.
//
//	LISTINGS_URL=http://localhost:8081 BOOKINGS_URL=http://localhost:8082 go test -tags integration ./test/...
func clients(t *testing.T) (*client.ListingClient, *client.BookingClient) {
	t.Helper()
	listingsURL, bookingsURL := os.Getenv("LISTINGS_URL"), os.Getenv("BOOKINGS_URL")
	if listingsURL == "" || bookingsURL == "" {
		t.Skip("LISTINGS_URL and BOOKINGS_URL must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, url := range []string{listingsURL, bookingsURL} {
		if err := client.NewHttpClient(client.Config{BaseURL: url}).WaitForHealthy(ctx, 30*time.Second); err != nil {
			t.Fatalf("service %s not healthy: %v", url, err)
		}
	}

	return client.NewListingClient(client.Config{BaseURL: listingsURL}),
		client.NewBookingClient(client.Config{BaseURL: bookingsURL})
}

func publishedListing(t *testing.T, listings *client.ListingClient) string {
	t.Helper()
	ctx := context.Background()

	created, err := listings.Create(ctx, model.Listing{
		OrganizationID: "org-integration",
		Name:           "Nordby samfunnshus",
		Category:       "selskapslokale",
		City:           "Oslo",
		Pricing: pricing.ResourcePricingConfig{
			Model:              pricing.ModelPerHour,
			PricePerHour:       500,
			MinDurationMinutes: 60,
			MaxPeople:          50,
		},
	})
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	t.Cleanup(func() { _ = listings.Delete(context.Background(), created.ID) })

	if _, err := listings.SetStatus(ctx, created.ID, model.StatusChange{Status: string(model.ListingPublished)}); err != nil {
		t.Fatalf("publish listing: %v", err)
	}
	return created.ID
}

func TestBookingFlow(t *testing.T) {
	listings, bookings := clients(t)
	ctx := context.Background()
	listingID := publishedListing(t, listings)

	start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	booking := model.Booking{
		ListingID:    listingID,
		ContactName:  "Kari Nordmann",
		ContactPhone: "+4741234567",
		StartTime:    start.UnixMilli(),
		EndTime:      start.Add(90 * time.Minute).UnixMilli(),
		Attendees:    20,
	}

	created, err := bookings.Create(ctx, booking, "integration-"+start.Format(time.RFC3339Nano))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	t.Cleanup(func() { _ = bookings.Delete(context.Background(), created.ID) })

	if created.Status != "pending" {
		t.Errorf("expected external status pending, got %s", created.Status)
	}
	if created.Total != 937.5 {
		t.Errorf("expected total 937.5 with 25%% VAT, got %v", created.Total)
	}
	if created.Duration != "1 time 30 min" {
		t.Errorf("expected duration '1 time 30 min', got %q", created.Duration)
	}

	if _, err := bookings.SetStatus(ctx, created.ID, model.StatusChange{Status: "confirmed"}); err != nil {
		t.Fatalf("confirm booking: %v", err)
	}

	if created.ReceiptToken != "" {
		receipt, err := bookings.Receipt(ctx, created.ReceiptToken)
		if err != nil {
			t.Fatalf("receipt lookup: %v", err)
		}
		if receipt.ID != created.ID {
			t.Errorf("receipt resolved to %s, want %s", receipt.ID, created.ID)
		}
	}

	page, err := bookings.List(ctx, 10, 0, listingID)
	if err != nil {
		t.Fatalf("list bookings: %v", err)
	}
	if page.Total < 1 {
		t.Errorf("expected at least one booking for listing, got %d", page.Total)
	}
}

func TestBookingFlow_ConstraintViolation(t *testing.T) {
	listings, bookings := clients(t)
	listingID := publishedListing(t, listings)

	start := time.Now().Add(72 * time.Hour).Truncate(time.Hour)
	_, err := bookings.Create(context.Background(), model.Booking{
		ListingID:    listingID,
		ContactName:  "Ola Nordmann",
		ContactPhone: "+4791234567",
		StartTime:    start.UnixMilli(),
		EndTime:      start.Add(30 * time.Minute).UnixMilli(),
		Attendees:    80,
	}, "")

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", apiErr.StatusCode)
	}
}
