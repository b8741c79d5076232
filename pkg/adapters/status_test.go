package adapters

import (
	"testing"

	"digilist/pkg/model"

	"github.com/stretchr/testify/assert"
)

func TestToExternalBookingStatus(t *testing.T) {
	tests := []struct {
		in   model.BookingStatus
		want ExternalBookingStatus
	}{
		{model.BookingDraft, ExternalBookingPending},
		{model.BookingPending, ExternalBookingPending},
		{model.BookingAwaitingPayment, ExternalBookingPending},
		{model.BookingConfirmed, ExternalBookingConfirmed},
		{model.BookingCheckedIn, ExternalBookingConfirmed},
		{model.BookingCompleted, ExternalBookingCompleted},
		{model.BookingNoShow, ExternalBookingCompleted},
		{model.BookingCancelled, ExternalBookingCancelled},
		{model.BookingRejected, ExternalBookingCancelled},
		{model.BookingExpired, ExternalBookingCancelled},
		{model.BookingStatus("on_hold"), ExternalBookingPending},
		{model.BookingStatus(""), ExternalBookingPending},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, ToExternalBookingStatus(tt.in))
		})
	}
}

func TestToExternalListingStatus(t *testing.T) {
	tests := []struct {
		in   model.ListingStatus
		want ExternalListingStatus
	}{
		{model.ListingDraft, ExternalListingDraft},
		{model.ListingPendingReview, ExternalListingDraft},
		{model.ListingPaused, ExternalListingDraft},
		{model.ListingPublished, ExternalListingPublished},
		{model.ListingArchived, ExternalListingArchived},
		{model.ListingRejected, ExternalListingArchived},
		{model.ListingStatus("deleted"), ExternalListingDraft},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, ToExternalListingStatus(tt.in))
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range model.BookingStatuses {
		got, ok := ParseBookingStatus(string(s))
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}
	_, ok := ParseBookingStatus("Confirmed")
	assert.False(t, ok)

	for _, s := range model.ListingStatuses {
		got, ok := ParseListingStatus(string(s))
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}
	_, ok = ParseListingStatus("live")
	assert.False(t, ok)
}
