package model

import (
	"testing"

	"digilist/pkg/pricing"

	"github.com/go-playground/validator/v10"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{BookingDraft, BookingPending, true},
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingAwaitingPayment, true},
		{BookingAwaitingPayment, BookingConfirmed, true},
		{BookingConfirmed, BookingCheckedIn, true},
		{BookingConfirmed, BookingNoShow, true},
		{BookingCheckedIn, BookingCompleted, true},
		{BookingCheckedIn, BookingCancelled, false},
		{BookingDraft, BookingConfirmed, false},
		{BookingConfirmed, BookingConfirmed, false},
		{BookingCancelled, BookingPending, false},
		{BookingStatus("unknown"), BookingPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBookingStatus_TerminalHasNoTransitions(t *testing.T) {
	for _, from := range BookingStatuses {
		if !from.IsTerminal() {
			continue
		}
		for _, to := range BookingStatuses {
			if from.CanTransitionTo(to) {
				t.Errorf("terminal status %s should not transition to %s", from, to)
			}
		}
	}
}

func TestBooking_Details(t *testing.T) {
	b := Booking{
		Mode:               pricing.ModeDuration,
		StartTime:          1_700_000_000_000,
		EndTime:            1_700_000_000_000 + 150*60_000,
		Attendees:          8,
		PriceGroupID:       "idrett",
		PriceGroupDiscount: 20,
	}

	d := b.Details()
	if d.DurationMinutes != 150 {
		t.Errorf("expected 150 minutes, got %d", d.DurationMinutes)
	}
	if d.Attendees != 8 || d.PriceGroupDiscount != 20 || d.Mode != pricing.ModeDuration {
		t.Errorf("unexpected details: %+v", d)
	}

	b.EndTime = b.StartTime - 1
	if b.DurationMinutes() != 0 {
		t.Errorf("expected zero duration for inverted range, got %d", b.DurationMinutes())
	}
}

func TestListing_ValidationTags(t *testing.T) {
	v := validator.New()
	valid := Listing{
		OrganizationID: "org-oslo",
		Name:           "Grünerløkka samfunnshus",
		Category:       "selskapslokale",
		City:           "Oslo",
		ContactPhone:   "+4791234567",
		Status:         ListingPublished,
		Pricing:        pricing.ResourcePricingConfig{Model: pricing.ModelPerHour, PricePerHour: 500, Currency: "NOK"},
	}

	tests := []struct {
		name    string
		mutate  func(l *Listing)
		wantErr bool
	}{
		{"valid", func(l *Listing) {}, false},
		{"missing name", func(l *Listing) { l.Name = "" }, true},
		{"bad phone", func(l *Listing) { l.ContactPhone = "91234567" }, true},
		{"unknown status", func(l *Listing) { l.Status = "live" }, true},
		{"unknown pricing model", func(l *Listing) { l.Pricing.Model = "per_minute" }, true},
		{"negative rate", func(l *Listing) { l.Pricing.PricePerHour = -1 }, true},
		{"bad currency", func(l *Listing) { l.Pricing.Currency = "KRONER" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid
			tt.mutate(&l)
			err := v.Struct(l)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewQuote(t *testing.T) {
	cfg := pricing.ResourcePricingConfig{Model: pricing.ModelPerHour, MinPeople: 5}
	q := NewQuote(cfg, pricing.BookingDetails{Mode: pricing.ModeDuration, DurationMinutes: 60, Attendees: 2}, false)

	if q.Constraints.Valid {
		t.Error("expected constraint violation")
	}
	if len(q.Warnings) != 1 || q.Warnings[0].Code != pricing.WarnMissingRate {
		t.Errorf("expected missing rate warning, got %+v", q.Warnings)
	}
	if q.Price.Total != 0 {
		t.Errorf("expected zero total, got %v", q.Price.Total)
	}
}
