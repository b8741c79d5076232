package model

import "digilist/pkg/pricing"

const millisPerMinute = 60_000

// Booking is a reservation of a listing. Start and end are epoch
// milliseconds; Price is the quote captured when the booking was created.
type Booking struct {
	ID                 string                          `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ListingID          string                          `json:"listing_id" bson:"listing_id" validate:"required,mongodb"`
	OrganizationID     string                          `json:"organization_id,omitempty" bson:"organization_id,omitempty"`
	ContactName        string                          `json:"contact_name" bson:"contact_name" validate:"required,min=2,max=100"`
	ContactPhone       string                          `json:"contact_phone" bson:"contact_phone" validate:"required,e164"`
	ContactEmail       string                          `json:"contact_email,omitempty" bson:"contact_email,omitempty" validate:"omitempty,email"`
	Mode               pricing.BookingMode             `json:"mode" bson:"mode" validate:"required,oneof=SLOTS ALL_DAY DURATION TICKETS"`
	StartTime          int64                           `json:"start_time" bson:"start_time" validate:"required,gt=0"`
	EndTime            int64                           `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	Attendees          int                             `json:"attendees" bson:"attendees" validate:"gte=0,max=10000"`
	Tickets            int                             `json:"tickets,omitempty" bson:"tickets,omitempty" validate:"gte=0,max=10000"`
	PriceGroupID       string                          `json:"price_group_id,omitempty" bson:"price_group_id,omitempty" validate:"omitempty,max=64"`
	PriceGroupDiscount float64                         `json:"price_group_discount,omitempty" bson:"price_group_discount,omitempty" validate:"gte=0,lte=100"`
	Notes              string                          `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=1000"`
	Status             BookingStatus                   `json:"status" bson:"status" validate:"required,oneof=draft pending awaiting_payment confirmed checked_in completed no_show cancelled rejected expired"`
	Price              *pricing.PriceCalculationResult `json:"price,omitempty" bson:"price,omitempty"`
	ReceiptToken       string                          `json:"receipt_token,omitempty" bson:"receipt_token,omitempty"`
	CreatedAt          int64                           `json:"created_at" bson:"created_at"`
	UpdatedAt          int64                           `json:"updated_at" bson:"updated_at"`
}

// DurationMinutes is the booked span in whole minutes.
func (b Booking) DurationMinutes() int {
	if b.EndTime <= b.StartTime {
		return 0
	}
	return int((b.EndTime - b.StartTime) / millisPerMinute)
}

// Details returns the pricing input for the booking.
func (b Booking) Details() pricing.BookingDetails {
	return pricing.BookingDetails{
		Mode:               b.Mode,
		DurationMinutes:    b.DurationMinutes(),
		Attendees:          b.Attendees,
		Tickets:            b.Tickets,
		PriceGroupID:       b.PriceGroupID,
		PriceGroupDiscount: b.PriceGroupDiscount,
	}
}

// StatusChange is the body of a booking or listing status transition.
type StatusChange struct {
	Status string `json:"status" validate:"required,min=2,max=32"`
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// QuoteRequest prices a booking against an ad hoc pricing configuration.
type QuoteRequest struct {
	Pricing pricing.ResourcePricingConfig `json:"pricing"`
	Booking pricing.BookingDetails        `json:"booking"`
	// Ticketed enables the ticket price diagnostics.
	Ticketed bool `json:"ticketed,omitempty"`
}

// Quote is a price together with the constraint check and pricing warnings.
type Quote struct {
	Price       pricing.PriceCalculationResult `json:"price"`
	Constraints pricing.ConstraintResult       `json:"constraints"`
	Warnings    []pricing.Warning              `json:"warnings,omitempty"`
}

// NewQuote prices booking against cfg.
func NewQuote(cfg pricing.ResourcePricingConfig, booking pricing.BookingDetails, ticketed bool) Quote {
	return Quote{
		Price:       pricing.CalculateBookingPrice(cfg, booking),
		Constraints: pricing.ValidateBookingConstraints(cfg, booking),
		Warnings:    pricing.Diagnose(cfg, ticketed),
	}
}
