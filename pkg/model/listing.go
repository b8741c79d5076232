package model

import "digilist/pkg/pricing"

// Listing is a bookable resource: a hall, a sports field, a meeting room.
// Timestamps are epoch milliseconds.
type Listing struct {
	ID             string                        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	OrganizationID string                        `json:"organization_id" bson:"organization_id" validate:"required,min=2,max=64"`
	Name           string                        `json:"name" bson:"name" validate:"required,min=2,max=120"`
	Description    string                        `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	Category       string                        `json:"category" bson:"category" validate:"required,min=2,max=60"`
	City           string                        `json:"city" bson:"city" validate:"required,min=2,max=80"`
	Address        string                        `json:"address,omitempty" bson:"address,omitempty" validate:"omitempty,max=200"`
	ContactPhone   string                        `json:"contact_phone,omitempty" bson:"contact_phone,omitempty" validate:"omitempty,e164"`
	Website        string                        `json:"website,omitempty" bson:"website,omitempty" validate:"omitempty,url"`
	TimeZone       string                        `json:"time_zone,omitempty" bson:"time_zone,omitempty" validate:"omitempty,timezone"`
	BookingMode    pricing.BookingMode           `json:"booking_mode,omitempty" bson:"booking_mode,omitempty" validate:"omitempty,oneof=SLOTS ALL_DAY DURATION TICKETS"`
	Status         ListingStatus                 `json:"status" bson:"status" validate:"required,oneof=draft pending_review published paused archived rejected"`
	Pricing        pricing.ResourcePricingConfig `json:"pricing" bson:"pricing"`
	CreatedAt      int64                         `json:"created_at" bson:"created_at"`
	UpdatedAt      int64                         `json:"updated_at" bson:"updated_at"`
}

// Ticketed reports whether the listing is booked by ticket.
func (l Listing) Ticketed() bool {
	return l.BookingMode == pricing.ModeTickets
}

type ListingUpdate struct {
	Name         string                         `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Description  *string                        `json:"description,omitempty" validate:"omitempty,max=2000"`
	Category     string                         `json:"category,omitempty" validate:"omitempty,min=2,max=60"`
	City         string                         `json:"city,omitempty" validate:"omitempty,min=2,max=80"`
	Address      *string                        `json:"address,omitempty" validate:"omitempty,max=200"`
	ContactPhone string                         `json:"contact_phone,omitempty" validate:"omitempty,e164"`
	Website      string                         `json:"website,omitempty" validate:"omitempty,url"`
	TimeZone     string                         `json:"time_zone,omitempty" validate:"omitempty,timezone"`
	BookingMode  pricing.BookingMode            `json:"booking_mode,omitempty" validate:"omitempty,oneof=SLOTS ALL_DAY DURATION TICKETS"`
	Pricing      *pricing.ResourcePricingConfig `json:"pricing,omitempty"`
}

// ListingPricing is the read model behind a listing's price card.
type ListingPricing struct {
	ListingID   string            `json:"listing_id"`
	PriceLabel  string            `json:"price_label"`
	Model       pricing.Model     `json:"model,omitempty"`
	ModelLabel  string            `json:"model_label,omitempty"`
	Constraints []string          `json:"constraints"`
	Currency    string            `json:"currency"`
	TaxRate     float64           `json:"tax_rate"`
	Warnings    []pricing.Warning `json:"warnings,omitempty"`
}
