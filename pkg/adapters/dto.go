package adapters

import (
	"digilist/pkg/model"
	"digilist/pkg/pricing"
)

// BookingDTO is the booking shape served to portals: external status and
// ISO timestamps.
type BookingDTO struct {
	ID             string                `json:"id"`
	ListingID      string                `json:"listing_id"`
	ContactName    string                `json:"contact_name"`
	ContactPhone   string                `json:"contact_phone"`
	ContactEmail   string                `json:"contact_email,omitempty"`
	Mode           pricing.BookingMode   `json:"mode"`
	Start          string                `json:"start"`
	End            string                `json:"end"`
	Duration       string                `json:"duration"`
	Attendees      int                   `json:"attendees"`
	Tickets        int                   `json:"tickets,omitempty"`
	Status         ExternalBookingStatus `json:"status"`
	InternalStatus model.BookingStatus   `json:"internal_status"`
	Total          float64               `json:"total"`
	Currency       string                `json:"currency,omitempty"`
	PriceSummary   string                `json:"price_summary,omitempty"`
	ReceiptToken   string                `json:"receipt_token,omitempty"`
	Notes          string                `json:"notes,omitempty"`
	CreatedAt      string                `json:"created_at"`
	UpdatedAt      string                `json:"updated_at,omitempty"`
}

func ToBookingDTO(b model.Booking) BookingDTO {
	dto := BookingDTO{
		ID:             b.ID,
		ListingID:      b.ListingID,
		ContactName:    b.ContactName,
		ContactPhone:   b.ContactPhone,
		ContactEmail:   b.ContactEmail,
		Mode:           b.Mode,
		Start:          EpochMillisToISO(b.StartTime),
		End:            EpochMillisToISO(b.EndTime),
		Duration:       pricing.FormatDuration(b.DurationMinutes()),
		Attendees:      b.Attendees,
		Tickets:        b.Tickets,
		Status:         ToExternalBookingStatus(b.Status),
		InternalStatus: b.Status,
		ReceiptToken:   b.ReceiptToken,
		Notes:          b.Notes,
		CreatedAt:      EpochMillisToISO(b.CreatedAt),
		UpdatedAt:      EpochMillisToISO(b.UpdatedAt),
	}
	if b.Price != nil {
		dto.Total = b.Price.Total
		dto.Currency = b.Price.Currency
		dto.PriceSummary = b.Price.Summary
	}
	return dto
}

// ListingDTO is the listing shape served to portals.
type ListingDTO struct {
	ID             string                        `json:"id"`
	OrganizationID string                        `json:"organization_id"`
	Name           string                        `json:"name"`
	Description    string                        `json:"description,omitempty"`
	Category       string                        `json:"category"`
	City           string                        `json:"city"`
	Address        string                        `json:"address,omitempty"`
	ContactPhone   string                        `json:"contact_phone,omitempty"`
	Website        string                        `json:"website,omitempty"`
	BookingMode    pricing.BookingMode           `json:"booking_mode,omitempty"`
	Status         ExternalListingStatus         `json:"status"`
	InternalStatus model.ListingStatus           `json:"internal_status"`
	PriceLabel     string                        `json:"price_label"`
	Constraints    []string                      `json:"constraints"`
	Pricing        pricing.ResourcePricingConfig `json:"pricing"`
	CreatedAt      string                        `json:"created_at"`
	UpdatedAt      string                        `json:"updated_at,omitempty"`
}

func ToListingDTO(l model.Listing) ListingDTO {
	return ListingDTO{
		ID:             l.ID,
		OrganizationID: l.OrganizationID,
		Name:           l.Name,
		Description:    l.Description,
		Category:       l.Category,
		City:           l.City,
		Address:        l.Address,
		ContactPhone:   l.ContactPhone,
		Website:        l.Website,
		BookingMode:    l.BookingMode,
		Status:         ToExternalListingStatus(l.Status),
		InternalStatus: l.Status,
		PriceLabel:     pricing.GetPriceLabel(l.Pricing),
		Constraints:    pricing.GetConstraintsSummary(l.Pricing),
		Pricing:        l.Pricing,
		CreatedAt:      EpochMillisToISO(l.CreatedAt),
		UpdatedAt:      EpochMillisToISO(l.UpdatedAt),
	}
}
