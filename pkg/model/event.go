package model

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingDeleted       = "booking.deleted"
)

// BookingEvent is published on the booking events topic whenever a booking
// changes. Timestamps are epoch milliseconds.
type BookingEvent struct {
	Type           string        `json:"type"`
	BookingID      string        `json:"booking_id"`
	ListingID      string        `json:"listing_id"`
	OrganizationID string        `json:"organization_id,omitempty"`
	Status         BookingStatus `json:"status"`
	PreviousStatus BookingStatus `json:"previous_status,omitempty"`
	Reason         string        `json:"reason,omitempty"`
	Total          float64       `json:"total"`
	Currency       string        `json:"currency,omitempty"`
	OccurredAt     int64         `json:"occurred_at"`
}

// AuditEntry is one stored booking event.
type AuditEntry struct {
	ID             string        `json:"id,omitempty" bson:"_id,omitempty"`
	EventID        string        `json:"event_id" bson:"event_id"`
	EventType      string        `json:"event_type" bson:"event_type"`
	BookingID      string        `json:"booking_id" bson:"booking_id"`
	ListingID      string        `json:"listing_id" bson:"listing_id"`
	Status         BookingStatus `json:"status" bson:"status"`
	ExternalStatus string        `json:"external_status" bson:"external_status"`
	PreviousStatus BookingStatus `json:"previous_status,omitempty" bson:"previous_status,omitempty"`
	Reason         string        `json:"reason,omitempty" bson:"reason,omitempty"`
	Total          float64       `json:"total" bson:"total"`
	Currency       string        `json:"currency,omitempty" bson:"currency,omitempty"`
	OccurredAt     int64         `json:"occurred_at" bson:"occurred_at"`
	RecordedAt     int64         `json:"recorded_at" bson:"recorded_at"`
}
