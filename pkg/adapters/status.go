package adapters

import "digilist/pkg/model"

// ExternalBookingStatus is the booking vocabulary exposed to portals and
// integrations.
type ExternalBookingStatus string

const (
	ExternalBookingPending   ExternalBookingStatus = "pending"
	ExternalBookingConfirmed ExternalBookingStatus = "confirmed"
	ExternalBookingCancelled ExternalBookingStatus = "cancelled"
	ExternalBookingCompleted ExternalBookingStatus = "completed"
)

// ToExternalBookingStatus narrows an internal booking status. Unknown values
// map to pending.
func ToExternalBookingStatus(s model.BookingStatus) ExternalBookingStatus {
	switch s {
	case model.BookingDraft, model.BookingPending, model.BookingAwaitingPayment:
		return ExternalBookingPending
	case model.BookingConfirmed, model.BookingCheckedIn:
		return ExternalBookingConfirmed
	case model.BookingCompleted, model.BookingNoShow:
		return ExternalBookingCompleted
	case model.BookingCancelled, model.BookingRejected, model.BookingExpired:
		return ExternalBookingCancelled
	}
	return ExternalBookingPending
}

func ParseBookingStatus(s string) (model.BookingStatus, bool) {
	for _, status := range model.BookingStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

type ExternalListingStatus string

const (
	ExternalListingDraft     ExternalListingStatus = "draft"
	ExternalListingPublished ExternalListingStatus = "published"
	ExternalListingArchived  ExternalListingStatus = "archived"
)

// ToExternalListingStatus narrows an internal listing status. Unknown values
// map to draft so nothing is shown publicly by accident.
func ToExternalListingStatus(s model.ListingStatus) ExternalListingStatus {
	switch s {
	case model.ListingPublished:
		return ExternalListingPublished
	case model.ListingArchived, model.ListingRejected:
		return ExternalListingArchived
	case model.ListingDraft, model.ListingPendingReview, model.ListingPaused:
		return ExternalListingDraft
	}
	return ExternalListingDraft
}

func ParseListingStatus(s string) (model.ListingStatus, bool) {
	for _, status := range model.ListingStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}
