package model

// BookingStatus is the internal lifecycle state of a booking.
type BookingStatus string

const (
	BookingDraft           BookingStatus = "draft"
	BookingPending         BookingStatus = "pending"
	BookingAwaitingPayment BookingStatus = "awaiting_payment"
	BookingConfirmed       BookingStatus = "confirmed"
	BookingCheckedIn       BookingStatus = "checked_in"
	BookingCompleted       BookingStatus = "completed"
	BookingNoShow          BookingStatus = "no_show"
	BookingCancelled       BookingStatus = "cancelled"
	BookingRejected        BookingStatus = "rejected"
	BookingExpired         BookingStatus = "expired"
)

var BookingStatuses = []BookingStatus{
	BookingDraft,
	BookingPending,
	BookingAwaitingPayment,
	BookingConfirmed,
	BookingCheckedIn,
	BookingCompleted,
	BookingNoShow,
	BookingCancelled,
	BookingRejected,
	BookingExpired,
}

// IsTerminal reports whether no further transition is possible.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingCompleted, BookingNoShow, BookingCancelled, BookingRejected, BookingExpired:
		return true
	}
	return false
}

// CanTransitionTo reports whether a booking in s may move to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingDraft:
		return next == BookingPending || next == BookingCancelled || next == BookingExpired
	case BookingPending:
		switch next {
		case BookingAwaitingPayment, BookingConfirmed, BookingRejected, BookingCancelled, BookingExpired:
			return true
		}
	case BookingAwaitingPayment:
		return next == BookingConfirmed || next == BookingCancelled || next == BookingExpired
	case BookingConfirmed:
		switch next {
		case BookingCheckedIn, BookingCompleted, BookingNoShow, BookingCancelled:
			return true
		}
	case BookingCheckedIn:
		return next == BookingCompleted
	}
	return false
}

// ListingStatus is the internal publication state of a listing.
type ListingStatus string

const (
	ListingDraft         ListingStatus = "draft"
	ListingPendingReview ListingStatus = "pending_review"
	ListingPublished     ListingStatus = "published"
	ListingPaused        ListingStatus = "paused"
	ListingArchived      ListingStatus = "archived"
	ListingRejected      ListingStatus = "rejected"
)

var ListingStatuses = []ListingStatus{
	ListingDraft,
	ListingPendingReview,
	ListingPublished,
	ListingPaused,
	ListingArchived,
	ListingRejected,
}

// IsBookable reports whether new bookings may be placed on the listing.
func (s ListingStatus) IsBookable() bool {
	return s == ListingPublished
}
