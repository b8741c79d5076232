package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	bookingserrors "digilist/internal/bookings/errors"
	"digilist/internal/bookings/events"
	"digilist/internal/bookings/repository"
	"digilist/internal/bookings/validator"
	"digilist/pkg/adapters"
	"digilist/pkg/config"
	mongotx "digilist/pkg/db/mongo"
	apperrors "digilist/pkg/errors"
	"digilist/pkg/model"
	"digilist/pkg/pricing"
	"digilist/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, filter repository.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, change model.StatusChange) (*model.Booking, error)
	GetByReceipt(ctx context.Context, token string) (*model.Booking, error)
	Quote(ctx context.Context, req model.QuoteRequest) (*model.Quote, error)
}

// ReceiptSealer issues and opens the tokens citizens use to look up a
// booking without an account.
type ReceiptSealer interface {
	ReceiptToken(bookingID string) (string, error)
	BookingIDFromReceipt(token string) (string, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	listings  repository.ListingReader
	validator *validator.BookingValidator
	sealer    ReceiptSealer
	publisher events.Publisher
	cfg       *config.Config
}

// NewBookingService wires the service. sealer may be nil, in which case no
// receipt tokens are issued and receipt lookups are unavailable.
func NewBookingService(
	repo repository.BookingRepository,
	listings repository.ListingReader,
	validator *validator.BookingValidator,
	sealer ReceiptSealer,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &bookingService{
		repo:      repo,
		listings:  listings,
		validator: validator,
		sealer:    sealer,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create prices a booking against its listing and stores it together with
// the price snapshot. Listing constraints are enforced here, unlike quotes.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	booking.ID = ""
	booking.ReceiptToken = ""
	s.sanitize(booking)
	if booking.Status == "" {
		booking.Status = model.BookingPending
	}

	if booking.ListingID == "" {
		return validationError(validator.ValidationErrors{{Field: "listing_id", Message: "is required"}})
	}

	listing, err := s.listings.Listing(ctx, booking.ListingID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrListingNotFound) {
			return apperrors.NotFoundWithID("Listing", booking.ListingID)
		}
		s.cfg.Log.Error("Failed to load listing for booking", "listing_id", booking.ListingID, "error", err)
		return apperrors.Unavailable("Listing lookup")
	}
	if !listing.Status.IsBookable() {
		return apperrors.Conflict("Listing is not open for booking")
	}

	if booking.Mode == "" {
		booking.Mode = listing.BookingMode
	}
	if booking.Mode == "" {
		booking.Mode = pricing.ModeDuration
	}
	booking.OrganizationID = listing.OrganizationID

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "listing_id", booking.ListingID, "error", err)
		return validationError(err)
	}

	details := booking.Details()
	if result := pricing.ValidateBookingConstraints(listing.Pricing, details); !result.Valid {
		s.cfg.Log.Info("Booking rejected by listing constraints",
			"listing_id", booking.ListingID,
			"errors", result.Errors,
		)
		return apperrors.ConstraintViolation(result.Errors)
	}

	price := pricing.CalculateBookingPrice(listing.Pricing, details)
	booking.Price = &price

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		if s.sealer == nil {
			return nil
		}

		token, err := s.sealer.ReceiptToken(booking.ID)
		if err != nil {
			return apperrors.Internal("Failed to issue receipt", err)
		}
		if err := s.repo.SetReceiptToken(sessCtx, booking.ID, token); err != nil {
			return apperrors.Internal("Failed to store receipt", err)
		}
		booking.ReceiptToken = token
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "listing_id", booking.ListingID, "error", err)
		return err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"listing_id", booking.ListingID,
		"model", price.PricingModel,
		"total", price.Total,
	)
	s.publish(ctx, newEvent(model.EventBookingCreated, booking))

	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve booking")
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, filter repository.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "limit", limit, "offset", offset, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	var deleted *model.Booking
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			return s.mapRepoError(err, id, "Failed to check booking existence")
		}
		if err := s.repo.Delete(sessCtx, id); err != nil {
			return s.mapRepoError(err, id, "Failed to delete booking")
		}
		deleted = existing
		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	s.publish(ctx, newEvent(model.EventBookingDeleted, deleted))

	return nil
}

// SetStatus moves a booking along its lifecycle. Setting the current status
// again is a no-op.
func (s *bookingService) SetStatus(ctx context.Context, id string, change model.StatusChange) (*model.Booking, error) {
	change.Status = strings.TrimSpace(change.Status)
	change.Reason = sanitizer.TrimAndNormalize(change.Reason)
	if err := s.validator.ValidateStatusChange(&change); err != nil {
		return nil, validationError(err)
	}

	next, ok := adapters.ParseBookingStatus(change.Status)
	if !ok {
		return nil, apperrors.Validation("Unknown booking status", map[string]any{
			"status":  change.Status,
			"allowed": model.BookingStatuses,
		})
	}

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := booking.Status
	if previous == next {
		return booking, nil
	}
	if !previous.CanTransitionTo(next) {
		return nil, apperrors.InvalidStatusTransition(string(previous), string(next))
	}

	if err := s.repo.UpdateStatus(ctx, id, previous, next); err != nil {
		if errors.Is(err, bookingserrors.ErrStatusChanged) {
			return nil, apperrors.Conflict("Booking status was changed by another request").
				WithDetails(map[string]any{"expected": string(previous), "to": string(next)})
		}
		return nil, s.mapRepoError(err, id, "Failed to update booking status")
	}
	booking.Status = next
	booking.UpdatedAt = mongotx.NowMillis()

	s.cfg.Log.Info("Booking status changed",
		"id", id,
		"from", previous,
		"to", next,
		"reason", change.Reason,
	)

	event := newEvent(model.EventBookingStatusChanged, booking)
	event.PreviousStatus = previous
	event.Reason = change.Reason
	s.publish(ctx, event)

	return booking, nil
}

// GetByReceipt resolves a receipt token. Tokens that do not open, or that
// belong to a booking issued a different token, read as not found.
func (s *bookingService) GetByReceipt(ctx context.Context, token string) (*model.Booking, error) {
	if s.sealer == nil {
		return nil, apperrors.Unavailable("Receipt lookup")
	}

	id, err := s.sealer.BookingIDFromReceipt(token)
	if err != nil {
		s.cfg.Log.Debug("Rejected receipt token", "error", err)
		return nil, apperrors.NotFound("Booking")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.NotFound("Booking")
		}
		return nil, s.mapRepoError(err, id, "Failed to retrieve booking")
	}
	if booking.ReceiptToken != token {
		return nil, apperrors.NotFound("Booking")
	}

	return booking, nil
}

// Quote prices an ad hoc configuration. Constraint violations are part of
// the answer and never fail the call.
func (s *bookingService) Quote(ctx context.Context, req model.QuoteRequest) (*model.Quote, error) {
	req.Pricing.Currency = sanitizer.NormalizeCurrency(req.Pricing.Currency, s.cfg.DefaultCurrency)
	if err := s.validator.ValidateQuote(&req); err != nil {
		return nil, validationError(err)
	}

	quote := model.NewQuote(req.Pricing, req.Booking, req.Ticketed)
	s.cfg.Log.Debug("Stateless quote computed",
		"model", quote.Price.PricingModel,
		"total", quote.Price.Total,
		"constraints_valid", quote.Constraints.Valid,
		"warnings", len(quote.Warnings),
	)

	return &quote, nil
}

// publish never fails the request: the booking is already stored, and a lost
// event only delays the audit trail.
func (s *bookingService) publish(ctx context.Context, event model.BookingEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"type", event.Type,
			"booking_id", event.BookingID,
			"error", err,
		)
	}
}

func newEvent(eventType string, b *model.Booking) model.BookingEvent {
	event := model.BookingEvent{
		Type:           eventType,
		BookingID:      b.ID,
		ListingID:      b.ListingID,
		OrganizationID: b.OrganizationID,
		Status:         b.Status,
		OccurredAt:     mongotx.NowMillis(),
	}
	if b.Price != nil {
		event.Total = b.Price.Total
		event.Currency = b.Price.Currency
	}
	return event
}

func (s *bookingService) mapRepoError(err error, id, message string) error {
	if apperrors.IsAppError(err) {
		return err
	}
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

func validationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return apperrors.Validation("Booking validation failed", map[string]any{"errors": errs})
	}
	return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.ContactName = sanitizer.NormalizeName(b.ContactName)
	if phone := sanitizer.NormalizePhone(b.ContactPhone); phone != "" {
		b.ContactPhone = phone
	}
	b.ContactEmail = strings.ToLower(strings.TrimSpace(b.ContactEmail))
	b.PriceGroupID = strings.TrimSpace(b.PriceGroupID)
	b.Notes = sanitizer.TrimAndNormalize(b.Notes)
}
