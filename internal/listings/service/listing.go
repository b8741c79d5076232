package service

import (
	"context"
	"errors"

	listingserrors "digilist/internal/listings/errors"
	"digilist/internal/listings/repository"
	"digilist/internal/listings/validator"
	"digilist/pkg/adapters"
	"digilist/pkg/config"
	apperrors "digilist/pkg/errors"
	"digilist/pkg/locale"
	"digilist/pkg/model"
	"digilist/pkg/pricing"
	"digilist/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type ListingService interface {
	Create(ctx context.Context, listing *model.Listing) error
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	GetAll(ctx context.Context, filter repository.ListingFilter, limit int, offset int64) ([]*model.Listing, int64, error)
	Update(ctx context.Context, id string, updates *model.ListingUpdate) (*model.Listing, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, change model.StatusChange) (*model.Listing, error)

	Pricing(ctx context.Context, id string) (*model.ListingPricing, error)
	Quote(ctx context.Context, id string, booking pricing.BookingDetails) (*model.Quote, error)
}

type listingService struct {
	repo      repository.ListingRepository
	validator *validator.ListingValidator
	cfg       *config.Config
}

func NewListingService(
	repo repository.ListingRepository,
	validator *validator.ListingValidator,
	cfg *config.Config,
) ListingService {
	return &listingService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *listingService) Create(ctx context.Context, listing *model.Listing) error {
	listing.ID = ""
	s.sanitize(listing)
	s.applyDefaults(listing)

	if err := s.validator.Validate(listing); err != nil {
		s.cfg.Log.Warn("Listing validation failed",
			"name", listing.Name,
			"organization_id", listing.OrganizationID,
			"error", err,
		)
		return validationError(err)
	}

	if err := s.repo.Create(ctx, listing); err != nil {
		s.cfg.Log.Error("Failed to create listing",
			"name", listing.Name,
			"organization_id", listing.OrganizationID,
			"error", err,
		)
		return apperrors.Internal("Failed to create listing", err)
	}

	s.logWarnings(listing)
	s.cfg.Log.Info("Listing created successfully",
		"id", listing.ID,
		"name", listing.Name,
		"organization_id", listing.OrganizationID,
		"price_label", pricing.GetPriceLabel(listing.Pricing),
	)

	return nil
}

func (s *listingService) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Listing ID cannot be empty")
	}

	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve listing")
	}

	return listing, nil
}

func (s *listingService) GetAll(ctx context.Context, filter repository.ListingFilter, limit int, offset int64) ([]*model.Listing, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)
	filter.City = sanitizer.NormalizeCity(filter.City)
	filter.Category = sanitizer.NormalizeLabel(filter.Category)

	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.cfg.Log.Error("Failed to count listings", "error", err)
		return nil, 0, apperrors.Internal("Failed to count listings", err)
	}

	listings, err := s.repo.FindAll(ctx, filter, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to get listings",
			"limit", limit,
			"offset", offset,
			"error", err,
		)
		return nil, 0, apperrors.Internal("Failed to retrieve listings", err)
	}

	return listings, count, nil
}

// Update merges a partial update into the stored listing inside a transaction
// so concurrent patches do not overwrite each other's fields.
func (s *listingService) Update(ctx context.Context, id string, updates *model.ListingUpdate) (*model.Listing, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Listing ID cannot be empty")
	}

	s.sanitizeUpdate(updates)

	var merged *model.Listing
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByID(sessCtx, id)
		if err != nil {
			return s.mapRepoError(err, id, "Failed to check listing existence")
		}

		merged = mergeListingUpdates(existing, updates)
		s.applyDefaults(merged)
		if err := s.validator.Validate(merged); err != nil {
			s.cfg.Log.Warn("Listing validation failed", "id", id, "error", err)
			return validationError(err)
		}

		if err := s.repo.Update(sessCtx, id, merged); err != nil {
			return s.mapRepoError(err, id, "Failed to update listing")
		}
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		s.cfg.Log.Error("Failed to update listing", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update listing", err)
	}

	s.logWarnings(merged)
	s.cfg.Log.Info("Listing updated successfully", "id", id, "name", merged.Name)

	return merged, nil
}

func (s *listingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Listing ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete listing")
	}

	s.cfg.Log.Info("Listing deleted successfully", "id", id)

	return nil
}

func (s *listingService) SetStatus(ctx context.Context, id string, change model.StatusChange) (*model.Listing, error) {
	status, ok := adapters.ParseListingStatus(change.Status)
	if !ok {
		return nil, apperrors.Validation("Unknown listing status", map[string]any{
			"status":  change.Status,
			"allowed": model.ListingStatuses,
		})
	}

	listing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.Status == status {
		return listing, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, s.mapRepoError(err, id, "Failed to update listing status")
	}

	s.cfg.Log.Info("Listing status changed",
		"id", id,
		"from", listing.Status,
		"to", status,
		"reason", change.Reason,
	)

	listing.Status = status
	return listing, nil
}

func (s *listingService) Pricing(ctx context.Context, id string) (*model.ListingPricing, error) {
	listing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cfg := listing.Pricing
	effective := pricing.DetermineEffectiveModel(cfg, pricing.BookingDetails{Mode: listing.BookingMode})
	warnings := s.logWarnings(listing)

	return &model.ListingPricing{
		ListingID:   listing.ID,
		PriceLabel:  pricing.GetPriceLabel(cfg),
		Model:       effective,
		ModelLabel:  effective.Label(),
		Constraints: pricing.GetConstraintsSummary(cfg),
		Currency:    sanitizer.NormalizeCurrency(cfg.Currency, s.cfg.DefaultCurrency),
		TaxRate:     cfg.EffectiveTaxRate(),
		Warnings:    warnings,
	}, nil
}

// Quote prices a prospective booking. Constraint violations are reported in
// the result but do not fail the call.
func (s *listingService) Quote(ctx context.Context, id string, booking pricing.BookingDetails) (*model.Quote, error) {
	listing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.Mode == "" {
		booking.Mode = listing.BookingMode
	}
	if err := s.validator.ValidateBookingDetails(booking); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			return nil, apperrors.InvalidInput("Invalid booking details").WithDetails(map[string]any{"errors": errs})
		}
		return nil, apperrors.InvalidInput("Invalid booking details")
	}

	quote := model.NewQuote(listing.Pricing, booking, listing.Ticketed())
	s.logWarnings(listing)
	s.cfg.Log.Debug("Quote computed",
		"listing_id", id,
		"model", quote.Price.PricingModel,
		"total", quote.Price.Total,
		"constraints_valid", quote.Constraints.Valid,
	)

	return &quote, nil
}

func (s *listingService) logWarnings(listing *model.Listing) []pricing.Warning {
	warnings := pricing.Diagnose(listing.Pricing, listing.Ticketed())
	for _, w := range warnings {
		s.cfg.Log.Warn("Listing pricing warning",
			"listing_id", listing.ID,
			"code", w.Code,
			"field", w.Field,
			"message", w.Message,
		)
	}
	return warnings
}

func (s *listingService) mapRepoError(err error, id, message string) error {
	if apperrors.IsAppError(err) {
		return err
	}
	if errors.Is(err, listingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Listing", id)
	}
	if errors.Is(err, listingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid listing ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

func validationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return apperrors.Validation("Listing validation failed", map[string]any{"errors": errs})
	}
	return apperrors.Validation("Listing validation failed", map[string]any{"error": err.Error()})
}

func (s *listingService) sanitize(listing *model.Listing) {
	listing.Name = sanitizer.NormalizeName(listing.Name)
	listing.Description = sanitizer.TrimAndNormalize(listing.Description)
	listing.Category = sanitizer.NormalizeLabel(listing.Category)
	listing.City = sanitizer.NormalizeCity(listing.City)
	listing.Address = sanitizer.NormalizeName(listing.Address)
	listing.ContactPhone = s.sanitizePhone(listing.ContactPhone)
	listing.Website = sanitizer.SanitizeURL(listing.Website)
	listing.Pricing.Currency = sanitizer.NormalizeCurrency(listing.Pricing.Currency, s.cfg.DefaultCurrency)
}

// sanitizePhone keeps unparseable input so the validator reports it instead
// of silently dropping the field.
func (s *listingService) sanitizePhone(phone string) string {
	if normalized := sanitizer.NormalizePhone(phone); normalized != "" {
		return normalized
	}
	return phone
}

func (s *listingService) sanitizeUpdate(updates *model.ListingUpdate) {
	updates.Name = sanitizer.NormalizeName(updates.Name)
	updates.Description = sanitizer.OptionalString(updates.Description, sanitizer.TrimAndNormalize)
	updates.Category = sanitizer.NormalizeLabel(updates.Category)
	updates.City = sanitizer.NormalizeCity(updates.City)
	updates.Address = sanitizer.OptionalString(updates.Address, sanitizer.NormalizeName)
	updates.ContactPhone = s.sanitizePhone(updates.ContactPhone)
	updates.Website = sanitizer.SanitizeURL(updates.Website)
	if updates.Pricing != nil {
		updates.Pricing.Currency = sanitizer.NormalizeCurrency(updates.Pricing.Currency, s.cfg.DefaultCurrency)
	}
}

func (s *listingService) applyDefaults(listing *model.Listing) {
	if listing.Status == "" {
		listing.Status = model.ListingDraft
	}
	if listing.TimeZone == "" {
		listing.TimeZone = s.cfg.DefaultTimeZone
		// The contact number country wins over the platform default.
		if country := locale.InferCountryFromPhone(listing.ContactPhone); country != nil {
			listing.TimeZone = country.DefaultTimezone
		}
	}
	if listing.Pricing.Currency == "" {
		listing.Pricing.Currency = s.cfg.DefaultCurrency
	}
	if listing.Pricing.TaxRate == nil {
		rate := s.cfg.DefaultTaxRate
		listing.Pricing.TaxRate = &rate
	}
}

func mergeListingUpdates(existing *model.Listing, updates *model.ListingUpdate) *model.Listing {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.Category != "" {
		merged.Category = updates.Category
	}
	if updates.City != "" {
		merged.City = updates.City
	}
	if updates.Address != nil {
		merged.Address = *updates.Address
	}
	if updates.ContactPhone != "" {
		merged.ContactPhone = updates.ContactPhone
	}
	if updates.Website != "" {
		merged.Website = updates.Website
	}
	if updates.TimeZone != "" {
		merged.TimeZone = updates.TimeZone
	}
	if updates.BookingMode != "" {
		merged.BookingMode = updates.BookingMode
	}
	if updates.Pricing != nil {
		merged.Pricing = *updates.Pricing
	}

	return &merged
}
