package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"digilist/pkg/model"
	"digilist/pkg/pricing"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(v))
}

type ListingValidator struct {
	validate *validator.Validate
}

func NewListingValidator() *ListingValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &ListingValidator{
		validate: v,
	}
}

func (v *ListingValidator) Validate(listing *model.Listing) error {
	if err := v.validate.Struct(listing); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if errs := validatePricingRules(listing.Pricing); len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidatePricing checks an ad hoc pricing configuration, as sent to the
// stateless quote endpoint.
func (v *ListingValidator) ValidatePricing(cfg pricing.ResourcePricingConfig) error {
	if err := v.validate.Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	if errs := validatePricingRules(cfg); len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateBookingDetails checks the booking half of a quote request.
func (v *ListingValidator) ValidateBookingDetails(booking pricing.BookingDetails) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	validationErrors := make(ValidationErrors, 0, len(errs))

	for _, err := range errs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   fieldPath(err.Namespace()),
			Message: message(err),
		})
	}

	return validationErrors
}

// fieldPath drops the root struct name: "Listing.pricing.currency" becomes
// "pricing.currency".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", err.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", err.Param())
	case "e164":
		return "must be a phone number in E.164 format"
	case "url":
		return "must be a valid URL"
	case "iso4217":
		return "must be an ISO 4217 currency code"
	case "timezone":
		return "must be an IANA time zone"
	case "mongodb":
		return "must be a valid ID"
	}
	return fmt.Sprintf("failed on the '%s' rule", err.Tag())
}

// validatePricingRules checks cross-field bounds the struct tags cannot express.
func validatePricingRules(cfg pricing.ResourcePricingConfig) ValidationErrors {
	var errs ValidationErrors

	if cfg.MinDurationMinutes > 0 && cfg.MaxDurationMinutes > 0 && cfg.MinDurationMinutes > cfg.MaxDurationMinutes {
		errs = append(errs, ValidationError{
			Field:   "pricing.min_duration_minutes",
			Message: "must not exceed pricing.max_duration_minutes",
		})
	}
	if cfg.MinPeople > 0 && cfg.MaxPeople > 0 && cfg.MinPeople > cfg.MaxPeople {
		errs = append(errs, ValidationError{
			Field:   "pricing.min_people",
			Message: "must not exceed pricing.max_people",
		})
	}

	return errs
}
