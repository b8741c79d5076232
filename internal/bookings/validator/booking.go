package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

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
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

func NewBookingValidator() *BookingValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &BookingValidator{
		validate: v,
		now:      time.Now,
	}
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.structErrors(booking); err != nil {
		return err
	}

	if booking.StartTime < v.now().UnixMilli() {
		return ValidationErrors{{Field: "start_time", Message: "cannot be in the past"}}
	}
	if booking.Mode == pricing.ModeTickets && booking.Tickets == 0 {
		return ValidationErrors{{Field: "tickets", Message: "is required for ticket bookings"}}
	}

	return nil
}

func (v *BookingValidator) ValidateStatusChange(change *model.StatusChange) error {
	return v.structErrors(change)
}

// ValidateQuote checks an ad hoc quote request. Bounds are only checked for
// consistency; whether the booking fits them is part of the quote itself.
func (v *BookingValidator) ValidateQuote(req *model.QuoteRequest) error {
	if err := v.structErrors(req); err != nil {
		return err
	}

	var errs ValidationErrors
	cfg := req.Pricing
	if cfg.MinDurationMinutes > 0 && cfg.MaxDurationMinutes > 0 && cfg.MinDurationMinutes > cfg.MaxDurationMinutes {
		errs = append(errs, ValidationError{
			Field:   "pricing.min_duration_minutes",
			Message: "must not exceed max_duration_minutes",
		})
	}
	if cfg.MinPeople > 0 && cfg.MaxPeople > 0 && cfg.MinPeople > cfg.MaxPeople {
		errs = append(errs, ValidationError{
			Field:   "pricing.min_people",
			Message: "must not exceed max_people",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *BookingValidator) structErrors(s any) error {
	if err := v.validate.Struct(s); err != nil {
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
		field := err.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}

		message := err.Error()
		switch err.Tag() {
		case "required":
			message = "is required"
		case "min":
			message = fmt.Sprintf("must be at least %s", err.Param())
		case "max":
			message = fmt.Sprintf("must be at most %s", err.Param())
		case "gt":
			message = fmt.Sprintf("must be greater than %s", err.Param())
		case "gte":
			message = fmt.Sprintf("must be greater than or equal to %s", err.Param())
		case "lte":
			message = fmt.Sprintf("must be less than or equal to %s", err.Param())
		case "gtfield":
			message = "must be after start_time"
		case "mongodb":
			message = "must be a valid ID"
		case "e164":
			message = "must be a phone number in E.164 format"
		case "email":
			message = "must be a valid email address"
		case "oneof":
			message = fmt.Sprintf("must be one of [%s]", err.Param())
		case "iso4217":
			message = "must be an ISO 4217 currency code"
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   field,
			Message: message,
		})
	}

	return validationErrors
}
