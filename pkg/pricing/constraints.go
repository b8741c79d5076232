package pricing

import "fmt"

// ConstraintResult is the outcome of ValidateBookingConstraints. Errors holds
// one message per violated bound and is never nil.
type ConstraintResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateBookingConstraints checks a booking against the duration and
// attendee bounds of a resource. Every violation is reported; unset bounds
// are skipped. The result is advisory, callers decide whether to block.
func ValidateBookingConstraints(cfg ResourcePricingConfig, booking BookingDetails) ConstraintResult {
	errs := make([]string, 0)

	if cfg.MinDurationMinutes > 0 && booking.DurationMinutes < cfg.MinDurationMinutes {
		errs = append(errs, fmt.Sprintf("Minimum varighet er %s", FormatDuration(cfg.MinDurationMinutes)))
	}
	if cfg.MaxDurationMinutes > 0 && booking.DurationMinutes > cfg.MaxDurationMinutes {
		errs = append(errs, fmt.Sprintf("Maksimal varighet er %s", FormatDuration(cfg.MaxDurationMinutes)))
	}
	if cfg.MinPeople > 0 && booking.Attendees < cfg.MinPeople {
		errs = append(errs, fmt.Sprintf("Minimum antall personer er %d", cfg.MinPeople))
	}
	if cfg.MaxPeople > 0 && booking.Attendees > cfg.MaxPeople {
		errs = append(errs, fmt.Sprintf("Maksimalt antall personer er %d", cfg.MaxPeople))
	}

	return ConstraintResult{Valid: len(errs) == 0, Errors: errs}
}
