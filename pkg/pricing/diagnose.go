package pricing

import "fmt"

// Warning codes reported by Diagnose.
const (
	WarnMissingRate       = "missing_rate"
	WarnNegativeRate      = "negative_rate"
	WarnDurationBounds    = "duration_bounds"
	WarnPeopleBounds      = "people_bounds"
	WarnTaxRateRange      = "tax_rate_range"
	WarnMissingTicketRate = "missing_ticket_rate"
)

// Warning flags a configuration that prices silently wrong. Warnings never
// stop CalculateBookingPrice.
type Warning struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// Diagnose reports pricing configurations that the calculator accepts but
// that most likely do not match what the resource owner meant.
// ticketed marks resources that are booked in TICKETS mode.
func Diagnose(cfg ResourcePricingConfig, ticketed bool) []Warning {
	var warnings []Warning

	rates := []struct {
		field string
		value float64
	}{
		{"price_per_hour", cfg.PricePerHour},
		{"price_per_day", cfg.PricePerDay},
		{"price_per_half_day", cfg.PricePerHalfDay},
		{"price_per_person", cfg.PricePerPerson},
		{"price_per_person_hour", cfg.PricePerPersonHour},
		{"base_price", cfg.BasePrice},
		{"price_per_ticket", cfg.PricePerTicket},
		{"cleaning_fee", cfg.CleaningFee},
		{"deposit_amount", cfg.DepositAmount},
	}
	for _, r := range rates {
		if r.value < 0 {
			warnings = append(warnings, Warning{
				Code:    WarnNegativeRate,
				Field:   r.field,
				Message: fmt.Sprintf("%s er negativ", r.field),
			})
		}
	}

	if cfg.Model != "" {
		if field := rateField(cfg.Model); field != "" && cfg.rateFor(cfg.Model) <= 0 {
			warnings = append(warnings, Warning{
				Code:    WarnMissingRate,
				Field:   field,
				Message: fmt.Sprintf("Prismodell %s mangler %s, prisen blir 0", cfg.Model, field),
			})
		}
	}

	if cfg.MinDurationMinutes > 0 && cfg.MaxDurationMinutes > 0 && cfg.MinDurationMinutes > cfg.MaxDurationMinutes {
		warnings = append(warnings, Warning{
			Code:    WarnDurationBounds,
			Field:   "min_duration_minutes",
			Message: "Minimum varighet er større enn maksimal varighet",
		})
	}
	if cfg.MinPeople > 0 && cfg.MaxPeople > 0 && cfg.MinPeople > cfg.MaxPeople {
		warnings = append(warnings, Warning{
			Code:    WarnPeopleBounds,
			Field:   "min_people",
			Message: "Minimum antall personer er større enn maksimum",
		})
	}

	if cfg.TaxRate != nil && (*cfg.TaxRate < 0 || *cfg.TaxRate > 1) {
		warnings = append(warnings, Warning{
			Code:    WarnTaxRateRange,
			Field:   "tax_rate",
			Message: "Mva-sats må være mellom 0 og 1",
		})
	}

	if ticketed && cfg.PricePerTicket <= 0 && cfg.PricePerPerson <= 0 && cfg.BasePrice <= 0 {
		warnings = append(warnings, Warning{
			Code:    WarnMissingTicketRate,
			Field:   "price_per_ticket",
			Message: "Billettpris mangler, billetter blir gratis",
		})
	}

	return warnings
}

func rateField(m Model) string {
	switch m {
	case ModelPerHour:
		return "price_per_hour"
	case ModelPerDay:
		return "price_per_day"
	case ModelPerHalfDay:
		return "price_per_half_day"
	case ModelPerPerson, ModelPerPersonDay:
		return "price_per_person"
	case ModelPerPersonHour:
		return "price_per_person_hour"
	case ModelPerBooking, ModelPerSession, ModelSportSlot:
		return "base_price"
	}
	return ""
}
