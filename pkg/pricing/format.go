package pricing

import (
	"fmt"

	"digilist/pkg/locale"
)

// PriceOnRequest is shown when a resource has no rate configured.
const PriceOnRequest = "Pris på forespørsel"

// GetPriceLabel returns a short price for listings, using the first rate
// configured out of hourly, daily, per person and flat base price.
func GetPriceLabel(cfg ResourcePricingConfig) string {
	currency := cfg.currency()
	switch {
	case cfg.PricePerHour > 0:
		return locale.FormatCurrency(cfg.PricePerHour, currency) + "/time"
	case cfg.PricePerDay > 0:
		return locale.FormatCurrency(cfg.PricePerDay, currency) + "/dag"
	case cfg.PricePerPerson > 0:
		return locale.FormatCurrency(cfg.PricePerPerson, currency) + "/person"
	case cfg.BasePrice > 0:
		return locale.FormatCurrency(cfg.BasePrice, currency)
	}
	return PriceOnRequest
}

// GetConstraintsSummary lists the configured booking bounds as display text.
func GetConstraintsSummary(cfg ResourcePricingConfig) []string {
	summary := make([]string, 0, 4)
	if cfg.MinDurationMinutes > 0 {
		summary = append(summary, "Min. varighet: "+FormatDuration(cfg.MinDurationMinutes))
	}
	if cfg.MaxDurationMinutes > 0 {
		summary = append(summary, "Maks. varighet: "+FormatDuration(cfg.MaxDurationMinutes))
	}
	if cfg.MinPeople > 0 {
		summary = append(summary, fmt.Sprintf("Min. %d %s", cfg.MinPeople, personUnit(cfg.MinPeople)))
	}
	if cfg.MaxPeople > 0 {
		summary = append(summary, fmt.Sprintf("Maks. %d %s", cfg.MaxPeople, personUnit(cfg.MaxPeople)))
	}
	return summary
}

// FormatDuration renders minutes as whole days, hours and minutes,
// e.g. "2 dager", "1 time 30 min" or "45 min".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0 min"
	}
	if minutes%minutesPerDay == 0 {
		days := minutes / minutesPerDay
		return fmt.Sprintf("%d %s", days, locale.Pluralize(days, "dag", "dager"))
	}

	hours, rest := minutes/minutesPerHour, minutes%minutesPerHour
	switch {
	case hours == 0:
		return fmt.Sprintf("%d min", rest)
	case rest == 0:
		return fmt.Sprintf("%d %s", hours, locale.Pluralize(hours, "time", "timer"))
	}
	return fmt.Sprintf("%d %s %d min", hours, locale.Pluralize(hours, "time", "timer"), rest)
}
