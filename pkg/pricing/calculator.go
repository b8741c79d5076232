package pricing

import (
	"fmt"
	"strings"

	"digilist/pkg/locale"

	"github.com/shopspring/decimal"
)

const (
	minutesPerHour    = 60
	minutesPerHalfDay = 240
	minutesPerDay     = 1440
)

var (
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
)

// roundHalfUp rounds to the nearest whole currency unit, halves away from
// negative infinity.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// ceilUnits returns how many whole units of the given size cover minutes,
// never less than one.
func ceilUnits(minutes, size int) int {
	if minutes <= 0 {
		return 1
	}
	n := (minutes + size - 1) / size
	if n < 1 {
		return 1
	}
	return n
}

func attendeesOrOne(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

// CalculateBookingPrice computes the full quote for one booking against a
// resource's pricing configuration. It never fails: unset rates price as zero
// and unset quantities count as one.
func CalculateBookingPrice(cfg ResourcePricingConfig, booking BookingDetails) PriceCalculationResult {
	model := DetermineEffectiveModel(cfg, booking)
	currency := cfg.currency()

	var items []PriceLineItem
	if booking.Mode == ModeTickets && booking.Tickets > 0 {
		items = []PriceLineItem{ticketItem(cfg, booking, currency)}
	} else {
		items = []PriceLineItem{modelItem(model, cfg, booking, currency)}
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(decimal.NewFromFloat(item.Amount))
	}

	if cfg.CleaningFee > 0 {
		fee := decimal.NewFromFloat(cfg.CleaningFee)
		items = append(items, PriceLineItem{
			Type:   LineItemFee,
			Label:  "Rengjøringsgebyr",
			Amount: cfg.CleaningFee,
		})
		subtotal = subtotal.Add(fee)
	}

	discounts := make([]AppliedDiscount, 0, 1)
	afterDiscount := subtotal
	if booking.PriceGroupDiscount > 0 {
		pct := decimal.NewFromFloat(booking.PriceGroupDiscount)
		amount := roundHalfUp(subtotal.Mul(pct).Div(hundred))
		discounts = append(discounts, AppliedDiscount{
			Label:   "Prisgrupperabatt",
			Percent: booking.PriceGroupDiscount,
			Amount:  toFloat(amount),
		})
		afterDiscount = subtotal.Sub(amount)
	}

	taxRate := cfg.EffectiveTaxRate()
	tax := roundHalfUp(afterDiscount.Mul(decimal.NewFromFloat(taxRate)))
	total := afterDiscount.Add(tax)

	result := PriceCalculationResult{
		Items:                 items,
		Subtotal:              toFloat(subtotal),
		Discounts:             discounts,
		SubtotalAfterDiscount: toFloat(afterDiscount),
		TaxAmount:             toFloat(tax),
		TaxRate:               taxRate,
		Total:                 toFloat(total),
		Currency:              currency,
		PricingModel:          model,
	}
	if cfg.DepositAmount > 0 {
		result.Deposit = cfg.DepositAmount
	}
	result.Summary = locale.FormatCurrency(result.Total, currency) + " inkl. mva"
	result.Explanation = explain(model, result)
	return result
}

func ticketItem(cfg ResourcePricingConfig, booking BookingDetails, currency string) PriceLineItem {
	rate := cfg.PricePerTicket
	if rate <= 0 {
		rate = cfg.PricePerPerson
	}
	if rate <= 0 {
		rate = cfg.BasePrice
	}
	amount := roundHalfUp(decimal.NewFromInt(int64(booking.Tickets)).Mul(decimal.NewFromFloat(rate)))
	unit := locale.Pluralize(booking.Tickets, "billett", "billetter")
	return PriceLineItem{
		Type:        LineItemTicket,
		Label:       "Billetter",
		Quantity:    float64(booking.Tickets),
		Unit:        unit,
		UnitPrice:   rate,
		Amount:      toFloat(amount),
		Calculation: fmt.Sprintf("%d %s × %s", booking.Tickets, unit, locale.FormatCurrency(rate, currency)),
	}
}

func modelItem(model Model, cfg ResourcePricingConfig, booking BookingDetails, currency string) PriceLineItem {
	rate := cfg.rateFor(model)
	dRate := decimal.NewFromFloat(rate)
	price := locale.FormatCurrency(rate, currency)
	minutes := booking.DurationMinutes
	if minutes < 0 {
		minutes = 0
	}

	switch model {
	case ModelPerHour:
		hours := decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(minutesPerHour))
		return PriceLineItem{
			Type:        LineItemDuration,
			Label:       "Leie per time",
			Quantity:    toFloat(hours),
			Unit:        hourUnit(hours),
			UnitPrice:   rate,
			Amount:      toFloat(roundHalfUp(perHour(minutes, dRate))),
			Calculation: fmt.Sprintf("%s × %s", formatHours(hours), price),
		}

	case ModelPerDay, ModelPerHalfDay:
		size, label, singular, plural := minutesPerDay, "Leie per dag", "dag", "dager"
		if model == ModelPerHalfDay {
			size, label, singular, plural = minutesPerHalfDay, "Leie per halvdag", "halvdag", "halvdager"
		}
		n := ceilUnits(minutes, size)
		unit := locale.Pluralize(n, singular, plural)
		return PriceLineItem{
			Type:        LineItemDuration,
			Label:       label,
			Quantity:    float64(n),
			Unit:        unit,
			UnitPrice:   rate,
			Amount:      toFloat(roundHalfUp(decimal.NewFromInt(int64(n)).Mul(dRate))),
			Calculation: fmt.Sprintf("%d %s × %s", n, unit, price),
		}

	case ModelPerPerson:
		people := attendeesOrOne(booking.Attendees)
		unit := personUnit(people)
		return PriceLineItem{
			Type:        LineItemPerson,
			Label:       "Pris per person",
			Quantity:    float64(people),
			Unit:        unit,
			UnitPrice:   rate,
			Amount:      toFloat(roundHalfUp(decimal.NewFromInt(int64(people)).Mul(dRate))),
			Calculation: fmt.Sprintf("%d %s × %s", people, unit, price),
		}

	case ModelPerPersonHour:
		people := attendeesOrOne(booking.Attendees)
		hours := decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(minutesPerHour))
		return PriceLineItem{
			Type:        LineItemPerson,
			Label:       "Pris per person per time",
			Quantity:    float64(people),
			Unit:        personUnit(people),
			UnitPrice:   rate,
			Amount:      toFloat(roundHalfUp(perHour(minutes, dRate.Mul(decimal.NewFromInt(int64(people)))))),
			Calculation: fmt.Sprintf("%d %s × %s × %s", people, personUnit(people), formatHours(hours), price),
		}

	case ModelPerPersonDay:
		people := attendeesOrOne(booking.Attendees)
		days := ceilUnits(minutes, minutesPerDay)
		return PriceLineItem{
			Type:        LineItemPerson,
			Label:       "Pris per person per dag",
			Quantity:    float64(people),
			Unit:        personUnit(people),
			UnitPrice:   rate,
			Amount:      toFloat(roundHalfUp(decimal.NewFromInt(int64(days * people)).Mul(dRate))),
			Calculation: fmt.Sprintf("%d %s × %d %s × %s", people, personUnit(people), days, locale.Pluralize(days, "dag", "dager"), price),
		}

	case ModelPerSession:
		return PriceLineItem{
			Type:        LineItemBase,
			Label:       "Pris per økt",
			Amount:      rate,
			Calculation: "Fast pris",
		}

	default:
		// per_booking, sport_slot and anything unrecognised price at the base price.
		return PriceLineItem{
			Type:        LineItemBase,
			Label:       "Fast pris",
			Amount:      rate,
			Calculation: "Fast pris",
		}
	}
}

// perHour prices minutes at an hourly rate. The division comes last so that
// 50 min at 75/h is exactly 62.5 before rounding.
func perHour(minutes int, rate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Mul(rate).Div(decimal.NewFromInt(minutesPerHour))
}

func personUnit(n int) string {
	return locale.Pluralize(n, "person", "personer")
}

func hourUnit(hours decimal.Decimal) string {
	if hours.Equal(decimal.NewFromInt(1)) {
		return "time"
	}
	return "timer"
}

func formatHours(hours decimal.Decimal) string {
	return locale.FormatAmount(toFloat(hours)) + " " + hourUnit(hours)
}

func explain(model Model, r PriceCalculationResult) string {
	var sentences []string

	for _, item := range r.Items {
		switch item.Type {
		case LineItemFee:
			sentences = append(sentences, fmt.Sprintf("%s på %s er inkludert.", item.Label, locale.FormatCurrency(item.Amount, r.Currency)))
		case LineItemTicket:
			sentences = append(sentences, fmt.Sprintf("Billettpris: %s = %s.", item.Calculation, locale.FormatCurrency(item.Amount, r.Currency)))
		default:
			sentences = append(sentences, fmt.Sprintf("Prismodell: %s. %s = %s.", model.Label(), item.Calculation, locale.FormatCurrency(item.Amount, r.Currency)))
		}
	}

	for _, d := range r.Discounts {
		sentences = append(sentences, fmt.Sprintf("%s på %s %% gir %s i fratrekk.", d.Label, locale.FormatAmount(d.Percent), locale.FormatCurrency(d.Amount, r.Currency)))
	}

	sentences = append(sentences, fmt.Sprintf("Merverdiavgift %s %% (%s) er inkludert i totalen.", locale.FormatAmount(r.TaxRate*100), locale.FormatCurrency(r.TaxAmount, r.Currency)))

	if r.Deposit > 0 {
		sentences = append(sentences, fmt.Sprintf("Depositum på %s kommer i tillegg og er ikke inkludert i totalen.", locale.FormatCurrency(r.Deposit, r.Currency)))
	}

	return strings.Join(sentences, " ")
}
