package pricing

// DetermineEffectiveModel picks the pricing model for a booking. An explicitly
// configured model always wins; otherwise the model is inferred from the
// booking mode and the rates that are present, falling back to per_booking.
func DetermineEffectiveModel(cfg ResourcePricingConfig, booking BookingDetails) Model {
	if cfg.Model != "" {
		return cfg.Model
	}

	switch booking.Mode {
	case ModeAllDay:
		switch {
		case cfg.PricePerDay > 0:
			return ModelPerDay
		case cfg.PricePerPerson > 0:
			return ModelPerPersonDay
		}
		return ModelPerBooking
	case ModeTickets:
		return ModelPerPerson
	default:
		switch {
		case cfg.PricePerHour > 0:
			return ModelPerHour
		case cfg.PricePerPersonHour > 0:
			return ModelPerPersonHour
		case cfg.PricePerDay > 0:
			return ModelPerDay
		}
		return ModelPerBooking
	}
}
