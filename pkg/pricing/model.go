package pricing

// Model is the unit of measure a resource is priced by.
type Model string

const (
	ModelPerHour       Model = "per_hour"
	ModelPerDay        Model = "per_day"
	ModelPerHalfDay    Model = "per_half_day"
	ModelPerSession    Model = "per_session"
	ModelPerPerson     Model = "per_person"
	ModelPerPersonHour Model = "per_person_hour"
	ModelPerPersonDay  Model = "per_person_day"
	ModelPerBooking    Model = "per_booking"
	ModelSportSlot     Model = "sport_slot"
)

// Models lists every pricing model in display order.
var Models = []Model{
	ModelPerHour,
	ModelPerDay,
	ModelPerHalfDay,
	ModelPerSession,
	ModelPerPerson,
	ModelPerPersonHour,
	ModelPerPersonDay,
	ModelPerBooking,
	ModelSportSlot,
}

// ParseModel matches s against the known pricing model codes.
func ParseModel(s string) (Model, bool) {
	for _, m := range Models {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// Label is the Norwegian display name of the model.
func (m Model) Label() string {
	switch m {
	case ModelPerHour:
		return "Per time"
	case ModelPerDay:
		return "Per dag"
	case ModelPerHalfDay:
		return "Per halvdag"
	case ModelPerSession:
		return "Per økt"
	case ModelPerPerson:
		return "Per person"
	case ModelPerPersonHour:
		return "Per person per time"
	case ModelPerPersonDay:
		return "Per person per dag"
	case ModelPerBooking:
		return "Per booking"
	case ModelSportSlot:
		return "Sportstid"
	}
	return string(m)
}

// BookingMode is the structural type of a booking request.
type BookingMode string

const (
	ModeSlots    BookingMode = "SLOTS"
	ModeAllDay   BookingMode = "ALL_DAY"
	ModeDuration BookingMode = "DURATION"
	ModeTickets  BookingMode = "TICKETS"
)

// ParseBookingMode matches s against the known booking modes.
func ParseBookingMode(s string) (BookingMode, bool) {
	switch BookingMode(s) {
	case ModeSlots, ModeAllDay, ModeDuration, ModeTickets:
		return BookingMode(s), true
	}
	return "", false
}

// LineItemType classifies a row of the price breakdown.
type LineItemType string

const (
	LineItemBase     LineItemType = "base"
	LineItemDuration LineItemType = "duration"
	LineItemPerson   LineItemType = "person"
	LineItemTicket   LineItemType = "ticket"
	LineItemAddon    LineItemType = "addon"
	LineItemFee      LineItemType = "fee"
)

// DefaultTaxRate applies when a resource has no tax rate configured.
const DefaultTaxRate = 0.25

// ResourcePricingConfig describes how a bookable resource is priced.
// Zero rates and bounds mean "not configured"; TaxRate is a pointer because
// an explicit zero rate differs from an unset one.
type ResourcePricingConfig struct {
	Model              Model    `json:"model,omitempty" bson:"model,omitempty" validate:"omitempty,oneof=per_hour per_day per_half_day per_session per_person per_person_hour per_person_day per_booking sport_slot"`
	Currency           string   `json:"currency" bson:"currency" validate:"omitempty,iso4217"`
	PricePerHour       float64  `json:"price_per_hour,omitempty" bson:"price_per_hour,omitempty" validate:"gte=0"`
	PricePerDay        float64  `json:"price_per_day,omitempty" bson:"price_per_day,omitempty" validate:"gte=0"`
	PricePerHalfDay    float64  `json:"price_per_half_day,omitempty" bson:"price_per_half_day,omitempty" validate:"gte=0"`
	PricePerPerson     float64  `json:"price_per_person,omitempty" bson:"price_per_person,omitempty" validate:"gte=0"`
	PricePerPersonHour float64  `json:"price_per_person_hour,omitempty" bson:"price_per_person_hour,omitempty" validate:"gte=0"`
	BasePrice          float64  `json:"base_price,omitempty" bson:"base_price,omitempty" validate:"gte=0"`
	PricePerTicket     float64  `json:"price_per_ticket,omitempty" bson:"price_per_ticket,omitempty" validate:"gte=0"`
	MinDurationMinutes int      `json:"min_duration_minutes,omitempty" bson:"min_duration_minutes,omitempty" validate:"gte=0"`
	MaxDurationMinutes int      `json:"max_duration_minutes,omitempty" bson:"max_duration_minutes,omitempty" validate:"gte=0"`
	MinPeople          int      `json:"min_people,omitempty" bson:"min_people,omitempty" validate:"gte=0"`
	MaxPeople          int      `json:"max_people,omitempty" bson:"max_people,omitempty" validate:"gte=0"`
	CleaningFee        float64  `json:"cleaning_fee,omitempty" bson:"cleaning_fee,omitempty" validate:"gte=0"`
	DepositAmount      float64  `json:"deposit_amount,omitempty" bson:"deposit_amount,omitempty" validate:"gte=0"`
	TaxRate            *float64 `json:"tax_rate,omitempty" bson:"tax_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// EffectiveTaxRate returns the configured tax rate or DefaultTaxRate.
func (c ResourcePricingConfig) EffectiveTaxRate() float64 {
	if c.TaxRate != nil {
		return *c.TaxRate
	}
	return DefaultTaxRate
}

func (c ResourcePricingConfig) currency() string {
	if c.Currency == "" {
		return "NOK"
	}
	return c.Currency
}

// rateFor returns the unit rate the given model multiplies by.
func (c ResourcePricingConfig) rateFor(m Model) float64 {
	switch m {
	case ModelPerHour:
		return c.PricePerHour
	case ModelPerDay:
		return c.PricePerDay
	case ModelPerHalfDay:
		return c.PricePerHalfDay
	case ModelPerPerson, ModelPerPersonDay:
		return c.PricePerPerson
	case ModelPerPersonHour:
		return c.PricePerPersonHour
	default:
		return c.BasePrice
	}
}

// BookingDetails is one booking attempt being priced.
type BookingDetails struct {
	Mode               BookingMode `json:"mode" bson:"mode" validate:"omitempty,oneof=SLOTS ALL_DAY DURATION TICKETS"`
	DurationMinutes    int         `json:"duration_minutes" bson:"duration_minutes" validate:"gte=0"`
	Attendees          int         `json:"attendees" bson:"attendees" validate:"gte=0"`
	Tickets            int         `json:"tickets,omitempty" bson:"tickets,omitempty" validate:"gte=0"`
	PriceGroupID       string      `json:"price_group_id,omitempty" bson:"price_group_id,omitempty"`
	PriceGroupDiscount float64     `json:"price_group_discount,omitempty" bson:"price_group_discount,omitempty" validate:"gte=0,lte=100"`
}

// PriceLineItem is one row of a price breakdown. Quantity, Unit and UnitPrice
// are empty for flat items.
type PriceLineItem struct {
	Type        LineItemType `json:"type" bson:"type"`
	Label       string       `json:"label" bson:"label"`
	Quantity    float64      `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Unit        string       `json:"unit,omitempty" bson:"unit,omitempty"`
	UnitPrice   float64      `json:"unit_price,omitempty" bson:"unit_price,omitempty"`
	Amount      float64      `json:"amount" bson:"amount"`
	Calculation string       `json:"calculation,omitempty" bson:"calculation,omitempty"`
}

// AppliedDiscount is the price group discount taken off the subtotal.
type AppliedDiscount struct {
	Label   string  `json:"label" bson:"label"`
	Percent float64 `json:"percent" bson:"percent"`
	Amount  float64 `json:"amount" bson:"amount"`
}

// PriceCalculationResult is a complete quote.
// Total == SubtotalAfterDiscount + TaxAmount and
// SubtotalAfterDiscount == Subtotal - sum(Discounts.Amount).
type PriceCalculationResult struct {
	Items                 []PriceLineItem   `json:"items" bson:"items"`
	Subtotal              float64           `json:"subtotal" bson:"subtotal"`
	Discounts             []AppliedDiscount `json:"discounts" bson:"discounts"`
	SubtotalAfterDiscount float64           `json:"subtotal_after_discount" bson:"subtotal_after_discount"`
	TaxAmount             float64           `json:"tax_amount" bson:"tax_amount"`
	TaxRate               float64           `json:"tax_rate" bson:"tax_rate"`
	Total                 float64           `json:"total" bson:"total"`
	Currency              string            `json:"currency" bson:"currency"`
	Deposit               float64           `json:"deposit,omitempty" bson:"deposit,omitempty"`
	Summary               string            `json:"summary" bson:"summary"`
	Explanation           string            `json:"explanation" bson:"explanation"`
	PricingModel          Model             `json:"pricing_model" bson:"pricing_model"`
}
