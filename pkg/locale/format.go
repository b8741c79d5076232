package locale

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	norwegian = language.MustParse(DefaultLanguage)

	// CLDR uses no-break spaces as the nb-NO group separator; displays want plain spaces.
	spaceNormalizer = strings.NewReplacer("\u00a0", " ", "\u202f", " ")
)

// FormatAmount renders v using nb-NO conventions: space separated thousands,
// decimal comma and at most two fraction digits.
func FormatAmount(v float64) string {
	p := message.NewPrinter(norwegian)
	return spaceNormalizer.Replace(p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2))))
}

// FormatCurrency renders v followed by its ISO currency code, e.g. "1 250 NOK".
func FormatCurrency(v float64, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return FormatAmount(v) + " " + strings.ToUpper(currency)
}

// Pluralize picks the singular form for exactly one, the plural form otherwise.
func Pluralize(n int, singular, plural string) string {
	if n == 1 || n == -1 {
		return singular
	}
	return plural
}
