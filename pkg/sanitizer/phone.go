package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Local numbers are tried against these regions in order.
var supportedRegions = []string{
	"NO",
	"SE",
	"DK",
}

func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsedNumber, err := phonenumbers.Parse(phone, region)
		if err == nil && phonenumbers.IsValidNumber(parsedNumber) {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}
	return ""
}
