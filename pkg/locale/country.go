package locale

import (
	"strings"
)

const (
	DefaultTimezone = "Europe/Oslo"
	DefaultRegion   = "NO"
	DefaultCurrency = "NOK"
	DefaultLanguage = "nb-NO"
)

type Country struct {
	Code            string   // ISO 3166-1 alpha-2 country code (e.g., "NO", "SE")
	Name            string   // Human-readable country name
	PhonePrefixes   []string // Valid phone number prefixes (e.g., ["+47", "0047"])
	DefaultTimezone string   // IANA timezone identifier (e.g., "Europe/Oslo")
	Currency        string   // ISO 4217 currency code
}

var (
	Countries = map[string]Country{
		"NO": {
			Code:            "NO",
			Name:            "Norge",
			PhonePrefixes:   []string{"+47", "0047"},
			DefaultTimezone: "Europe/Oslo",
			Currency:        "NOK",
		},
		"SE": {
			Code:            "SE",
			Name:            "Sverige",
			PhonePrefixes:   []string{"+46", "0046"},
			DefaultTimezone: "Europe/Stockholm",
			Currency:        "SEK",
		},
		"DK": {
			Code:            "DK",
			Name:            "Danmark",
			PhonePrefixes:   []string{"+45", "0045"},
			DefaultTimezone: "Europe/Copenhagen",
			Currency:        "DKK",
		},
	}

	TimeZoneTags = map[string][]string{
		"NO": {"Europe/Oslo", "Arctic/Longyearbyen", "Norway"},
		"SE": {"Europe/Stockholm"},
		"DK": {"Europe/Copenhagen"},
	}
)

// SupportedRegions lists the region codes used for phone parsing, home region first.
func SupportedRegions() []string {
	return []string{"NO", "SE", "DK"}
}

func DetectRegion(tz string) string {
	for region, zones := range TimeZoneTags {
		for _, z := range zones {
			if strings.EqualFold(tz, z) {
				return region
			}
		}
	}
	return DefaultRegion
}
