package locale

import "strings"

func InferTimezoneFromPhone(phone string) string {
	if country := InferCountryFromPhone(phone); country != nil {
		return country.DefaultTimezone
	}
	return DefaultTimezone
}

func InferCountryFromPhone(phone string) *Country {
	normalized := strings.TrimSpace(phone)
	if normalized == "" {
		return nil
	}

	for _, code := range SupportedRegions() {
		country := Countries[code]
		for _, prefix := range country.PhonePrefixes {
			if strings.HasPrefix(normalized, prefix) {
				return &country
			}
		}
	}

	return nil
}
