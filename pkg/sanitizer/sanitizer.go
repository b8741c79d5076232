package sanitizer

import (
	"net/url"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// OptionalString applies a strategy to a patch field, leaving nil untouched.
func OptionalString(s *string, strategy Strategy) *string {
	if s == nil {
		return nil
	}
	v := strategy(*s)
	return &v
}

func SanitizeURL(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}

	u.Scheme = "https"
	u.Host = strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	u.Path = strings.TrimSuffix(strings.TrimSpace(u.Path), "/")

	q := u.Query()
	qClean := url.Values{}
	for k, v := range q {
		key := strings.TrimSpace(strings.ToLower(k))
		if strings.HasPrefix(key, "utm_") {
			continue
		}
		for _, val := range v {
			if value := strings.TrimSpace(val); value != "" {
				qClean.Add(key, value)
			}
		}
	}
	u.RawQuery = qClean.Encode()

	return u.String()
}
