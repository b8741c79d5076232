package adapters

import (
	"fmt"
	"time"
)

// ISOLayout is UTC with millisecond precision, e.g. 2025-03-01T09:30:00.000Z.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// EpochMillisToISO converts a stored timestamp for display. Zero means unset
// and converts to "".
func EpochMillisToISO(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(ISOLayout)
}

// ISOToEpochMillis parses an RFC 3339 timestamp, with or without fractional
// seconds. An empty string converts to zero.
func ISOToEpochMillis(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, fmt.Errorf("invalid ISO timestamp %q: %w", s, err)
	}
	return t.UnixMilli(), nil
}
