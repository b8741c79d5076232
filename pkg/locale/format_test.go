package locale

import (
	"strings"
	"testing"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"small integer", 500, "500"},
		{"five digits grouped", 12500, "12 500"},
		{"millions", 1234567, "1 234 567"},
		{"decimal comma", 99.5, "99,5"},
		{"two decimals", 10000.25, "10 000,25"},
		{"zero", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAmount(tt.value); got != tt.want {
				t.Errorf("FormatAmount(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatAmount_NoNonBreakingSpaces(t *testing.T) {
	got := FormatAmount(98765432)
	if strings.ContainsAny(got, "\u00a0\u202f") {
		t.Errorf("FormatAmount should only use plain spaces, got %q", got)
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		currency string
		want     string
	}{
		{"trailing code", 12500, "NOK", "12 500 NOK"},
		{"lower case code", 300, "sek", "300 SEK"},
		{"default currency", 150, "", "150 NOK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrency(tt.value, tt.currency); got != tt.want {
				t.Errorf("FormatCurrency(%v, %q) = %q, want %q", tt.value, tt.currency, got, tt.want)
			}
		})
	}
}

func TestPluralize(t *testing.T) {
	if got := Pluralize(1, "time", "timer"); got != "time" {
		t.Errorf("Pluralize(1) = %q, want singular", got)
	}
	if got := Pluralize(2, "time", "timer"); got != "timer" {
		t.Errorf("Pluralize(2) = %q, want plural", got)
	}
	if got := Pluralize(0, "dag", "dager"); got != "dager" {
		t.Errorf("Pluralize(0) = %q, want plural", got)
	}
}
