package sanitizer

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trim spaces", "  Nordbyhallen  ", "Nordbyhallen"},
		{"multiple spaces between words", "Møterom    Fjord", "Møterom Fjord"},
		{"tabs and newlines", "Skøyen\t\nbad", "Skøyen bad"},
		{"empty string", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"preserve special characters", " Kafé & Scene ", "Kafé & Scene"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	if got := NormalizeLabel("  Idretts  Hall "); got != "idretts hall" {
		t.Errorf("NormalizeLabel() = %q", got)
	}
}

func TestNormalizeCurrency(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"nok", "NOK"},
		{" sek ", "SEK"},
		{"", "NOK"},
		{"EUR", "EUR"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeCurrency(tt.input, "NOK"); got != tt.want {
				t.Errorf("NormalizeCurrency(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"adds scheme", "example.no", "https://example.no"},
		{"upgrades http", "http://example.no/booking", "https://example.no/booking"},
		{"drops www and case", "HTTPS://WWW.Example.NO/", "https://example.no"},
		{"drops utm params", "https://example.no/hall?utm_source=x&id=7", "https://example.no/hall?id=7"},
		{"empty", "  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeURL(tt.input); got != tt.want {
				t.Errorf("SanitizeURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPipelineAndOptional(t *testing.T) {
	var p Pipeline = []Strategy{NormalizeName, NormalizeLabel}
	if got := p.Apply("  Store   Sal "); got != "store sal" {
		t.Errorf("Pipeline.Apply() = %q", got)
	}

	if got := OptionalString(nil, NormalizeName); got != nil {
		t.Errorf("expected nil to stay nil, got %q", *got)
	}
	in := "  Ny  adresse "
	if got := OptionalString(&in, NormalizeName); got == nil || *got != "Ny adresse" {
		t.Errorf("OptionalString() = %v", got)
	}
}
