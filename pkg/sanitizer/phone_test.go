package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "norwegian E.164",
			input: "+4741234567",
			want:  "+4741234567",
		},
		{
			name:  "norwegian with spaces",
			input: "+47 412 34 567",
			want:  "+4741234567",
		},
		{
			name:  "norwegian local number",
			input: "412 34 567",
			want:  "+4741234567",
		},
		{
			name:  "swedish mobile",
			input: "+46 70 123 45 67",
			want:  "+46701234567",
		},
		{
			name:  "danish number",
			input: "+45 32 12 34 56",
			want:  "+4532123456",
		},
		{
			name:  "leading and trailing spaces",
			input: "  +4741234567  ",
			want:  "+4741234567",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
		{
			name:  "too short",
			input: "12345",
			want:  "",
		},
		{
			name:  "letters",
			input: "not a phone",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	once := NormalizePhone("412 34 567")
	if twice := NormalizePhone(once); twice != once {
		t.Errorf("expected idempotent result, got %q then %q", once, twice)
	}
}
