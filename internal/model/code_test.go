package model

import "testing"

// TestNormalizeCode tests barcode value canonicalization.
func TestNormalizeCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trims surrounding whitespace", input: "  012345678905 \n", want: "012345678905"},
		{name: "removes interior spaces", input: "0 123456 789050", want: "0123456789050"},
		{name: "leaves clean code unchanged", input: "4006381333931", want: "4006381333931"},
		{name: "empty input stays empty", input: "   ", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeCode(tt.input); got != tt.want {
				t.Errorf("NormalizeCode(%q) = %q, expected %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestIsValidCode tests check-digit validation against known vectors.
func TestIsValidCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want bool
	}{
		// Valid check digits taken from real products.
		{name: "valid UPC-A", code: "012345678905", want: true},
		{name: "valid EAN-13", code: "4006381333931", want: true},
		{name: "valid EAN-8", code: "96385074", want: true},

		// Same codes with the final digit damaged.
		{name: "invalid UPC-A check digit", code: "012345678906", want: false},
		{name: "invalid EAN-13 check digit", code: "4006381333932", want: false},
		{name: "invalid EAN-8 check digit", code: "96385075", want: false},

		// Lengths without a mandatory check digit pass through.
		{name: "short numeric code accepted", code: "12345", want: true},
		{name: "alphanumeric code accepted", code: "ABC-1234", want: true},

		{name: "empty code rejected", code: "", want: false},
		{name: "whitespace-only code rejected", code: "   ", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsValidCode(tt.code); got != tt.want {
				t.Errorf("IsValidCode(%q) = %v, expected %v", tt.code, got, tt.want)
			}
		})
	}
}
