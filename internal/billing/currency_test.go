package billing

import "testing"

func TestFormatEuros(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"plain amount", 1234.5, "1.234,50 €"},
		{"zero", 0, "0,00 €"},
		{"non-numeric string", "abc", "0,00 €"},
		{"numeric string", "1234.5", "1.234,50 €"},
		{"nil", nil, "0,00 €"},
		{"small amount", 9.9, "9,90 €"},
		{"three digits", 850.0, "850,00 €"},
		{"exact thousand", 1000.0, "1.000,00 €"},
		{"millions", 1234567.891, "1.234.567,89 €"},
		{"negative", -1234.5, "-1.234,50 €"},
		{"integer input", 42, "42,00 €"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatEuros(tt.value); got != tt.want {
				t.Errorf("FormatEuros(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
