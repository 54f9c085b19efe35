package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{
			name:     "Millions",
			amount:   1234567.891,
			expected: "$1,234,567.89",
		},
		{
			name:     "Small amount",
			amount:   42.5,
			expected: "$42.50",
		},
		{
			name:     "Zero",
			amount:   0,
			expected: "$0.00",
		},
		{
			name:     "Negative",
			amount:   -1234.56,
			expected: "-$1,234.56",
		},
		{
			name:     "Exactly one thousand",
			amount:   1000,
			expected: "$1,000.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %s, expected %s", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestRoundCurrency(t *testing.T) {
	if got := RoundCurrency(10.005); got != 10.01 {
		t.Errorf("RoundCurrency(10.005) = %v, expected 10.01", got)
	}
	if got := RoundCurrency(10.004); got != 10.0 {
		t.Errorf("RoundCurrency(10.004) = %v, expected 10.0", got)
	}
}
