package mathutil

import "testing"

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{
			name:     "Round up",
			input:    1.005,
			expected: 1.0,
		},
		{
			name:     "Round down",
			input:    2.344,
			expected: 2.34,
		},
		{
			name:     "Already rounded",
			input:    100.25,
			expected: 100.25,
		},
		{
			name:     "Negative value",
			input:    -1.236,
			expected: -1.24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.input); got != tt.expected {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{name: "Below range", input: -0.3, expected: 0},
		{name: "In range", input: 0.42, expected: 0.42},
		{name: "Above range", input: 1.7, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp01(tt.input); got != tt.expected {
				t.Errorf("Clamp01(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSafeRatio(t *testing.T) {
	if got := SafeRatio(60, 100); got != 0.6 {
		t.Errorf("SafeRatio(60, 100) = %v, expected 0.6", got)
	}
	if got := SafeRatio(60, 0); got != 0 {
		t.Errorf("SafeRatio(60, 0) = %v, expected 0", got)
	}
}

func TestCalculatePercentage(t *testing.T) {
	if got := CalculatePercentage(60, 100); got != 60 {
		t.Errorf("CalculatePercentage(60, 100) = %v, expected 60", got)
	}
	if got := CalculatePercentage(1, 0); got != 0 {
		t.Errorf("CalculatePercentage(1, 0) = %v, expected 0 for zero total", got)
	}
}

func TestNormalizePercentage(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{name: "Fraction passes through", input: 0.30, expected: 0.30},
		{name: "Whole number converts", input: 30, expected: 0.30},
		{name: "Exactly one", input: 1, expected: 1},
		{name: "Zero", input: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePercentage(tt.input); got != tt.expected {
				t.Errorf("NormalizePercentage(%v) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(1.0, 1.005, 0.01) {
		t.Error("expected 1.0 and 1.005 to be within tolerance 0.01")
	}
	if WithinTolerance(1.0, 1.05, 0.01) {
		t.Error("expected 1.0 and 1.05 to be outside tolerance 0.01")
	}
}
