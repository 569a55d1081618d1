package oddsmath_test

import (
	"errors"
	"math"
	"testing"

	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/oddsmath"
)

func TestAmericanToDecimal(t *testing.T) {
	tests := []struct {
		name     string
		american int
		want     float64
	}{
		{"Positive odds +100", 100, 2.0},
		{"Positive odds +150", 150, 2.5},
		{"Positive odds +200", 200, 3.0},
		{"Negative odds -110", -110, 1.909090909},
		{"Negative odds -150", -150, 1.666666667},
		{"Negative odds -200", -200, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.AmericanToDecimal(tt.american)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// Allow small floating point differences
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("AmericanToDecimal(%d) = %f, want %f", tt.american, got, tt.want)
			}

			// Decimal odds are always > 1 for any valid input
			if got <= 1.0 {
				t.Errorf("AmericanToDecimal(%d) = %f, want > 1.0", tt.american, got)
			}
		})
	}
}

func TestAmericanToDecimalZeroOdds(t *testing.T) {
	_, err := oddsmath.AmericanToDecimal(0)
	if !errors.Is(err, oddsmath.ErrZeroOdds) {
		t.Errorf("AmericanToDecimal(0) error = %v, want ErrZeroOdds", err)
	}
}

func TestAmericanToImpliedProbability(t *testing.T) {
	tests := []struct {
		name     string
		american int
		want     float64
	}{
		{"Even odds +100", 100, 0.50},
		{"Favorite -110", -110, 0.5238},
		{"Heavy favorite -200", -200, 0.6667},
		{"Underdog +150", 150, 0.40},
		{"Heavy underdog +300", 300, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.AmericanToImpliedProbability(tt.american)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("AmericanToImpliedProbability(%d) = %f, want %f", tt.american, got, tt.want)
			}

			if got <= 0 || got >= 1 {
				t.Errorf("AmericanToImpliedProbability(%d) = %f, want in (0,1)", tt.american, got)
			}
		})
	}
}

func TestDecimalToAmerican(t *testing.T) {
	tests := []struct {
		name    string
		decimal float64
		want    int
	}{
		{"Even odds 2.0", 2.0, 100},
		{"Underdog 2.5", 2.5, 150},
		{"Underdog 3.0", 3.0, 200},
		{"Favorite 1.909", 1.909, -110},
		{"Favorite 1.5", 1.5, -200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.DecimalToAmerican(tt.decimal)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// Allow ±1 for rounding
			if math.Abs(float64(got-tt.want)) > 2 {
				t.Errorf("DecimalToAmerican(%f) = %d, want %d", tt.decimal, got, tt.want)
			}
		})
	}
}

func TestDecimalToAmericanInvalid(t *testing.T) {
	_, err := oddsmath.DecimalToAmerican(0.5)
	if !errors.Is(err, oddsmath.ErrInvalidDecimal) {
		t.Errorf("DecimalToAmerican(0.5) error = %v, want ErrInvalidDecimal", err)
	}
}

func TestProbabilityToDecimalInvalid(t *testing.T) {
	for _, p := range []float64{0, 1, -0.5, 1.5} {
		if _, err := oddsmath.ProbabilityToDecimal(p); !errors.Is(err, oddsmath.ErrInvalidProbability) {
			t.Errorf("ProbabilityToDecimal(%f) error = %v, want ErrInvalidProbability", p, err)
		}
	}
}
