package oddsmath

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors so callers can classify validation failures with errors.Is.
var (
	// ErrZeroOdds is returned for American odds of exactly 0, which have no
	// meaning in either the favorite or underdog convention.
	ErrZeroOdds = errors.New("invalid American odds: cannot be 0")

	// ErrInvalidDecimal is returned for decimal odds below 1.0.
	ErrInvalidDecimal = errors.New("invalid decimal odds: must be >= 1.0")

	// ErrInvalidProbability is returned for probabilities outside (0, 1).
	ErrInvalidProbability = errors.New("invalid probability: must be between 0 and 1")
)

// AmericanToDecimal converts American odds to decimal odds
// American +150 → Decimal 2.50
// American -150 → Decimal 1.67
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, ErrZeroOdds
	}

	if american > 0 {
		// Positive odds: (american / 100) + 1
		return (float64(american) / 100.0) + 1.0, nil
	}

	// Negative odds: (100 / abs(american)) + 1
	return (100.0 / float64(-american)) + 1.0, nil
}

// DecimalToAmerican converts decimal odds to American odds
// Decimal 2.50 → American +150
// Decimal 1.67 → American -150
func DecimalToAmerican(decimal float64) (int, error) {
	if decimal < 1.0 {
		return 0, fmt.Errorf("%w: got %.4f", ErrInvalidDecimal, decimal)
	}

	if decimal >= 2.0 {
		// Positive American odds: (decimal - 1) * 100
		return int(math.Round((decimal - 1.0) * 100.0)), nil
	}

	// Negative American odds: -100 / (decimal - 1)
	return int(math.Round(-100.0 / (decimal - 1.0))), nil
}

// DecimalToImpliedProbability converts decimal odds to implied probability
// Decimal 2.00 → 0.50 (50%)
// Decimal 1.50 → 0.667 (66.7%)
func DecimalToImpliedProbability(decimal float64) (float64, error) {
	if decimal <= 0 {
		return 0, fmt.Errorf("%w: got %.4f", ErrInvalidDecimal, decimal)
	}

	return 1.0 / decimal, nil
}

// AmericanToImpliedProbability converts American odds directly to implied probability
// +150 → 100/250 = 0.40
// -110 → 110/210 = 0.5238
func AmericanToImpliedProbability(american int) (float64, error) {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}

	return DecimalToImpliedProbability(decimal)
}

// ProbabilityToDecimal converts probability to decimal odds
// 0.50 (50%) → Decimal 2.00
// 0.667 (66.7%) → Decimal 1.50
func ProbabilityToDecimal(probability float64) (float64, error) {
	if probability <= 0 || probability >= 1 {
		return 0, fmt.Errorf("%w: got %.4f", ErrInvalidProbability, probability)
	}

	return 1.0 / probability, nil
}

// ProbabilityToAmerican converts probability directly to American odds
// Convenience function that combines ProbabilityToDecimal + DecimalToAmerican
func ProbabilityToAmerican(probability float64) (int, error) {
	decimal, err := ProbabilityToDecimal(probability)
	if err != nil {
		return 0, err
	}

	return DecimalToAmerican(decimal)
}
