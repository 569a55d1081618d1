package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/models"
	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/oddsmath"
)

// Validation errors raised at the point of evaluation. Callers match them
// with errors.Is to map onto user-facing messages.
var (
	// ErrInvalidProbability rejects probabilities outside (0,1). Exactly 0 or 1
	// make the EV and variance degenerate, so both ends are excluded.
	ErrInvalidProbability = errors.New("estimated win probability must be strictly between 0 and 1")

	// ErrInvalidStake rejects non-positive stakes.
	ErrInvalidStake = errors.New("stake must be positive")

	// ErrInvalidBankroll rejects negative bankrolls.
	ErrInvalidBankroll = errors.New("bankroll cannot be negative")
)

// Risk level classification thresholds. Heuristic policy, not derived
// constants; tune with care since dashboards key display off these buckets.
const (
	highKellyFloor     = 0.02
	mediumKellyFloor   = 0.05
	highVarianceCeil   = 100.0
	mediumVarianceCeil = 50.0
)

// Evaluate computes point-estimate risk metrics for a single scenario
// against the current bankroll.
//
// The bet's profit is a two-point random variable: +winProfit with
// probability p, -stake with probability 1-p. Expected value, population
// variance, and the Sharpe-like ratio all follow from that distribution:
//
//	EV       = p*winProfit - (1-p)*stake
//	Var      = p*winProfit² + (1-p)*stake² - EV²
//	Sharpe   = EV / sqrt(Var)            (0 when Var == 0: no risk to normalize against)
//	Kelly f* = max(0, (p*b - q) / b)     where b = decimal - 1, q = 1-p
func Evaluate(scenario models.BetScenario, bankroll float64) (*models.SimulationResult, error) {
	if scenario.Stake <= 0 {
		return nil, fmt.Errorf("%w: got %.2f", ErrInvalidStake, scenario.Stake)
	}
	p := scenario.EstimatedWinProbability
	if p <= 0 || p >= 1 {
		return nil, fmt.Errorf("%w: got %.4f", ErrInvalidProbability, p)
	}
	if bankroll < 0 {
		return nil, fmt.Errorf("%w: got %.2f", ErrInvalidBankroll, bankroll)
	}

	decimal, err := oddsmath.AmericanToDecimal(scenario.AmericanOdds)
	if err != nil {
		return nil, err
	}

	stake := scenario.Stake
	winProfit := stake * (decimal - 1.0)
	winPayout := stake * decimal
	q := 1.0 - p

	ev := p*winProfit - q*stake
	variance := p*winProfit*winProfit + q*stake*stake - ev*ev

	// Floating-point subtraction can land a hair below zero for near-degenerate bets
	if variance < 0 {
		variance = 0
	}

	sharpe := 0.0
	if variance > 0 {
		sharpe = ev / math.Sqrt(variance)
	}

	b := decimal - 1.0
	kellyFraction := (p*b - q) / b
	if kellyFraction < 0 {
		kellyFraction = 0
	}

	requiredWinRate, err := oddsmath.AmericanToImpliedProbability(scenario.AmericanOdds)
	if err != nil {
		return nil, err
	}

	return &models.SimulationResult{
		Scenario: scenario,
		WinOutcome: models.Outcome{
			Probability: p,
			Payout:      winPayout,
			ProfitLoss:  winProfit,
		},
		LossOutcome: models.Outcome{
			Probability: q,
			Payout:      0,
			ProfitLoss:  -stake,
		},
		DecimalOdds:       decimal,
		ExpectedValue:     ev,
		Variance:          variance,
		SharpeRatio:       sharpe,
		KellyFraction:     kellyFraction,
		KellyOptimalStake: kellyFraction * bankroll,
		RiskLevel:         classifyRisk(ev, variance, kellyFraction),
		RiskMetrics: models.RiskMetrics{
			MaxLoss:         stake,
			RiskOfRuin:      riskOfRuin(ev, variance, bankroll),
			RequiredWinRate: requiredWinRate,
		},
	}, nil
}

// classifyRisk buckets a scenario into low/medium/high/extreme for display
func classifyRisk(ev, variance, kellyFraction float64) string {
	switch {
	case ev < 0:
		return "extreme"
	case kellyFraction < highKellyFloor || variance > highVarianceCeil:
		return "high"
	case kellyFraction < mediumKellyFloor || variance > mediumVarianceCeil:
		return "medium"
	default:
		return "low"
	}
}

// riskOfRuin estimates the probability of losing the entire bankroll under
// repeated betting, using the Lundberg-style approximation
//
//	RoR ≈ exp(-2 * EV * bankroll / variance)
//
// clamped to [0,1]. A zero bankroll is already ruined (1); a zero-variance
// bet cannot lose (0). This is an approximate indicator, not a rigorous
// ruin-theory model.
func riskOfRuin(ev, variance, bankroll float64) float64 {
	if bankroll == 0 {
		return 1.0
	}
	if variance == 0 {
		return 0.0
	}

	ror := math.Exp(-2.0 * ev * bankroll / variance)
	if ror > 1.0 {
		return 1.0
	}
	return ror
}
