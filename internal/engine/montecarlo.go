package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/models"
	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/oddsmath"
)

// Monte Carlo validation errors
var (
	// ErrNoIterations rejects iteration counts below 1.
	ErrNoIterations = errors.New("iterations must be >= 1")

	// ErrNoScenarios rejects an empty scenario set.
	ErrNoScenarios = errors.New("at least one scenario is required")
)

// Simulator runs repeated random trials over a portfolio of scenarios.
//
// The random source is injected so callers control reproducibility: tests
// pass a fixed seed, production callers seed from entropy. Each trial draws
// one independent Bernoulli outcome per scenario; no correlation model
// between scenarios.
type Simulator struct {
	rng *rand.Rand
}

// NewSimulator creates a simulator backed by the given random source
func NewSimulator(src rand.Source) *Simulator {
	return &Simulator{rng: rand.New(src)}
}

// trialScenario is a scenario pre-resolved to its win profit
type trialScenario struct {
	probability float64
	winProfit   float64
	stake       float64
}

// Run simulates iterations trials over the scenario set and returns the
// empirical outcome distribution, sorted ascending for percentile lookup.
//
// Per trial, each scenario contributes stake*(decimal-1) on a win and
// -stake on a loss; the trial outcome is the portfolio sum.
func (s *Simulator) Run(scenarios []models.BetScenario, iterations int) (*models.MonteCarloReport, error) {
	if iterations < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoIterations, iterations)
	}
	if len(scenarios) == 0 {
		return nil, ErrNoScenarios
	}

	// Validate and resolve odds once, not per trial
	trials := make([]trialScenario, 0, len(scenarios))
	for _, sc := range scenarios {
		if sc.Stake <= 0 {
			return nil, fmt.Errorf("%w: scenario %q got %.2f", ErrInvalidStake, sc.Name, sc.Stake)
		}
		if sc.EstimatedWinProbability <= 0 || sc.EstimatedWinProbability >= 1 {
			return nil, fmt.Errorf("%w: scenario %q got %.4f", ErrInvalidProbability, sc.Name, sc.EstimatedWinProbability)
		}

		decimal, err := oddsmath.AmericanToDecimal(sc.AmericanOdds)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}

		trials = append(trials, trialScenario{
			probability: sc.EstimatedWinProbability,
			winProfit:   sc.Stake * (decimal - 1.0),
			stake:       sc.Stake,
		})
	}

	outcomes := make([]float64, iterations)
	for i := 0; i < iterations; i++ {
		total := 0.0
		for _, t := range trials {
			if s.rng.Float64() < t.probability {
				total += t.winProfit
			} else {
				total -= t.stake
			}
		}
		outcomes[i] = total
	}

	sort.Float64s(outcomes)

	return &models.MonteCarloReport{
		Iterations: iterations,
		Outcomes:   outcomes,
		Statistics: summarize(outcomes),
	}, nil
}

// summarize computes distribution statistics over sorted outcomes
func summarize(sorted []float64) models.MonteCarloStatistics {
	n := len(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	sumSq := 0.0
	for _, v := range sorted {
		d := v - mean
		sumSq += d * d
	}
	stdDev := math.Sqrt(sumSq / float64(n))

	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2.0
	}

	return models.MonteCarloStatistics{
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		P5:     percentile(sorted, 0.05),
		P25:    percentile(sorted, 0.25),
		P75:    percentile(sorted, 0.75),
		P95:    percentile(sorted, 0.95),
	}
}

// percentile returns the value at index floor(n*q) of the sorted outcomes
func percentile(sorted []float64, q float64) float64 {
	idx := int(math.Floor(float64(len(sorted)) * q))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
