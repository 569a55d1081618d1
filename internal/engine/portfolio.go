package engine

import (
	"math"

	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/models"
)

// Aggregate combines per-scenario evaluations into a portfolio-level view.
//
// Expected values and stakes sum directly. Total risk assumes independent
// outcomes: totalRisk = sqrt(Σ variance_i), with no covariance term. The
// portfolio Sharpe follows the same zero-risk convention as Evaluate:
// 0 when total risk is 0.
func Aggregate(results []models.SimulationResult) models.PortfolioSummary {
	var totalEV, totalStake, totalVariance float64

	for _, r := range results {
		totalEV += r.ExpectedValue
		totalStake += r.Scenario.Stake
		totalVariance += r.Variance
	}

	totalRisk := math.Sqrt(totalVariance)

	sharpe := 0.0
	if totalRisk > 0 {
		sharpe = totalEV / totalRisk
	}

	return models.PortfolioSummary{
		TotalExpectedValue: totalEV,
		TotalStake:         totalStake,
		TotalRisk:          totalRisk,
		PortfolioSharpe:    sharpe,
	}
}
