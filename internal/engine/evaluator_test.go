package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/models"
	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/oddsmath"
)

const tolerance = 0.0001

func scenario(stake float64, odds int, p float64) models.BetScenario {
	return models.BetScenario{
		ID:                      "test",
		Name:                    "test scenario",
		Stake:                   stake,
		AmericanOdds:            odds,
		EstimatedWinProbability: p,
	}
}

func TestEvaluateKnownScenario(t *testing.T) {
	// stake=100, odds=+150, p=0.5 → decimal=2.5, winProfit=150, EV=25
	result, err := Evaluate(scenario(100, 150, 0.5), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(result.DecimalOdds-2.5) > tolerance {
		t.Errorf("DecimalOdds = %f, want 2.5", result.DecimalOdds)
	}
	if math.Abs(result.WinOutcome.ProfitLoss-150) > tolerance {
		t.Errorf("WinOutcome.ProfitLoss = %f, want 150", result.WinOutcome.ProfitLoss)
	}
	if math.Abs(result.WinOutcome.Payout-250) > tolerance {
		t.Errorf("WinOutcome.Payout = %f, want 250", result.WinOutcome.Payout)
	}
	if math.Abs(result.LossOutcome.ProfitLoss-(-100)) > tolerance {
		t.Errorf("LossOutcome.ProfitLoss = %f, want -100", result.LossOutcome.ProfitLoss)
	}
	if math.Abs(result.ExpectedValue-25) > tolerance {
		t.Errorf("ExpectedValue = %f, want 25", result.ExpectedValue)
	}

	// Var = 0.5*150² + 0.5*100² - 25² = 11250 + 5000 - 625 = 15625
	if math.Abs(result.Variance-15625) > tolerance {
		t.Errorf("Variance = %f, want 15625", result.Variance)
	}

	// Sharpe = 25 / sqrt(15625) = 25/125 = 0.2
	if math.Abs(result.SharpeRatio-0.2) > tolerance {
		t.Errorf("SharpeRatio = %f, want 0.2", result.SharpeRatio)
	}

	// Kelly = (0.5*1.5 - 0.5)/1.5 = 0.25/1.5 = 0.166667
	if math.Abs(result.KellyFraction-0.1666667) > tolerance {
		t.Errorf("KellyFraction = %f, want 0.166667", result.KellyFraction)
	}
	if math.Abs(result.KellyOptimalStake-166.6667) > 0.001 {
		t.Errorf("KellyOptimalStake = %f, want 166.67", result.KellyOptimalStake)
	}

	if math.Abs(result.RiskMetrics.MaxLoss-100) > tolerance {
		t.Errorf("MaxLoss = %f, want 100", result.RiskMetrics.MaxLoss)
	}
	if math.Abs(result.RiskMetrics.RequiredWinRate-0.4) > tolerance {
		t.Errorf("RequiredWinRate = %f, want 0.4", result.RiskMetrics.RequiredWinRate)
	}
}

func TestEvaluateBreakeven(t *testing.T) {
	// A scenario priced exactly at the book's implied probability is breakeven
	tests := []int{100, 150, -110, -200, 300}

	for _, odds := range tests {
		implied, err := oddsmath.AmericanToImpliedProbability(odds)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result, err := Evaluate(scenario(100, odds, implied), 1000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if math.Abs(result.ExpectedValue) > tolerance {
			t.Errorf("odds %+d at implied probability: EV = %f, want ~0", odds, result.ExpectedValue)
		}
	}
}

func TestEvaluateKellyNeverNegative(t *testing.T) {
	// odds=+100 (decimal 2.0), p=0.4 → raw Kelly = (0.4*1 - 0.6)/1 = -0.2 → clamped to 0
	result, err := Evaluate(scenario(100, 100, 0.4), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.KellyFraction != 0 {
		t.Errorf("KellyFraction = %f, want 0 (clamped)", result.KellyFraction)
	}
	if result.KellyOptimalStake != 0 {
		t.Errorf("KellyOptimalStake = %f, want 0", result.KellyOptimalStake)
	}
}

func TestEvaluateRiskLevels(t *testing.T) {
	tests := []struct {
		name     string
		stake    float64
		odds     int
		p        float64
		want     string
	}{
		// EV < 0
		{"negative EV is extreme", 100, 100, 0.4, "extreme"},
		// +EV but tiny edge: kelly < 0.02 and variance well over 100
		{"thin edge is high", 100, 100, 0.51, "high"},
		// Small stake keeps variance low; p=0.55 at +100 → kelly 0.10
		{"small stake decent edge is low", 5, 100, 0.55, "low"},
		// kelly = (0.52*1-0.48)/1 = 0.04, below the 0.05 floor
		{"slim kelly is medium", 5, 100, 0.52, "medium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Evaluate(scenario(tt.stake, tt.odds, tt.p), 1000)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.RiskLevel != tt.want {
				t.Errorf("RiskLevel = %q, want %q (EV=%f kelly=%f var=%f)",
					result.RiskLevel, tt.want, result.ExpectedValue, result.KellyFraction, result.Variance)
			}
		})
	}
}

func TestEvaluateRiskOfRuin(t *testing.T) {
	// Zero bankroll is already ruined
	result, err := Evaluate(scenario(100, 150, 0.5), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RiskMetrics.RiskOfRuin != 1.0 {
		t.Errorf("RiskOfRuin with zero bankroll = %f, want 1.0", result.RiskMetrics.RiskOfRuin)
	}

	// Positive EV with positive bankroll: exp(-2*EV*B/Var), strictly in (0,1)
	result, err = Evaluate(scenario(100, 150, 0.5), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := math.Exp(-2.0 * 25.0 * 1000.0 / 15625.0)
	if math.Abs(result.RiskMetrics.RiskOfRuin-want) > tolerance {
		t.Errorf("RiskOfRuin = %f, want %f", result.RiskMetrics.RiskOfRuin, want)
	}

	// Negative EV pushes the exponent positive; result clamps to 1
	result, err = Evaluate(scenario(100, 100, 0.4), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RiskMetrics.RiskOfRuin != 1.0 {
		t.Errorf("RiskOfRuin with negative EV = %f, want 1.0 (clamped)", result.RiskMetrics.RiskOfRuin)
	}
}

func TestEvaluateValidation(t *testing.T) {
	tests := []struct {
		name     string
		scenario models.BetScenario
		bankroll float64
		wantErr  error
	}{
		{"zero stake", scenario(0, 150, 0.5), 1000, ErrInvalidStake},
		{"negative stake", scenario(-50, 150, 0.5), 1000, ErrInvalidStake},
		{"probability zero", scenario(100, 150, 0), 1000, ErrInvalidProbability},
		{"probability one", scenario(100, 150, 1), 1000, ErrInvalidProbability},
		{"probability above one", scenario(100, 150, 1.2), 1000, ErrInvalidProbability},
		{"negative bankroll", scenario(100, 150, 0.5), -10, ErrInvalidBankroll},
		{"zero odds", scenario(100, 0, 0.5), 1000, oddsmath.ErrZeroOdds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.scenario, tt.bankroll)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Evaluate error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
