package models

import "time"

// BetScenario represents a hypothetical wager under evaluation
type BetScenario struct {
	ID                      string  `json:"id"`
	Name                    string  `json:"name"`
	Stake                   float64 `json:"stake"`                     // Amount risked, must be > 0
	AmericanOdds            int     `json:"american_odds"`             // e.g. +150, -110; never 0
	EstimatedWinProbability float64 `json:"estimated_win_probability"` // Subjective belief, strictly in (0,1)
}

// Outcome represents one branch of a bet (win or loss)
type Outcome struct {
	Probability float64 `json:"probability"`
	Payout      float64 `json:"payout"`      // Total returned including stake (0 on loss)
	ProfitLoss  float64 `json:"profit_loss"` // Net change to bankroll
}

// RiskMetrics holds risk indicators for a single evaluated scenario
type RiskMetrics struct {
	MaxLoss         float64 `json:"max_loss"`          // Full stake
	RiskOfRuin      float64 `json:"risk_of_ruin"`      // Heuristic estimate in [0,1]
	RequiredWinRate float64 `json:"required_win_rate"` // Breakeven probability (book's implied)
}

// SimulationResult is the evaluated output for one scenario
type SimulationResult struct {
	Scenario          BetScenario `json:"scenario"`
	WinOutcome        Outcome     `json:"win_outcome"`
	LossOutcome       Outcome     `json:"loss_outcome"`
	DecimalOdds       float64     `json:"decimal_odds"`
	ExpectedValue     float64     `json:"expected_value"`
	Variance          float64     `json:"variance"`
	SharpeRatio       float64     `json:"sharpe_ratio"` // 0 when variance is 0
	KellyFraction     float64     `json:"kelly_fraction"`
	KellyOptimalStake float64     `json:"kelly_optimal_stake"`
	RiskLevel         string      `json:"risk_level"` // low, medium, high, extreme
	RiskMetrics       RiskMetrics `json:"risk_metrics"`
}

// PortfolioSummary aggregates a set of evaluated scenarios
type PortfolioSummary struct {
	TotalExpectedValue float64 `json:"total_expected_value"`
	TotalStake         float64 `json:"total_stake"`
	TotalRisk          float64 `json:"total_risk"`       // sqrt of summed variances (independence assumed)
	PortfolioSharpe    float64 `json:"portfolio_sharpe"` // 0 when total risk is 0
}

// MonteCarloStatistics summarizes the empirical outcome distribution
type MonteCarloStatistics struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	P5     float64 `json:"p5"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	P95    float64 `json:"p95"`
}

// MonteCarloReport is the empirical distribution from repeated trials
type MonteCarloReport struct {
	Iterations int                  `json:"iterations"`
	Outcomes   []float64            `json:"outcomes"` // Per-trial portfolio P&L, sorted ascending
	Statistics MonteCarloStatistics `json:"statistics"`
}

// EntryType classifies a bankroll ledger entry
type EntryType string

// Ledger entry types. Amount is always positive; direction is implied by type.
const (
	EntryDeposit    EntryType = "deposit"
	EntryWithdrawal EntryType = "withdrawal"
	EntryBet        EntryType = "bet"
	EntryWin        EntryType = "win"
	EntryLoss       EntryType = "loss"
	EntryBonus      EntryType = "bonus"
	EntryFee        EntryType = "fee"
)

// BankrollEntry is one append-only ledger transaction
type BankrollEntry struct {
	ID          string    `json:"id"`
	Type        EntryType `json:"type"`
	Amount      float64   `json:"amount"` // Always positive
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// BankrollStatistics is the derived view over the entry sequence.
// It is a pure function of (entries, initialBalance, now).
type BankrollStatistics struct {
	CurrentBalance    float64 `json:"current_balance"`
	NetProfit         float64 `json:"net_profit"`
	ROI               float64 `json:"roi_pct"`      // Percent of total deposits
	WinRate           float64 `json:"win_rate_pct"` // Win entries / bet entries
	AverageBetSize    float64 `json:"average_bet_size"`
	TotalDeposits     float64 `json:"total_deposits"`
	TotalWithdrawals  float64 `json:"total_withdrawals"`
	TotalWagered      float64 `json:"total_wagered"`
	LargestWin        float64 `json:"largest_win"`
	LargestLoss       float64 `json:"largest_loss"`
	CurrentStreak     int     `json:"current_streak"` // Positive = wins, negative = losses
	LongestWinStreak  int     `json:"longest_win_streak"`
	LongestLossStreak int     `json:"longest_loss_streak"`
	ProfitToday       float64 `json:"profit_today"`
	ProfitThisWeek    float64 `json:"profit_this_week"`
	ProfitThisMonth   float64 `json:"profit_this_month"`
	EntryCount        int     `json:"entry_count"`
}

// EvaluateRequest is the request for a single scenario evaluation
type EvaluateRequest struct {
	Scenario BetScenario `json:"scenario"`
	Bankroll float64     `json:"bankroll"`
}

// PortfolioRequest evaluates a set of scenarios and aggregates them
type PortfolioRequest struct {
	Scenarios []BetScenario `json:"scenarios"`
	Bankroll  float64       `json:"bankroll"`
}

// PortfolioResponse pairs per-scenario results with the aggregate view
type PortfolioResponse struct {
	Results []SimulationResult `json:"results"`
	Summary PortfolioSummary   `json:"summary"`
}

// SimulateRequest runs a Monte Carlo simulation over a set of scenarios
type SimulateRequest struct {
	Scenarios  []BetScenario `json:"scenarios"`
	Iterations int           `json:"iterations"`
	Seed       *int64        `json:"seed,omitempty"` // Fixed seed for reproducible runs
}
