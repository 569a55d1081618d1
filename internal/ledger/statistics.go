package ledger

import (
	"sort"
	"time"

	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/models"
)

// ComputeStatistics derives the full statistics view from the entry
// sequence. It is a pure function of (entries, initialBalance, now): no
// hidden state, same inputs always produce the same output. Recomputed in
// full on every change; O(n log n) from the streak sort, which is fine at
// human-scale ledger sizes.
//
// Balance and profit formulas:
//
//	balance   = initial + deposits - withdrawals + wins - losses - bets + bonuses - fees
//	netProfit = wins - losses - bets
//	roi%      = netProfit / totalDeposits * 100   (0 when no deposits)
//	winRate%  = winEntries / betEntries * 100     (0 when no bets)
//
// Bonuses and fees move the balance but stay out of netProfit, so promo
// credit does not inflate betting performance.
func ComputeStatistics(entries []models.BankrollEntry, initialBalance float64, now time.Time) models.BankrollStatistics {
	stats := models.BankrollStatistics{
		CurrentBalance: initialBalance,
		EntryCount:     len(entries),
	}

	var (
		totalWins, totalLosses, totalBets float64
		betCount, winCount                int
	)

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := now.Add(-7 * 24 * time.Hour)
	monthStart := now.Add(-30 * 24 * time.Hour)

	for _, e := range entries {
		switch e.Type {
		case models.EntryDeposit:
			stats.TotalDeposits += e.Amount
			stats.CurrentBalance += e.Amount
		case models.EntryWithdrawal:
			stats.TotalWithdrawals += e.Amount
			stats.CurrentBalance -= e.Amount
		case models.EntryBet:
			totalBets += e.Amount
			betCount++
			stats.CurrentBalance -= e.Amount
		case models.EntryWin:
			totalWins += e.Amount
			winCount++
			stats.CurrentBalance += e.Amount
			if e.Amount > stats.LargestWin {
				stats.LargestWin = e.Amount
			}
		case models.EntryLoss:
			totalLosses += e.Amount
			stats.CurrentBalance -= e.Amount
			if e.Amount > stats.LargestLoss {
				stats.LargestLoss = e.Amount
			}
		case models.EntryBonus:
			stats.CurrentBalance += e.Amount
		case models.EntryFee:
			stats.CurrentBalance -= e.Amount
		}

		// Windowed profit: wins minus losses inside each trailing window
		if e.Type == models.EntryWin || e.Type == models.EntryLoss {
			delta := e.Amount
			if e.Type == models.EntryLoss {
				delta = -e.Amount
			}
			if !e.Timestamp.Before(dayStart) && !e.Timestamp.After(now) {
				stats.ProfitToday += delta
			}
			if !e.Timestamp.Before(weekStart) && !e.Timestamp.After(now) {
				stats.ProfitThisWeek += delta
			}
			if !e.Timestamp.Before(monthStart) && !e.Timestamp.After(now) {
				stats.ProfitThisMonth += delta
			}
		}
	}

	stats.TotalWagered = totalBets
	stats.NetProfit = totalWins - totalLosses - totalBets

	if stats.TotalDeposits > 0 {
		stats.ROI = stats.NetProfit / stats.TotalDeposits * 100.0
	}
	if betCount > 0 {
		stats.WinRate = float64(winCount) / float64(betCount) * 100.0
		stats.AverageBetSize = totalBets / float64(betCount)
	}

	stats.CurrentStreak, stats.LongestWinStreak, stats.LongestLossStreak = computeStreaks(entries)

	return stats
}

// computeStreaks scans win/loss entries in chronological order. The sort is
// stable so entries with tied timestamps keep insertion order.
func computeStreaks(entries []models.BankrollEntry) (current, longestWin, longestLoss int) {
	outcomes := make([]models.BankrollEntry, 0, len(entries))
	for _, e := range entries {
		if e.Type == models.EntryWin || e.Type == models.EntryLoss {
			outcomes = append(outcomes, e)
		}
	}

	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].Timestamp.Before(outcomes[j].Timestamp)
	})

	var winRun, lossRun int
	for _, e := range outcomes {
		if e.Type == models.EntryWin {
			winRun++
			lossRun = 0
			if winRun > longestWin {
				longestWin = winRun
			}
			current = winRun
		} else {
			lossRun++
			winRun = 0
			if lossRun > longestLoss {
				longestLoss = lossRun
			}
			current = -lossRun
		}
	}

	return current, longestWin, longestLoss
}
