package store

import (
	"context"
	"testing"
	"time"

	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/models"
)

func seedEntries(t *testing.T, m *Memory) time.Time {
	t.Helper()
	base := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	entries := []models.BankrollEntry{
		{ID: "1", Type: models.EntryDeposit, Amount: 1000, Timestamp: base},
		{ID: "2", Type: models.EntryBet, Amount: 50, Timestamp: base.Add(time.Minute)},
		{ID: "3", Type: models.EntryWin, Amount: 80, Timestamp: base.Add(2 * time.Minute)},
		{ID: "4", Type: models.EntryBet, Amount: 25, Timestamp: base.Add(3 * time.Minute)},
	}
	for i := range entries {
		if err := m.Append(context.Background(), &entries[i]); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	return base
}

func TestMemoryListOrdered(t *testing.T) {
	m := NewMemory()
	seedEntries(t, m)

	entries, err := m.List(context.Background(), EntryFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(entries) != 4 {
		t.Fatalf("len = %d, want 4", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.Before(entries[i-1].Timestamp) {
			t.Fatalf("entries not in chronological order at %d", i)
		}
	}
}

func TestMemoryListFilters(t *testing.T) {
	m := NewMemory()
	base := seedEntries(t, m)

	bets, err := m.List(context.Background(), EntryFilters{Type: "bet"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bets) != 2 {
		t.Errorf("bet entries = %d, want 2", len(bets))
	}

	since := base.Add(90 * time.Second)
	recent, err := m.List(context.Background(), EntryFilters{Since: &since})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recent) != 2 {
		t.Errorf("entries since %v = %d, want 2", since, len(recent))
	}

	limited, err := m.List(context.Background(), EntryFilters{Limit: 3})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(limited) != 3 {
		t.Errorf("limited entries = %d, want 3", len(limited))
	}
}

func TestMemoryCount(t *testing.T) {
	m := NewMemory()
	seedEntries(t, m)

	count, err := m.CountEntries(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 4 {
		t.Errorf("count = %d, want 4", count)
	}
}
