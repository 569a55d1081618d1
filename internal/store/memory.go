package store

import (
	"context"
	"sort"
	"sync"

	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/models"
)

// Memory implements LedgerStore in process memory. Used by tests and for
// DB-less development runs; entries do not survive a restart.
type Memory struct {
	mu      sync.RWMutex
	entries []models.BankrollEntry
}

// NewMemory creates an empty in-memory ledger store
func NewMemory() *Memory {
	return &Memory{}
}

// Ping always succeeds
func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

// Append stores a copy of the entry
func (m *Memory) Append(ctx context.Context, entry *models.BankrollEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

// List returns entries matching the filters, oldest first
func (m *Memory) List(ctx context.Context, filters EntryFilters) ([]models.BankrollEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]models.BankrollEntry, 0, len(m.entries))
	for _, e := range m.entries {
		if filters.Type != "" && string(e.Type) != filters.Type {
			continue
		}
		if filters.Since != nil && e.Timestamp.Before(*filters.Since) {
			continue
		}
		if filters.Until != nil && e.Timestamp.After(*filters.Until) {
			continue
		}
		matched = append(matched, e)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.Before(matched[j].Timestamp)
	})

	if filters.Limit > 0 && len(matched) > filters.Limit {
		matched = matched[:filters.Limit]
	}

	return matched, nil
}

// CountEntries returns the total number of ledger entries
func (m *Memory) CountEntries(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}
