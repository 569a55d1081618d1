package store

import (
	"context"
	"time"

	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/models"
)

// EntryFilters narrows a ledger listing
type EntryFilters struct {
	Type  string
	Since *time.Time
	Until *time.Time
	Limit int
}

// LedgerStore defines persistence for the append-only bankroll ledger.
// There is deliberately no update or delete: corrections are compensating
// entries.
type LedgerStore interface {
	Ping(ctx context.Context) error
	Append(ctx context.Context, entry *models.BankrollEntry) error
	List(ctx context.Context, filters EntryFilters) ([]models.BankrollEntry, error)
	CountEntries(ctx context.Context) (int, error)
}
