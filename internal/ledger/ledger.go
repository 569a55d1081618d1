package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/models"
	"github.com/google/uuid"
)

// Entry validation errors
var (
	// ErrInvalidAmount rejects non-positive amounts. Direction is implied by
	// the entry type, never stored as a negative number.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidType rejects unknown entry types.
	ErrInvalidType = errors.New("unknown entry type")
)

var validTypes = map[models.EntryType]bool{
	models.EntryDeposit:    true,
	models.EntryWithdrawal: true,
	models.EntryBet:        true,
	models.EntryWin:        true,
	models.EntryLoss:       true,
	models.EntryBonus:      true,
	models.EntryFee:        true,
}

// ValidateEntry checks an entry before it is appended to the ledger
func ValidateEntry(entry *models.BankrollEntry) error {
	if !validTypes[entry.Type] {
		return fmt.Errorf("%w: %q", ErrInvalidType, entry.Type)
	}
	if entry.Amount <= 0 {
		return fmt.Errorf("%w: got %.2f", ErrInvalidAmount, entry.Amount)
	}
	return nil
}

// Prepare validates an entry and fills in its identity and timestamp when
// absent. The ledger is append-only: entries are never mutated after this
// point, and a correction is a new compensating entry.
func Prepare(entry *models.BankrollEntry, now time.Time) error {
	if err := ValidateEntry(entry); err != nil {
		return err
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = now
	}
	return nil
}
