package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/models"
)

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   models.BankrollEntry
		wantErr error
	}{
		{"valid deposit", models.BankrollEntry{Type: models.EntryDeposit, Amount: 100}, nil},
		{"valid fee", models.BankrollEntry{Type: models.EntryFee, Amount: 2.50}, nil},
		{"zero amount", models.BankrollEntry{Type: models.EntryBet, Amount: 0}, ErrInvalidAmount},
		{"negative amount", models.BankrollEntry{Type: models.EntryWin, Amount: -10}, ErrInvalidAmount},
		{"unknown type", models.BankrollEntry{Type: "refund", Amount: 10}, ErrInvalidType},
		{"empty type", models.BankrollEntry{Amount: 10}, ErrInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntry(&tt.entry)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateEntry error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPrepareFillsIdentity(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	e := models.BankrollEntry{Type: models.EntryDeposit, Amount: 100}
	if err := Prepare(&e, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if e.ID == "" {
		t.Error("Prepare did not mint an ID")
	}
	if !e.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", e.Timestamp, now)
	}
}

func TestPreparePreservesProvidedFields(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	provided := now.Add(-time.Hour)

	e := models.BankrollEntry{
		ID:        "entry-7",
		Type:      models.EntryWin,
		Amount:    80,
		Timestamp: provided,
	}
	if err := Prepare(&e, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if e.ID != "entry-7" {
		t.Errorf("ID = %q, want entry-7", e.ID)
	}
	if !e.Timestamp.Equal(provided) {
		t.Errorf("Timestamp = %v, want %v", e.Timestamp, provided)
	}
}
