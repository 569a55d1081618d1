package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/XavierBriggs/fortuna/services/bet-analytics/pkg/models"
	"github.com/lib/pq"
)

// Postgres implements LedgerStore for PostgreSQL
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a pooled connection to the ledger database
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &Postgres{db: db}, nil
}

// Ping checks database connectivity
func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close closes the underlying connection pool
func (p *Postgres) Close() error {
	return p.db.Close()
}

// Append inserts one ledger entry
func (p *Postgres) Append(ctx context.Context, entry *models.BankrollEntry) error {
	query := `
		INSERT INTO bankroll_entries (
			id, entry_type, amount, description, category, tags, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := p.db.ExecContext(
		ctx, query,
		entry.ID,
		string(entry.Type),
		entry.Amount,
		entry.Description,
		entry.Category,
		pq.Array(entry.Tags),
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}

	return nil
}

// List returns entries matching the filters, oldest first
func (p *Postgres) List(ctx context.Context, filters EntryFilters) ([]models.BankrollEntry, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if filters.Type != "" {
		args = append(args, filters.Type)
		conditions = append(conditions, "entry_type = $"+strconv.Itoa(len(args)))
	}
	if filters.Since != nil {
		args = append(args, *filters.Since)
		conditions = append(conditions, "created_at >= $"+strconv.Itoa(len(args)))
	}
	if filters.Until != nil {
		args = append(args, *filters.Until)
		conditions = append(conditions, "created_at <= $"+strconv.Itoa(len(args)))
	}

	query := `
		SELECT id, entry_type, amount, description, category, tags, created_at
		FROM bankroll_entries
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at ASC, id ASC"
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []models.BankrollEntry
	for rows.Next() {
		var (
			e         models.BankrollEntry
			entryType string
		)
		if err := rows.Scan(
			&e.ID,
			&entryType,
			&e.Amount,
			&e.Description,
			&e.Category,
			pq.Array(&e.Tags),
			&e.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Type = models.EntryType(entryType)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

// CountEntries returns the total number of ledger entries
func (p *Postgres) CountEntries(ctx context.Context) (int, error) {
	var count int
	err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bankroll_entries`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}
