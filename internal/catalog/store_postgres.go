package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"prazo/pkg/platform/sentinel"
)

// PostgresStore reads deadline-type definitions from the catalog table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed catalog store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const entryColumns = `id, description, legal_basis, base_duration, counting_mode, start_method,
doubling_eligible, colitigant_eligible, recess_sensitive, interruptible, allow_compounding`

// Get returns the entry for a deadline type ID.
func (s *PostgresStore) Get(ctx context.Context, deadlineTypeID string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM deadline_types WHERE id = $1`, deadlineTypeID)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("catalog entry %s: %w", deadlineTypeID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("get catalog entry: %w: %w", sentinel.ErrUnavailable, err)
	}
	return entry, nil
}

// List returns every entry ordered by ID.
func (s *PostgresStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM deadline_types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list catalog entries: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catalog entry: %w", err)
		}
		out = append(out, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog entries: %w: %w", sentinel.ErrUnavailable, err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var e Entry
	var mode, method string
	if err := row.Scan(
		&e.ID, &e.Description, &e.LegalBasis, &e.BaseDuration, &mode, &method,
		&e.DoublingEligible, &e.ColitigantEligible, &e.RecessSensitive,
		&e.Interruptible, &e.AllowCompounding,
	); err != nil {
		return nil, err
	}
	e.CountingMode = CountingMode(mode)
	e.StartMethod = StartMethod(method)
	return &e, nil
}
