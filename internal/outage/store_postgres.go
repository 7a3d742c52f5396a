package outage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"prazo/pkg/domain"
	"prazo/pkg/platform/sentinel"
)

// PostgresStore reads the outage table fed by court unavailability notices.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed outage store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const listBetweenQuery = `
SELECT outage_date, COALESCE(state_code, ''), system_name
FROM system_outages
WHERE outage_date BETWEEN $1 AND $2
  AND (state_code IS NULL OR state_code = $3)
ORDER BY outage_date`

// ListBetween returns outages in [from, to] for the national system or state.
func (s *PostgresStore) ListBetween(ctx context.Context, from, to time.Time, state domain.StateCode) ([]Outage, error) {
	rows, err := s.db.QueryContext(ctx, listBetweenQuery, from, to, state.String())
	if err != nil {
		return nil, fmt.Errorf("list outages: %w: %w", sentinel.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []Outage
	for rows.Next() {
		var o Outage
		var stateCode string
		if err := rows.Scan(&o.Date, &stateCode, &o.System); err != nil {
			return nil, fmt.Errorf("scan outage row: %w", err)
		}
		o.State = domain.StateCode(stateCode)
		o.Date = time.Date(o.Date.Year(), o.Date.Month(), o.Date.Day(), 0, 0, 0, 0, time.UTC)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outages: %w: %w", sentinel.ErrUnavailable, err)
	}
	return out, nil
}
