package holiday

import (
	"context"
	"database/sql"
	"fmt"

	"prazo/pkg/domain"
	"prazo/pkg/platform/sentinel"
)

// PostgresStore reads the holiday table maintained by the back office.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed holiday store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const listByYearQuery = `
SELECT holiday_date, name, holiday_type, COALESCE(state_code, '')
FROM holidays
WHERE EXTRACT(YEAR FROM holiday_date) = $1
  AND (holiday_type = 'national' OR state_code = $2)
ORDER BY holiday_date`

// ListByYear returns national holidays for the year plus state holidays for
// state. Connection failures and timeouts surface as ErrUnavailable so the
// oracle fails closed.
func (s *PostgresStore) ListByYear(ctx context.Context, year int, state domain.StateCode) ([]Holiday, error) {
	rows, err := s.db.QueryContext(ctx, listByYearQuery, year, state.String())
	if err != nil {
		return nil, unavailable("list holidays", err)
	}
	defer rows.Close()

	var out []Holiday
	for rows.Next() {
		var h Holiday
		var typ, stateCode string
		if err := rows.Scan(&h.Date, &h.Name, &typ, &stateCode); err != nil {
			return nil, fmt.Errorf("scan holiday row: %w", err)
		}
		h.Type = Type(typ)
		h.State = domain.StateCode(stateCode)
		h.Date = Day(h.Date)
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate holidays", err)
	}
	return out, nil
}

// unavailable wraps any query failure (including context timeout) as
// ErrUnavailable. A holiday read that fails for any reason must not be
// mistaken for an empty calendar.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
}
