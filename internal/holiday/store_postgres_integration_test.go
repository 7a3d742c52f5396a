//go:build integration

package holiday

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prazo/pkg/testutil/containers"
)

const holidaysDDL = `
CREATE TABLE holidays (
    holiday_date DATE NOT NULL,
    name         TEXT NOT NULL,
    holiday_type TEXT NOT NULL CHECK (holiday_type IN ('national', 'state')),
    state_code   CHAR(2)
)`

func TestPostgresStoreListByYear(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	pg.Exec(t, holidaysDDL,
		`INSERT INTO holidays (holiday_date, name, holiday_type, state_code) VALUES
			('2026-04-21', 'Tiradentes', 'national', NULL),
			('2026-07-09', 'Revolução Constitucionalista', 'state', 'SP'),
			('2026-11-20', 'Consciência Negra', 'state', 'RJ'),
			('2027-04-21', 'Tiradentes', 'national', NULL)`,
	)

	store := NewPostgresStore(pg.DB)
	ctx := context.Background()

	holidays, err := store.ListByYear(ctx, 2026, "SP")
	require.NoError(t, err)
	require.Len(t, holidays, 2)

	assert.Equal(t, time.Date(2026, time.April, 21, 0, 0, 0, 0, time.UTC), holidays[0].Date)
	assert.Equal(t, TypeNational, holidays[0].Type)
	assert.Equal(t, "Revolução Constitucionalista", holidays[1].Name)
	assert.Equal(t, TypeState, holidays[1].Type)

	t.Run("other state's holidays excluded", func(t *testing.T) {
		holidays, err := store.ListByYear(ctx, 2026, "MG")
		require.NoError(t, err)
		require.Len(t, holidays, 1)
		assert.Equal(t, TypeNational, holidays[0].Type)
	})

	t.Run("year filter", func(t *testing.T) {
		holidays, err := store.ListByYear(ctx, 2027, "SP")
		require.NoError(t, err)
		require.Len(t, holidays, 1)
	})
}
