//go:build integration

package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prazo/pkg/platform/sentinel"
	"prazo/pkg/testutil/containers"
)

const deadlineTypesDDL = `
CREATE TABLE deadline_types (
    id                  TEXT PRIMARY KEY,
    description         TEXT NOT NULL,
    legal_basis         TEXT NOT NULL,
    base_duration       INTEGER NOT NULL,
    counting_mode       TEXT NOT NULL,
    start_method        TEXT NOT NULL,
    doubling_eligible   BOOLEAN NOT NULL DEFAULT FALSE,
    colitigant_eligible BOOLEAN NOT NULL DEFAULT FALSE,
    recess_sensitive    BOOLEAN NOT NULL DEFAULT FALSE,
    interruptible       BOOLEAN NOT NULL DEFAULT FALSE,
    allow_compounding   BOOLEAN NOT NULL DEFAULT FALSE
)`

func TestPostgresStore(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	pg.Exec(t, deadlineTypesDDL,
		`INSERT INTO deadline_types
			(id, description, legal_basis, base_duration, counting_mode, start_method,
			 doubling_eligible, colitigant_eligible, recess_sensitive, interruptible)
		 VALUES
			('appeal', 'Apelação', 'CPC art. 1003 §5', 15, 'business_days', 'next_day', TRUE, TRUE, TRUE, TRUE),
			('injunction_compliance', 'Cumprimento de liminar', 'decisão judicial', 5, 'calendar_days', 'same_day', FALSE, FALSE, FALSE, FALSE)`,
	)

	store := NewPostgresStore(pg.DB)
	ctx := context.Background()

	t.Run("get", func(t *testing.T) {
		entry, err := store.Get(ctx, "appeal")
		require.NoError(t, err)
		assert.Equal(t, 15, entry.BaseDuration)
		assert.Equal(t, CountBusinessDays, entry.CountingMode)
		assert.Equal(t, StartNextDay, entry.StartMethod)
		assert.True(t, entry.DoublingEligible)
	})

	t.Run("get unknown", func(t *testing.T) {
		_, err := store.Get(ctx, "habeas_data")
		require.Error(t, err)
		assert.True(t, errors.Is(err, sentinel.ErrNotFound))
	})

	t.Run("list", func(t *testing.T) {
		entries, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "appeal", entries[0].ID)
	})
}
