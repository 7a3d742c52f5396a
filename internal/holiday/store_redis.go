package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"prazo/pkg/domain"
)

const holidayKeyPrefix = "prazo:holidays:"

// RedisStore is a read-through cache in front of another holiday store,
// sharing `(year, state)` snapshots across instances. It is an optimization
// layer: a Redis failure falls back to the inner store, never to an empty
// calendar.
type RedisStore struct {
	client *redis.Client
	inner  Store
	ttl    time.Duration
}

// NewRedisStore wraps inner with a Redis snapshot cache.
func NewRedisStore(client *redis.Client, inner Store, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, inner: inner, ttl: ttl}
}

// snapshotEntry is the JSON wire shape of one cached holiday.
type snapshotEntry struct {
	Date  string `json:"date"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	State string `json:"state,omitempty"`
}

func cacheKey(year int, state domain.StateCode) string {
	return fmt.Sprintf("%s%d:%s", holidayKeyPrefix, year, state)
}

// ListByYear serves the cached snapshot when present, otherwise reads through
// to the inner store and caches the result with TTL.
func (s *RedisStore) ListByYear(ctx context.Context, year int, state domain.StateCode) ([]Holiday, error) {
	key := cacheKey(year, state)

	raw, err := s.client.Get(ctx, key).Bytes()
	if err == nil {
		if holidays, decodeErr := decodeSnapshot(raw); decodeErr == nil {
			return holidays, nil
		}
		// Corrupt entry: fall through to the inner store and overwrite.
	} else if !errors.Is(err, redis.Nil) && ctx.Err() != nil {
		// The caller's deadline expired while talking to Redis; give the
		// inner store no chance to hang on a dead context.
		return nil, ctx.Err()
	}

	holidays, err := s.inner.ListByYear(ctx, year, state)
	if err != nil {
		return nil, err
	}

	if raw, encodeErr := encodeSnapshot(holidays); encodeErr == nil {
		// Best effort: a failed cache write must not fail the computation.
		_ = s.client.Set(ctx, key, raw, s.ttl).Err()
	}
	return holidays, nil
}

func encodeSnapshot(holidays []Holiday) ([]byte, error) {
	entries := make([]snapshotEntry, 0, len(holidays))
	for _, h := range holidays {
		entries = append(entries, snapshotEntry{
			Date:  h.Date.Format(time.DateOnly),
			Name:  h.Name,
			Type:  string(h.Type),
			State: h.State.String(),
		})
	}
	return json.Marshal(entries)
}

func decodeSnapshot(raw []byte) ([]Holiday, error) {
	var entries []snapshotEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	holidays := make([]Holiday, 0, len(entries))
	for _, e := range entries {
		d, err := time.Parse(time.DateOnly, e.Date)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, Holiday{
			Date:  Day(d),
			Name:  e.Name,
			Type:  Type(e.Type),
			State: domain.StateCode(e.State),
		})
	}
	return holidays, nil
}
