package worker

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prazo/pkg/platform/audit"
	"prazo/pkg/platform/audit/store/memory"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestWorkerDrainsUntilClose(t *testing.T) {
	store := memory.New()
	inbox := make(chan audit.Event, 4)

	worker := New(store, inbox, quietLogger())
	done := make(chan error, 1)
	go func() { done <- worker.Run(context.Background()) }()

	inbox <- audit.Event{Action: audit.ActionDeadlineComputed, DeadlineTypeID: "appeal"}
	inbox <- audit.Event{Action: audit.ActionDeadlineComputed, DeadlineTypeID: "response"}
	close(inbox)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on inbox close")
	}

	events := store.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "appeal", events[0].DeadlineTypeID)
}

func TestWorkerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	worker := New(memory.New(), make(chan audit.Event), quietLogger())

	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on cancel")
	}
}

// failingStore rejects every append, standing in for an unreachable broker.
type failingStore struct {
	mu    sync.Mutex
	calls int
}

func (f *failingStore) Append(context.Context, audit.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return errors.New("broker unreachable")
}

func (f *failingStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestWorkerSurvivesAppendFailures(t *testing.T) {
	store := &failingStore{}
	inbox := make(chan audit.Event, 2)

	worker := New(store, inbox, quietLogger())
	done := make(chan error, 1)
	go func() { done <- worker.Run(context.Background()) }()

	inbox <- audit.Event{Action: audit.ActionDeadlineComputed}
	inbox <- audit.Event{Action: audit.ActionDeadlineComputed}
	close(inbox)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on inbox close")
	}
	assert.Equal(t, 2, store.count())
}
