package worker

import (
	"context"
	"log/slog"

	"prazo/pkg/platform/audit"
)

// Worker drains audit events from a channel and persists them, keeping event
// publication off the computation path. A full inbox drops events rather than
// blocking a computation; the drop is logged.
type Worker struct {
	publisher *audit.Publisher
	inbox     <-chan audit.Event
	logger    *slog.Logger
}

func New(store audit.Store, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	return &Worker{
		publisher: audit.NewPublisher(store),
		inbox:     inbox,
		logger:    logger,
	}
}

// Run consumes until ctx is canceled or the inbox is closed. Append failures
// are logged and skipped; audit publishing must never take the engine down.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.publisher.Emit(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit append failed",
					"action", event.Action,
					"event_id", event.ID,
					"error", err,
				)
			}
		}
	}
}
