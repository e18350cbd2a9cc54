package audit

import (
	"context"
	"log/slog"

	"rosterd/internal/platform/metrics"
)

// Worker drains the recorder queue and persists entries. A failed append is
// logged server-side only; the mutation it describes has already been
// reported successful to the client and must stand.
type Worker struct {
	store   Store
	inbox   <-chan Entry
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewWorker(store Store, inbox <-chan Entry, logger *slog.Logger, m *metrics.Metrics) *Worker {
	return &Worker{
		store:   store,
		inbox:   inbox,
		logger:  logger,
		metrics: m,
	}
}

// Run consumes entries until the context is cancelled. It drains whatever is
// already queued before returning so shutdown loses as little as possible.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case entry := <-w.inbox:
			w.persist(ctx, entry)
		}
	}
}

func (w *Worker) drain() {
	for {
		select {
		case entry := <-w.inbox:
			w.persist(context.Background(), entry)
		default:
			return
		}
	}
}

func (w *Worker) persist(ctx context.Context, entry Entry) {
	if err := w.store.Append(ctx, entry); err != nil {
		if w.metrics != nil {
			w.metrics.AuditEntriesDropped.Inc()
		}
		w.logger.Error("failed to persist audit entry",
			"error", err,
			"action", entry.Action,
			"actor_id", entry.ActorID,
		)
		return
	}
	if w.metrics != nil {
		w.metrics.AuditEntriesWritten.Inc()
	}
}
