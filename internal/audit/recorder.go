package audit

import (
	"context"
	"log/slog"

	"rosterd/internal/platform/metrics"
	id "rosterd/pkg/domain"
	"rosterd/pkg/requestcontext"
)

// Store is the persistence interface for audit entries.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	ListAll(ctx context.Context) ([]AttributedEntry, error)
}

// Recorder queues audit entries for asynchronous persistence. The append is
// decoupled from the record mutation that triggered it: Record never blocks
// and never fails the caller. If the queue is full the entry is dropped,
// logged, and counted - an audit entry may legitimately be missing for a
// successful mutation, but never the other way around.
type Recorder struct {
	inbox   chan Entry
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewRecorder creates a recorder with a bounded queue. The returned channel
// feeds a Worker.
func NewRecorder(queueSize int, logger *slog.Logger, m *metrics.Metrics) *Recorder {
	return &Recorder{
		inbox:   make(chan Entry, queueSize),
		logger:  logger,
		metrics: m,
	}
}

// Inbox exposes the queue for the persistence worker.
func (r *Recorder) Inbox() <-chan Entry {
	return r.inbox
}

// Record enqueues an entry, stamping identity and time from context when not
// already set. Best-effort: a full queue drops the entry rather than block
// the request path.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	if entry.ID.IsNil() {
		entry.ID = id.NewEntryID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = requestcontext.Now(ctx)
	}

	select {
	case r.inbox <- entry:
	default:
		if r.metrics != nil {
			r.metrics.AuditEntriesDropped.Inc()
		}
		r.logger.ErrorContext(ctx, "audit queue full, entry dropped",
			"action", entry.Action,
			"actor_id", entry.ActorID,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}
