package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"rosterd/internal/audit"
	dErrors "rosterd/pkg/domain-errors"
	"rosterd/pkg/platform/httputil"
	"rosterd/pkg/requestcontext"
)

// Log is the read side of the audit trail.
type Log interface {
	ListAll(ctx context.Context) ([]audit.AttributedEntry, error)
}

// Handler serves the audit log listing.
type Handler struct {
	log    Log
	logger *slog.Logger
}

func New(log Log, logger *slog.Logger) *Handler {
	return &Handler{log: log, logger: logger}
}

// Register mounts the audit endpoints. Callers mount these behind the auth
// middleware.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/logs", h.handleList)
}

// LogEntryResponse is one row of GET /api/logs.
type LogEntryResponse struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Timestamp  time.Time `json:"timestamp"`
	ActorLogin string    `json:"actor_login"`
	ActorEmail string    `json:"actor_email"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.log.ListAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list audit log",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list logs"))
		return
	}

	resp := make([]LogEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, LogEntryResponse{
			ID:         entry.ID.String(),
			Action:     string(entry.Action),
			Name:       entry.Name,
			Email:      entry.Email,
			Department: entry.Department,
			Timestamp:  entry.Timestamp,
			ActorLogin: entry.ActorLogin,
			ActorEmail: entry.ActorContact,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
