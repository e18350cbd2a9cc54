package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rosterd/internal/roster/models"
	id "rosterd/pkg/domain"
	dErrors "rosterd/pkg/domain-errors"
	"rosterd/pkg/platform/httputil"
	"rosterd/pkg/requestcontext"
)

// RosterService is the record CRUD façade the handler delegates to.
type RosterService interface {
	List(ctx context.Context) ([]models.Record, error)
	Create(ctx context.Context, name, email, department string, actor id.UserID) (*models.Record, error)
	Update(ctx context.Context, recordID id.RecordID, name, email, department string, actor id.UserID) (*models.Record, error)
	Delete(ctx context.Context, recordID id.RecordID, actor id.UserID) error
}

// Handler wires the record endpoints to the roster service. All routes are
// mounted behind the auth middleware; the acting user always comes from the
// request context.
type Handler struct {
	service RosterService
	logger  *slog.Logger
}

func New(service RosterService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the record endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/records", h.handleList)
	r.Post("/api/records", h.handleCreate)
	r.Put("/api/records/{id}", h.handleUpdate)
	r.Delete("/api/records/{id}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.service.List(ctx)
	if err != nil {
		h.logError(ctx, "failed to list records", err)
		httputil.WriteError(w, err)
		return
	}
	// Always an array, never null, so clients can iterate unconditionally.
	if records == nil {
		records = []models.Record{}
	}
	httputil.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := h.requireActor(ctx, w)
	if !ok {
		return
	}

	var req RecordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.Create(ctx, req.Name, req.Email, req.Department, actor)
	if err != nil {
		h.logError(ctx, "failed to create record", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := h.requireActor(ctx, w)
	if !ok {
		return
	}

	recordID, err := id.ParseRecordID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "record not found"))
		return
	}

	var req RecordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.Update(ctx, recordID, req.Name, req.Email, req.Department, actor)
	if err != nil {
		h.logError(ctx, "failed to update record", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := h.requireActor(ctx, w)
	if !ok {
		return
	}

	recordID, err := id.ParseRecordID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "record not found"))
		return
	}

	if err := h.service.Delete(ctx, recordID, actor); err != nil {
		h.logError(ctx, "failed to delete record", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireActor pulls the authenticated identity the auth middleware injected.
func (h *Handler) requireActor(ctx context.Context, w http.ResponseWriter) (id.UserID, bool) {
	actor := requestcontext.UserID(ctx)
	if actor.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return id.UserID{}, false
	}
	return actor, true
}

// logError keeps handler noise down: only server faults are logged as
// errors, client-correctable failures stay at warn.
func (h *Handler) logError(ctx context.Context, msg string, err error) {
	requestID := requestcontext.RequestID(ctx)
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg, "request_id", requestID, "error", err)
		return
	}
	h.logger.WarnContext(ctx, msg, "request_id", requestID, "error", err)
}
