package service

import (
	"context"
	"errors"
	"log/slog"

	"rosterd/internal/audit"
	"rosterd/internal/platform/config"
	"rosterd/internal/platform/metrics"
	"rosterd/internal/roster/models"
	id "rosterd/pkg/domain"
	dErrors "rosterd/pkg/domain-errors"
	"rosterd/pkg/platform/sentinel"
	"rosterd/pkg/requestcontext"
)

// RecordStore is the persistence interface the roster service depends on.
type RecordStore interface {
	List(ctx context.Context) ([]models.Record, error)
	Create(ctx context.Context, record *models.Record) error
	FindByID(ctx context.Context, recordID id.RecordID) (*models.Record, error)
	Update(ctx context.Context, recordID id.RecordID, fields models.Fields) (*models.Record, error)
	Delete(ctx context.Context, recordID id.RecordID) (*models.Record, error)
}

// AuditRecorder queues an audit entry for asynchronous persistence. It is
// fire-and-forget: the primary mutation has already committed when this is
// called, and an append failure never surfaces to the client.
type AuditRecorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

// Service implements the record CRUD operations. Every successful mutation
// enqueues an audit entry after the primary write commits.
type Service struct {
	records      RecordStore
	auditor      AuditRecorder
	deletePolicy config.DeletePolicy
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

func NewService(records RecordStore, auditor AuditRecorder, deletePolicy config.DeletePolicy, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		records:      records,
		auditor:      auditor,
		deletePolicy: deletePolicy,
		logger:       logger,
		metrics:      m,
	}
}

// List returns all records. Filtering and search are presentation concerns
// over the full result set; no pagination in this contract.
func (s *Service) List(ctx context.Context) ([]models.Record, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list records")
	}
	return records, nil
}

// Create validates and persists a new record attributed to the acting user,
// then enqueues an ADD audit entry.
func (s *Service) Create(ctx context.Context, name, email, department string, actor id.UserID) (*models.Record, error) {
	fields, err := models.NewFields(name, email, department)
	if err != nil {
		return nil, err
	}

	creator := actor
	record := &models.Record{
		ID:         id.NewRecordID(),
		Name:       fields.Name,
		Email:      fields.Email,
		Department: fields.Department,
		CreatorID:  &creator,
		CreatedAt:  requestcontext.Now(ctx),
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create record")
	}

	if s.metrics != nil {
		s.metrics.RecordsCreated.Inc()
	}
	s.emit(ctx, actor, record, audit.ActionAdd)
	return record, nil
}

// Update validates and persists new field values, leaving id and creator
// unchanged, then enqueues an EDIT audit entry.
func (s *Service) Update(ctx context.Context, recordID id.RecordID, name, email, department string, actor id.UserID) (*models.Record, error) {
	fields, err := models.NewFields(name, email, department)
	if err != nil {
		return nil, err
	}

	record, err := s.records.Update(ctx, recordID, fields)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "record not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update record")
	}

	if s.metrics != nil {
		s.metrics.RecordsUpdated.Inc()
	}
	s.emit(ctx, actor, record, audit.ActionEdit)
	return record, nil
}

// Delete removes a record, enforcing the configured authorization policy,
// and enqueues a DELETE audit entry carrying the record's last-known fields.
func (s *Service) Delete(ctx context.Context, recordID id.RecordID, actor id.UserID) error {
	if s.deletePolicy == config.DeleteCreatorOnly {
		record, err := s.records.FindByID(ctx, recordID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "record not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete record")
		}
		// Non-creators get the same NotFound as a missing record so the
		// response does not leak record existence.
		if record.CreatorID == nil || *record.CreatorID != actor {
			return dErrors.New(dErrors.CodeNotFound, "record not found")
		}
	}

	record, err := s.records.Delete(ctx, recordID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "record not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete record")
	}

	if s.metrics != nil {
		s.metrics.RecordsDeleted.Inc()
	}
	s.emit(ctx, actor, record, audit.ActionDelete)
	return nil
}

// emit queues the audit entry for a committed mutation. The snapshot carries
// the record's field values at mutation time; for deletes that is the
// last-known state captured before the row vanished.
func (s *Service) emit(ctx context.Context, actor id.UserID, record *models.Record, action audit.Action) {
	if s.auditor == nil {
		return
	}
	s.auditor.Record(ctx, audit.Entry{
		ActorID:    actor,
		Name:       record.Name,
		Email:      record.Email,
		Department: string(record.Department),
		Action:     action,
		Timestamp:  requestcontext.Now(ctx),
	})
}
