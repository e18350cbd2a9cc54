package record

import (
	"context"
	"sort"
	"sync"

	"rosterd/internal/roster/models"
	id "rosterd/pkg/domain"
	"rosterd/pkg/platform/sentinel"
)

// InMemoryRecordStore keeps records in process memory for unit tests and
// local development.
type InMemoryRecordStore struct {
	mu      sync.RWMutex
	records map[id.RecordID]*models.Record
}

func New() *InMemoryRecordStore {
	return &InMemoryRecordStore{records: make(map[id.RecordID]*models.Record)}
}

// List returns all records ordered by creation time ascending so listings
// are stable across calls.
func (s *InMemoryRecordStore) List(_ context.Context) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.Record, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, *r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID.String() < records[j].ID.String()
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (s *InMemoryRecordStore) Create(_ context.Context, record *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *record
	s.records[record.ID] = &copied
	return nil
}

func (s *InMemoryRecordStore) FindByID(_ context.Context, recordID id.RecordID) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[recordID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

// Update replaces the mutable fields of an existing record, leaving id,
// creator, and created_at untouched.
func (s *InMemoryRecordStore) Update(_ context.Context, recordID id.RecordID, fields models.Fields) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[recordID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	record.Name = fields.Name
	record.Email = fields.Email
	record.Department = fields.Department
	copied := *record
	return &copied, nil
}

// Delete removes a record, returning its last-known state so callers can
// snapshot it for the audit trail.
func (s *InMemoryRecordStore) Delete(_ context.Context, recordID id.RecordID) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[recordID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	delete(s.records, recordID)
	copied := *record
	return &copied, nil
}
