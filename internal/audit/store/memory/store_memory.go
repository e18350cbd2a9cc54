package memory

import (
	"context"
	"sort"
	"sync"

	"rosterd/internal/audit"
)

// InMemoryStore keeps audit entries in process memory for tests and local
// development. Attribution is resolved through the injected directory at
// list time, mirroring the SQL join of the postgres store.
type InMemoryStore struct {
	mu        sync.RWMutex
	entries   []audit.Entry
	directory audit.Directory
}

func NewInMemoryStore(directory audit.Directory) *InMemoryStore {
	return &InMemoryStore{directory: directory}
}

func (s *InMemoryStore) Append(_ context.Context, entry audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// ListAll returns all entries, newest first, joined with actor identity.
// Actors the directory cannot resolve keep empty attribution fields rather
// than failing the listing.
func (s *InMemoryStore) ListAll(ctx context.Context) ([]audit.AttributedEntry, error) {
	s.mu.RLock()
	entries := append([]audit.Entry{}, s.entries...)
	s.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	attributed := make([]audit.AttributedEntry, 0, len(entries))
	for _, entry := range entries {
		ae := audit.AttributedEntry{Entry: entry}
		if s.directory != nil {
			if login, contact, err := s.directory.LookupActor(ctx, entry.ActorID); err == nil {
				ae.ActorLogin = login
				ae.ActorContact = contact
			}
		}
		attributed = append(attributed, ae)
	}
	return attributed, nil
}

// Len reports the number of stored entries. Test helper.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
