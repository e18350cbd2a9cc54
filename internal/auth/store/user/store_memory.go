package user

import (
	"context"
	"strings"
	"sync"

	"rosterd/internal/auth/models"
	id "rosterd/pkg/domain"
	"rosterd/pkg/platform/sentinel"
)

// InMemoryUserStore keeps users in process memory. Used by unit tests and
// local development; the postgres store is the production implementation.
type InMemoryUserStore struct {
	mu        sync.RWMutex
	users     map[id.UserID]*models.User
	byLogin   map[string]id.UserID
	byContact map[string]id.UserID
}

func New() *InMemoryUserStore {
	return &InMemoryUserStore{
		users:     make(map[id.UserID]*models.User),
		byLogin:   make(map[string]id.UserID),
		byContact: make(map[string]id.UserID),
	}
}

// Create persists a new user, enforcing login and contact uniqueness under
// one lock so concurrent registrations cannot both succeed.
func (s *InMemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loginKey := strings.ToLower(user.Login)
	contactKey := strings.ToLower(user.Contact)
	if _, taken := s.byLogin[loginKey]; taken {
		return sentinel.ErrAlreadyUsed
	}
	if _, taken := s.byContact[contactKey]; taken {
		return sentinel.ErrAlreadyUsed
	}

	copied := *user
	s.users[user.ID] = &copied
	s.byLogin[loginKey] = user.ID
	s.byContact[contactKey] = user.ID
	return nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *InMemoryUserStore) FindByLogin(_ context.Context, login string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.byLogin[strings.ToLower(login)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *s.users[userID]
	return &copied, nil
}

// Count reports the number of stored users. Used by the seed routine.
func (s *InMemoryUserStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}
