package store

import (
	"context"
	"sync"

	"github.com/lasse00042-cmyk/HandUp/models"
)

// MemoryStore keeps user records in memory. It deep-copies on both load and
// save so callers observe the same detachment semantics as a real database.
// Used by tests and available as a throwaway backend.
type MemoryStore struct {
	mu    sync.Mutex
	users []*models.User

	// LoadErr and SaveErr, when set, are returned by the respective calls.
	LoadErr error
	SaveErr error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadAll(ctx context.Context) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	out := make([]*models.User, len(s.users))
	for i, u := range s.users {
		out[i] = u.Clone()
	}
	return out, nil
}

func (s *MemoryStore) SaveAll(ctx context.Context, users []*models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.users = make([]*models.User, len(users))
	for i, u := range users {
		s.users[i] = u.Clone()
	}
	return nil
}
