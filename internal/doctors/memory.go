package doctors

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore implements Store with a map, for tests and local runs.
type InMemoryStore struct {
	mu   sync.RWMutex
	byID map[string]*Doctor
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates an empty in-memory doctor store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byID: make(map[string]*Doctor)}
}

func (s *InMemoryStore) Create(ctx context.Context, req *CreateRequest) (*Doctor, error) {
	doctor := &Doctor{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Specialty: req.Specialty,
		Image:     req.Image,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.mu.Lock()
	s.byID[doctor.ID] = doctor
	s.mu.Unlock()

	copied := *doctor
	return &copied, nil
}

func (s *InMemoryStore) List(ctx context.Context) ([]Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Doctor, 0, len(s.byID))
	for _, d := range s.byID {
		list = append(list, *d)
	}
	return list, nil
}

func (s *InMemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}
