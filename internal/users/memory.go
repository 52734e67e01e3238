package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore implements Store with a map, for tests and local runs.
type InMemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]*User
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates an empty in-memory user store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byEmail: make(map[string]*User)}
}

func (s *InMemoryStore) Create(ctx context.Context, req *CreateRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, ErrEmailTaken
	}
	user := &User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      req.Name,
		Role:      RolePatient,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.byEmail[email] = user
	copied := *user
	return &copied, nil
}

func (s *InMemoryStore) List(ctx context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]User, 0, len(s.byEmail))
	for _, u := range s.byEmail {
		list = append(list, *u)
	}
	return list, nil
}

func (s *InMemoryStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *InMemoryStore) GrantAdmin(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.byEmail {
		if u.ID == id {
			u.Role = RoleAdmin
			return nil
		}
	}
	return ErrNotFound
}

func (s *InMemoryStore) Exists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	if err == ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (s *InMemoryStore) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.GetByEmail(ctx, email)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.Role == RoleAdmin, nil
}
