package bookings

import (
	"context"
	"sync"
)

// InMemoryStore implements Store with a map, for tests and local runs
// without DynamoDB. Uniqueness is keyed the same way as the real table.
type InMemoryStore struct {
	mu    sync.RWMutex
	byKey map[string]*Booking
	byID  map[string]string // id -> conflict key
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates an empty in-memory booking store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byKey: make(map[string]*Booking),
		byID:  make(map[string]string),
	}
}

// Create inserts the booking unless its conflict key is already present.
func (s *InMemoryStore) Create(ctx context.Context, booking *Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byKey[booking.ConflictKey]; exists {
		return ErrDuplicateBooking
	}
	copied := *booking
	s.byKey[booking.ConflictKey] = &copied
	s.byID[booking.ID] = booking.ConflictKey
	return nil
}

// GetByID fetches one booking by identifier.
func (s *InMemoryStore) GetByID(ctx context.Context, id string) (*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s.byKey[key]
	return &copied, nil
}

// ListByEmail returns every booking whose email matches.
func (s *InMemoryStore) ListByEmail(ctx context.Context, email string) ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []Booking
	for _, b := range s.byKey {
		if b.Email == email {
			list = append(list, *b)
		}
	}
	return list, nil
}

// TakenSlots groups booked slots by treatment for one date.
func (s *InMemoryStore) TakenSlots(ctx context.Context, date string) (map[string][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	taken := make(map[string][]string)
	for _, b := range s.byKey {
		if b.AppointmentDate == date {
			taken[b.TreatmentName] = append(taken[b.TreatmentName], b.Slot)
		}
	}
	return taken, nil
}

// AttachPayment marks a booking paid.
func (s *InMemoryStore) AttachPayment(ctx context.Context, id, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	s.byKey[key].PaymentStatus = PaymentStatusPaid
	s.byKey[key].TransactionID = transactionID
	return nil
}
