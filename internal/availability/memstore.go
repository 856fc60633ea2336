package availability

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
)

// MemoryStore é um SlotStore em memória: o stub do calendário externo
// para testes e para rodar o core sem banco.
type MemoryStore struct {
	mu     sync.Mutex
	claims map[uint][]domain.Claim
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{claims: make(map[uint][]domain.Claim)}
}

func (s *MemoryStore) Blocked(
	ctx context.Context,
	staffID uint,
	from time.Time,
	to time.Time,
) ([]domain.Claim, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	window := domain.Interval{Start: from, End: to}

	var out []domain.Claim
	for _, claim := range s.claims[staffID] {
		if claim.Overlaps(window) {
			out = append(out, claim)
		}
	}
	return out, nil
}

func (s *MemoryStore) Claim(
	ctx context.Context,
	staffID uint,
	slot domain.Interval,
	appointmentID string,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.claims[staffID] {
		if existing.Overlaps(slot) {
			return domain.ErrSlotConflict
		}
	}

	s.claims[staffID] = append(s.claims[staffID], domain.Claim{
		Interval:      slot,
		AppointmentID: appointmentID,
	})
	return nil
}

func (s *MemoryStore) Release(
	ctx context.Context,
	staffID uint,
	slot domain.Interval,
) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	claims := s.claims[staffID]
	kept := claims[:0]
	for _, claim := range claims {
		if !claim.Interval.Equal(slot) {
			kept = append(kept, claim)
		}
	}
	s.claims[staffID] = kept
	return nil
}
