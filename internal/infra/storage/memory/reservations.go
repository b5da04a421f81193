package memory

import (
	"context"
	"sort"
	"sync"

	"staybook/internal/domain/reservation"
)

// ReservationStore is an in-memory reservation.Store for development and
// tests. The booking store is the sole writer of reservation records, so
// a coarse RWMutex over a per-property map is enough.
type ReservationStore struct {
	mu    sync.RWMutex
	items map[string][]reservation.Reservation
}

// NewReservationStore builds an empty store.
func NewReservationStore() *ReservationStore {
	return &ReservationStore{items: make(map[string][]reservation.Reservation)}
}

// ByProperty returns the reservation snapshot for a property, sorted by
// check-in for stable output. Unknown properties yield an empty snapshot.
func (s *ReservationStore) ByProperty(ctx context.Context, propertyID string) ([]reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.items[propertyID]
	out := make([]reservation.Reservation, len(stored))
	copy(out, stored)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Range.CheckIn.Before(out[j].Range.CheckIn)
	})
	return out, nil
}

// Save appends an accepted reservation.
func (s *ReservationStore) Save(ctx context.Context, r reservation.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[r.PropertyID] = append(s.items[r.PropertyID], r)
	return nil
}

var _ reservation.Store = (*ReservationStore)(nil)
