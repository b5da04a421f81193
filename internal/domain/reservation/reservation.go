package reservation

import (
	"context"
	"errors"
	"fmt"

	"staybook/internal/domain/calendar"
)

var (
	ErrPropertyNotFound = errors.New("reservation: property not found")
	// ErrCorruptReservation marks a reservation whose stored range violates
	// the check-in < check-out invariant. Data carrying it must not be
	// trusted, even partially.
	ErrCorruptReservation = errors.New("reservation: invalid date range")
)

// Reservation is an accepted booking held against one property. Immutable
// once created; the rest of the system only ever reads fresh snapshots.
type Reservation struct {
	ID         string
	PropertyID string
	GuestID    string
	Range      calendar.Range
}

func New(id, propertyID, guestID string, r calendar.Range) (Reservation, error) {
	if err := r.Validate(); err != nil {
		return Reservation{}, fmt.Errorf("%w: %v", ErrCorruptReservation, err)
	}
	return Reservation{ID: id, PropertyID: propertyID, GuestID: guestID, Range: r}, nil
}

// Store is the persistence port for reservations.
type Store interface {
	ByProperty(ctx context.Context, propertyID string) ([]Reservation, error)
	Save(ctx context.Context, r Reservation) error
}
