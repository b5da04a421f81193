// Package bookings holds the server-side use cases of the booking store:
// serving reservation snapshots and accepting new bookings. The same
// validator the client runs is the authoritative gate here, so the two
// sides can only ever disagree on staleness, never on rules.
package bookings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/calendar"
	"staybook/internal/domain/reservation"
)

// RejectionError carries the single validator reason a booking request
// failed with. It is the transport-facing form of a rejected Result.
type RejectionError struct {
	Reason booking.Reason
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("bookings: rejected (%s)", e.Reason)
}

// EventSink receives accepted reservations for broadcast. Failures are
// logged, never surfaced to the guest.
type EventSink interface {
	ReservationCreated(ctx context.Context, r reservation.Reservation) error
}

type Service struct {
	Store  reservation.Store
	Rules  booking.StayRules
	Events EventSink
	Logger *slog.Logger
	Now    func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Snapshot returns the current reservations for a property.
func (s *Service) Snapshot(ctx context.Context, propertyID string) ([]reservation.Reservation, error) {
	return s.Store.ByProperty(ctx, propertyID)
}

// Create validates a stay against the live snapshot and persists it.
// A validation failure comes back as *RejectionError; anything else is an
// infrastructure fault.
func (s *Service) Create(ctx context.Context, guestID, propertyID string, stay booking.StayRequest) (reservation.Reservation, error) {
	existing, err := s.Store.ByProperty(ctx, propertyID)
	if err != nil {
		return reservation.Reservation{}, err
	}
	index, err := reservation.BuildDaySet(existing)
	if err != nil {
		return reservation.Reservation{}, err
	}
	today := calendar.DateOf(s.now())
	if result := booking.Validate(stay, today, index, s.Rules); !result.Accepted() {
		return reservation.Reservation{}, &RejectionError{Reason: result.Reason}
	}

	res, err := reservation.New(uuid.NewString(), propertyID, guestID, stay.Range())
	if err != nil {
		return reservation.Reservation{}, err
	}
	if err := s.Store.Save(ctx, res); err != nil {
		return reservation.Reservation{}, err
	}
	if s.Events != nil {
		if err := s.Events.ReservationCreated(ctx, res); err != nil && s.Logger != nil {
			s.Logger.Warn("reservation event publish failed", "reservation_id", res.ID, "error", err)
		}
	}
	return res, nil
}
