package policies

import (
	"context"
	"errors"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/reservation"
)

// Boundary outcomes from the external booking store. The selector and its
// callers branch on these with errors.Is; anything else is unexpected.
var (
	// ErrUnauthenticated means the credential was missing or expired.
	// Callers should route to re-authentication, not show a booking error.
	ErrUnauthenticated = errors.New("bookingstore: unauthenticated")
	// ErrConflict means the store detected an overlap the client missed,
	// e.g. another guest booked between our fetch and our submission.
	ErrConflict = errors.New("bookingstore: dates no longer available")
	// ErrTransient covers network failures and 5xx responses. Resubmitting
	// the same request unchanged is safe.
	ErrTransient = errors.New("bookingstore: temporary failure")
	// ErrMalformedResponse means the store returned data violating the
	// reservation invariant. None of the payload may be trusted.
	ErrMalformedResponse = errors.New("bookingstore: malformed response")
)

// BookingStore is the outbound port to the authoritative booking service.
type BookingStore interface {
	// Reservations fetches the current snapshot for a property.
	Reservations(ctx context.Context, cred Credential, propertyID string) ([]reservation.Reservation, error)
	// CreateBooking submits a validated stay and returns the new booking id.
	CreateBooking(ctx context.Context, cred Credential, propertyID string, stay booking.StayRequest) (string, error)
}
