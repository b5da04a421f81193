// Package bookingstore is the HTTP client of the booking-store API. It
// implements the outbound port the selector talks to, translating wire
// responses into the boundary error taxonomy so callers can branch on
// errors.Is instead of status codes.
package bookingstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"staybook/internal/app/policies"
	"staybook/internal/domain/booking"
	"staybook/internal/domain/calendar"
	"staybook/internal/domain/reservation"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type reservationDTO struct {
	BookingID string `json:"booking_id"`
	DateIn    string `json:"date_in"`
	DateOut   string `json:"date_out"`
}

type createBookingDTO struct {
	PropertyID string `json:"property_id"`
	DateIn     string `json:"date_in"`
	DateOut    string `json:"date_out"`
}

type createBookingResponseDTO struct {
	BookingID string `json:"booking_id"`
}

// Reservations fetches the current snapshot for a property. A payload
// that cannot be decoded, or whose dates violate the reservation
// invariant, is rejected whole as ErrMalformedResponse.
func (c *Client) Reservations(ctx context.Context, cred policies.Credential, propertyID string) ([]reservation.Reservation, error) {
	url := fmt.Sprintf("%s/api/v1/properties/%s/reservations", c.BaseURL, propertyID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req, cred)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, errors.Join(policies.ErrTransient, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	var payload []reservationDTO
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Join(policies.ErrMalformedResponse, err)
	}
	out := make([]reservation.Reservation, 0, len(payload))
	for _, dto := range payload {
		res, err := decodeReservation(dto, propertyID)
		if err != nil {
			return nil, errors.Join(policies.ErrMalformedResponse, err)
		}
		out = append(out, res)
	}
	return out, nil
}

// CreateBooking submits an already-validated stay and returns the new
// booking id. A 409 from the store surfaces as ErrConflict.
func (c *Client) CreateBooking(ctx context.Context, cred policies.Credential, propertyID string, stay booking.StayRequest) (string, error) {
	body, err := json.Marshal(createBookingDTO{
		PropertyID: propertyID,
		DateIn:     stay.CheckIn.String(),
		DateOut:    stay.CheckOut.String(),
	})
	if err != nil {
		return "", err
	}
	url := c.BaseURL + "/api/v1/bookings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req, cred)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", errors.Join(policies.ErrTransient, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		if err := checkStatus(resp.StatusCode); err != nil {
			return "", err
		}
		return "", fmt.Errorf("bookingstore: unexpected status %d", resp.StatusCode)
	}

	var payload createBookingResponseDTO
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", errors.Join(policies.ErrMalformedResponse, err)
	}
	if payload.BookingID == "" {
		return "", fmt.Errorf("%w: missing booking id", policies.ErrMalformedResponse)
	}
	return payload.BookingID, nil
}

func (c *Client) authorize(req *http.Request, cred policies.Credential) {
	if !cred.Empty() {
		req.Header.Set("Authorization", "Bearer "+cred.Token)
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized:
		return policies.ErrUnauthenticated
	case code == http.StatusConflict:
		return policies.ErrConflict
	case code >= 500:
		return fmt.Errorf("%w: status %d", policies.ErrTransient, code)
	default:
		return fmt.Errorf("bookingstore: unexpected status %d", code)
	}
}

func decodeReservation(dto reservationDTO, propertyID string) (reservation.Reservation, error) {
	checkIn, err := calendar.Parse(dto.DateIn)
	if err != nil {
		return reservation.Reservation{}, err
	}
	checkOut, err := calendar.Parse(dto.DateOut)
	if err != nil {
		return reservation.Reservation{}, err
	}
	rng, err := calendar.NewRange(checkIn, checkOut)
	if err != nil {
		return reservation.Reservation{}, fmt.Errorf("reservation %s: %w", dto.BookingID, err)
	}
	return reservation.Reservation{ID: dto.BookingID, PropertyID: propertyID, Range: rng}, nil
}

var _ policies.BookingStore = (*Client)(nil)
