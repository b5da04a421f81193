package kafka

import (
	"context"
	"encoding/json"
	"time"

	"staybook/internal/domain/reservation"
)

const reservationCreatedTopic = "reservation.created"

// EventPublisher announces accepted bookings on the broker so downstream
// consumers (notifications, analytics) can react. Publishing happens
// after persistence; a broker outage must not fail the booking, so the
// caller logs and continues on error.
type EventPublisher struct {
	Producer    *Producer
	TopicPrefix string
}

type reservationCreatedEvent struct {
	ReservationID string `json:"reservation_id"`
	PropertyID    string `json:"property_id"`
	GuestID       string `json:"guest_id"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	OccurredAt    string `json:"occurred_at"`
}

func (p EventPublisher) ReservationCreated(ctx context.Context, r reservation.Reservation) error {
	if p.Producer == nil {
		return nil
	}
	payload, err := json.Marshal(reservationCreatedEvent{
		ReservationID: r.ID,
		PropertyID:    r.PropertyID,
		GuestID:       r.GuestID,
		CheckIn:       r.Range.CheckIn.String(),
		CheckOut:      r.Range.CheckOut.String(),
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return p.Producer.Publish(ctx, p.TopicPrefix+reservationCreatedTopic, r.PropertyID, payload, map[string]string{
		"event": "reservation.created",
	})
}
