package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"staybook/internal/domain/calendar"
	"staybook/internal/domain/reservation"
)

// ReservationRepository persists reservations in a mongo collection.
type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection("reservations")}
}

// ByProperty loads the reservation snapshot for a property, sorted by
// check-in.
func (r *ReservationRepository) ByProperty(ctx context.Context, propertyID string) ([]reservation.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"property_id": propertyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []reservation.Reservation
	for cursor.Next(ctx) {
		var doc reservationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		res, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, cursor.Err()
}

// Save stores an accepted reservation.
func (r *ReservationRepository) Save(ctx context.Context, res reservation.Reservation) error {
	doc := newReservationDocument(res)
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

// reservationDocument keeps dates in their wire form (YYYY-MM-DD). Day
// granularity makes the string form lexically ordered, so the sort on
// check_in is correct without a time type.
type reservationDocument struct {
	ID         string `bson:"_id"`
	PropertyID string `bson:"property_id"`
	GuestID    string `bson:"guest_id"`
	CheckIn    string `bson:"check_in"`
	CheckOut   string `bson:"check_out"`
}

func newReservationDocument(r reservation.Reservation) reservationDocument {
	return reservationDocument{
		ID:         r.ID,
		PropertyID: r.PropertyID,
		GuestID:    r.GuestID,
		CheckIn:    r.Range.CheckIn.String(),
		CheckOut:   r.Range.CheckOut.String(),
	}
}

func (d reservationDocument) toDomain() (reservation.Reservation, error) {
	checkIn, err := calendar.Parse(d.CheckIn)
	if err != nil {
		return reservation.Reservation{}, fmt.Errorf("mongo: reservation %s: %w", d.ID, err)
	}
	checkOut, err := calendar.Parse(d.CheckOut)
	if err != nil {
		return reservation.Reservation{}, fmt.Errorf("mongo: reservation %s: %w", d.ID, err)
	}
	rng, err := calendar.NewRange(checkIn, checkOut)
	if err != nil {
		return reservation.Reservation{}, fmt.Errorf("%w: %s", reservation.ErrCorruptReservation, d.ID)
	}
	return reservation.Reservation{ID: d.ID, PropertyID: d.PropertyID, GuestID: d.GuestID, Range: rng}, nil
}

var _ reservation.Store = (*ReservationRepository)(nil)
