package reservation

import (
	"fmt"

	"staybook/internal/domain/calendar"
)

// DaySet is the occupancy index for one property: a day is a member iff
// it falls inside [CheckIn, CheckOut) of some reservation. A DaySet is
// never mutated in place; it is rebuilt from a fresh reservation list
// whenever that list changes.
type DaySet struct {
	days map[calendar.Date]struct{}
}

// BuildDaySet derives the occupied-day index from a reservation snapshot.
// A reservation with an inverted or empty range is a data-integrity error
// from the store and fails the whole build.
func BuildDaySet(reservations []Reservation) (*DaySet, error) {
	set := &DaySet{days: make(map[calendar.Date]struct{})}
	for _, r := range reservations {
		if err := r.Range.Validate(); err != nil {
			return nil, fmt.Errorf("%w: reservation %s", ErrCorruptReservation, r.ID)
		}
		for d := r.Range.CheckIn; d.Before(r.Range.CheckOut); d = d.AddDays(1) {
			set.days[d] = struct{}{}
		}
	}
	return set, nil
}

// IsOccupied reports whether some reservation covers the day.
func (s *DaySet) IsOccupied(d calendar.Date) bool {
	if s == nil {
		return false
	}
	_, ok := s.days[d]
	return ok
}

// OccupiedDays lists every covered day, in no particular order.
func (s *DaySet) OccupiedDays() []calendar.Date {
	if s == nil {
		return nil
	}
	days := make([]calendar.Date, 0, len(s.days))
	for d := range s.days {
		days = append(days, d)
	}
	return days
}

// FirstOccupied returns the earliest occupied day within r, if any.
func (s *DaySet) FirstOccupied(r calendar.Range) (calendar.Date, bool) {
	if s == nil {
		return calendar.Date{}, false
	}
	for d := r.CheckIn; d.Before(r.CheckOut); d = d.AddDays(1) {
		if s.IsOccupied(d) {
			return d, true
		}
	}
	return calendar.Date{}, false
}

func (s *DaySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.days)
}
