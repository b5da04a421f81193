package selector

import "staybook/internal/domain/calendar"

// Picker exclusion helpers. These render the same rules the validator
// re-checks authoritatively; both read the one occupancy index and the
// one StayRules value, so they cannot drift apart.

// ExcludedDays lists every already-booked day the pickers must disable.
func (s *Selector) ExcludedDays() []calendar.Date {
	return s.index.OccupiedDays()
}

// CheckInSelectable reports whether the check-in picker should offer the
// day: not occupied and not before today.
func (s *Selector) CheckInSelectable(d calendar.Date) bool {
	if d.Before(s.today()) {
		return false
	}
	return !s.index.IsOccupied(d)
}

// CheckOutSelectable reports whether the check-out picker should offer
// the day: not occupied and not before the current check-in (or today,
// while no check-in is picked).
func (s *Selector) CheckOutSelectable(d calendar.Date) bool {
	floor := s.today()
	if !s.request.CheckIn.IsZero() {
		floor = s.request.CheckIn
	}
	if d.Before(floor) {
		return false
	}
	return !s.index.IsOccupied(d)
}
