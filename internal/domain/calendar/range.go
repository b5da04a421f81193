package calendar

import "errors"

var ErrInvalidRange = errors.New("calendar: check-out must be after check-in")

// Range represents a half-open interval of days [CheckIn, CheckOut).
// The check-out day itself is not part of the range, so a stay ending on
// a given day and another starting on that same day do not intersect.
type Range struct {
	CheckIn  Date
	CheckOut Date
}

func NewRange(checkIn, checkOut Date) (Range, error) {
	r := Range{CheckIn: checkIn, CheckOut: checkOut}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

func (r Range) Validate() error {
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if !r.CheckOut.After(r.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

// Nights is the whole-day count from check-in to check-out.
func (r Range) Nights() int {
	return r.CheckIn.DaysUntil(r.CheckOut)
}

func (r Range) Overlaps(other Range) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

func (r Range) ContainsDay(d Date) bool {
	return !d.Before(r.CheckIn) && d.Before(r.CheckOut)
}

// Days enumerates every day in the range, check-in inclusive, check-out
// exclusive.
func (r Range) Days() []Date {
	if r.Validate() != nil {
		return nil
	}
	days := make([]Date, 0, r.Nights())
	for d := r.CheckIn; d.Before(r.CheckOut); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}
