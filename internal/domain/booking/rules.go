package booking

import "errors"

var ErrInvalidRules = errors.New("booking: stay rules out of range")

// StayRules bounds the length of a stay in nights. One value is shared by
// the validator, the picker exclusion logic and the service so the limits
// cannot drift apart.
type StayRules struct {
	MinNights int
	MaxNights int
}

// DefaultRules matches the marketplace-wide stay policy.
var DefaultRules = StayRules{MinNights: 1, MaxNights: 30}

func (r StayRules) Validate() error {
	if r.MinNights < 1 || r.MaxNights < r.MinNights {
		return ErrInvalidRules
	}
	return nil
}
