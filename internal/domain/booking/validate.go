package booking

import (
	"staybook/internal/domain/calendar"
	"staybook/internal/domain/reservation"
)

// StayRequest is an in-progress booking selection. Either date may still
// be unset while the guest is picking.
type StayRequest struct {
	CheckIn  calendar.Date
	CheckOut calendar.Date
}

func (r StayRequest) Complete() bool {
	return !r.CheckIn.IsZero() && !r.CheckOut.IsZero()
}

// Range converts a complete request into its half-open day interval.
// Only meaningful once Validate has accepted the request.
func (r StayRequest) Range() calendar.Range {
	return calendar.Range{CheckIn: r.CheckIn, CheckOut: r.CheckOut}
}

// Reason identifies why a stay request was rejected.
type Reason string

const (
	ReasonIncomplete    Reason = "INCOMPLETE"
	ReasonPastCheckIn   Reason = "PAST_CHECK_IN"
	ReasonInvertedRange Reason = "INVERTED_RANGE"
	ReasonTooShort      Reason = "TOO_SHORT"
	ReasonTooLong       Reason = "TOO_LONG"
	ReasonOverlap       Reason = "OVERLAP"
)

// Message is the user-facing text for the reason.
func (r Reason) Message() string {
	switch r {
	case ReasonIncomplete:
		return "Please select both check-in and check-out dates"
	case ReasonPastCheckIn:
		return "Check-in date cannot be in the past"
	case ReasonInvertedRange:
		return "Check-out date must be after check-in date"
	case ReasonTooShort:
		return "Stay is shorter than the minimum allowed"
	case ReasonTooLong:
		return "Stay is longer than the maximum allowed"
	case ReasonOverlap:
		return "Selected dates overlap with existing bookings"
	default:
		return "Booking request rejected"
	}
}

// Result is the outcome of validating a stay request: accepted, or
// rejected with exactly one reason.
type Result struct {
	Reason Reason
}

func (r Result) Accepted() bool { return r.Reason == "" }

func accepted() Result         { return Result{} }
func rejected(r Reason) Result { return Result{Reason: r} }

// Validate decides whether a proposed stay may be booked. Checks run in a
// fixed order and the first failure wins, so the caller always gets the
// single most actionable reason. The function is pure: it never errors on
// well-formed input and mutates neither the request nor the index.
func Validate(req StayRequest, today calendar.Date, index *reservation.DaySet, rules StayRules) Result {
	if !req.Complete() {
		return rejected(ReasonIncomplete)
	}
	if req.CheckIn.Before(today) {
		return rejected(ReasonPastCheckIn)
	}
	if !req.CheckIn.Before(req.CheckOut) {
		return rejected(ReasonInvertedRange)
	}
	nights := req.CheckIn.DaysUntil(req.CheckOut)
	if nights < rules.MinNights {
		return rejected(ReasonTooShort)
	}
	if nights > rules.MaxNights {
		return rejected(ReasonTooLong)
	}
	// Half-open semantics: a stay may start on another reservation's
	// check-out day and end on another's check-in day. Only the nights
	// actually slept in [CheckIn, CheckOut) can collide.
	if _, occupied := index.FirstOccupied(req.Range()); occupied {
		return rejected(ReasonOverlap)
	}
	return accepted()
}
