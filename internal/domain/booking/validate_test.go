package booking

import (
	"testing"

	"staybook/internal/domain/calendar"
	"staybook/internal/domain/reservation"
)

var testRules = StayRules{MinNights: 1, MaxNights: 30}

func day(t *testing.T, s string) calendar.Date {
	t.Helper()
	d, err := calendar.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return d
}

func indexOf(t *testing.T, ranges ...[2]string) *reservation.DaySet {
	t.Helper()
	list := make([]reservation.Reservation, 0, len(ranges))
	for i, r := range ranges {
		list = append(list, reservation.Reservation{
			ID:    string(rune('a' + i)),
			Range: calendar.Range{CheckIn: day(t, r[0]), CheckOut: day(t, r[1])},
		})
	}
	set, err := reservation.BuildDaySet(list)
	if err != nil {
		t.Fatalf("BuildDaySet: %v", err)
	}
	return set
}

func TestValidateOrderedChecks(t *testing.T) {
	today := day(t, "2025-06-01")
	index := indexOf(t)

	cases := []struct {
		name string
		req  StayRequest
		want Reason
	}{
		{"both unset", StayRequest{}, ReasonIncomplete},
		{"check-out unset", StayRequest{CheckIn: day(t, "2025-06-10")}, ReasonIncomplete},
		{"check-in unset", StayRequest{CheckOut: day(t, "2025-06-10")}, ReasonIncomplete},
		// Past check-in must win over the inverted range it also has.
		{"past beats inverted", StayRequest{CheckIn: day(t, "2025-05-20"), CheckOut: day(t, "2025-05-19")}, ReasonPastCheckIn},
		{"past check-in", StayRequest{CheckIn: day(t, "2025-05-31"), CheckOut: day(t, "2025-06-05")}, ReasonPastCheckIn},
		{"zero nights", StayRequest{CheckIn: day(t, "2025-06-10"), CheckOut: day(t, "2025-06-10")}, ReasonInvertedRange},
		{"inverted", StayRequest{CheckIn: day(t, "2025-06-10"), CheckOut: day(t, "2025-06-08")}, ReasonInvertedRange},
		{"too long", StayRequest{CheckIn: day(t, "2025-06-10"), CheckOut: day(t, "2025-07-11")}, ReasonTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Validate(tc.req, today, index, testRules)
			if result.Accepted() {
				t.Fatal("expected rejection")
			}
			if result.Reason != tc.want {
				t.Fatalf("reason = %s, want %s", result.Reason, tc.want)
			}
		})
	}
}

func TestValidateBoundaryAcceptance(t *testing.T) {
	today := day(t, "2025-06-01")
	index := indexOf(t)

	// Check-in today is allowed; the past check is strictly before.
	sameDay := StayRequest{CheckIn: day(t, "2025-06-01"), CheckOut: day(t, "2025-06-02")}
	if result := Validate(sameDay, today, index, testRules); !result.Accepted() {
		t.Fatalf("check-in today rejected: %s", result.Reason)
	}

	// Exactly MaxNights is allowed.
	maxStay := StayRequest{CheckIn: day(t, "2025-06-01"), CheckOut: day(t, "2025-07-01")}
	if result := Validate(maxStay, today, index, testRules); !result.Accepted() {
		t.Fatalf("30-night stay rejected: %s", result.Reason)
	}

	// MinNights floor applies.
	strict := StayRules{MinNights: 2, MaxNights: 30}
	oneNight := StayRequest{CheckIn: day(t, "2025-06-10"), CheckOut: day(t, "2025-06-11")}
	if result := Validate(oneNight, today, index, strict); result.Reason != ReasonTooShort {
		t.Fatalf("expected TOO_SHORT with minNights=2, got %q", result.Reason)
	}
}

func TestValidateOverlap(t *testing.T) {
	today := day(t, "2025-01-01")
	index := indexOf(t, [2]string{"2025-01-01", "2025-01-05"})

	conflicting := StayRequest{CheckIn: day(t, "2025-01-03"), CheckOut: day(t, "2025-01-06")}
	if result := Validate(conflicting, today, index, testRules); result.Reason != ReasonOverlap {
		t.Fatalf("expected OVERLAP, got %q", result.Reason)
	}

	// Even a single occupied day anywhere in the range must trip it.
	spanning := StayRequest{CheckIn: day(t, "2024-12-31"), CheckOut: day(t, "2025-01-02")}
	if result := Validate(spanning, day(t, "2024-12-31"), index, testRules); result.Reason != ReasonOverlap {
		t.Fatalf("expected OVERLAP for spanning stay, got %q", result.Reason)
	}
}

func TestValidateBackToBackLegality(t *testing.T) {
	today := day(t, "2025-01-01")
	index := indexOf(t, [2]string{"2025-01-01", "2025-01-05"})

	// Starting on the existing reservation's check-out day is legal.
	after := StayRequest{CheckIn: day(t, "2025-01-05"), CheckOut: day(t, "2025-01-08")}
	if result := Validate(after, today, index, testRules); !result.Accepted() {
		t.Fatalf("back-to-back check-in rejected: %s", result.Reason)
	}

	// Ending on the existing reservation's check-in day is legal too.
	index2 := indexOf(t, [2]string{"2025-01-10", "2025-01-15"})
	before := StayRequest{CheckIn: day(t, "2025-01-07"), CheckOut: day(t, "2025-01-10")}
	if result := Validate(before, today, index2, testRules); !result.Accepted() {
		t.Fatalf("back-to-back check-out rejected: %s", result.Reason)
	}
}

func TestValidateIsPure(t *testing.T) {
	today := day(t, "2025-01-01")
	index := indexOf(t, [2]string{"2025-01-02", "2025-01-04"})
	req := StayRequest{CheckIn: day(t, "2025-01-02"), CheckOut: day(t, "2025-01-03")}

	before := index.Len()
	_ = Validate(req, today, index, testRules)
	_ = Validate(req, today, index, testRules)
	if index.Len() != before {
		t.Fatal("validation must not mutate the index")
	}
	if !req.CheckIn.Equal(day(t, "2025-01-02")) || !req.CheckOut.Equal(day(t, "2025-01-03")) {
		t.Fatal("validation must not mutate the request")
	}
}

func TestReasonMessages(t *testing.T) {
	reasons := []Reason{ReasonIncomplete, ReasonPastCheckIn, ReasonInvertedRange, ReasonTooShort, ReasonTooLong, ReasonOverlap}
	seen := make(map[string]Reason, len(reasons))
	for _, r := range reasons {
		msg := r.Message()
		if msg == "" || msg == Reason("").Message() {
			t.Errorf("reason %s has no dedicated message", r)
		}
		if prev, dup := seen[msg]; dup {
			t.Errorf("reasons %s and %s share a message", prev, r)
		}
		seen[msg] = r
	}
}
