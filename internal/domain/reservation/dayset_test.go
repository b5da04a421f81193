package reservation

import (
	"testing"

	"staybook/internal/domain/calendar"
)

func res(t *testing.T, id, in, out string) Reservation {
	t.Helper()
	checkIn, err := calendar.Parse(in)
	if err != nil {
		t.Fatalf("Parse(%q): %v", in, err)
	}
	checkOut, err := calendar.Parse(out)
	if err != nil {
		t.Fatalf("Parse(%q): %v", out, err)
	}
	return Reservation{ID: id, PropertyID: "prop-1", Range: calendar.Range{CheckIn: checkIn, CheckOut: checkOut}}
}

func day(t *testing.T, s string) calendar.Date {
	t.Helper()
	d, err := calendar.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return d
}

func TestBuildDaySetHalfOpen(t *testing.T) {
	set, err := BuildDaySet([]Reservation{res(t, "r1", "2025-01-01", "2025-01-05")})
	if err != nil {
		t.Fatalf("BuildDaySet: %v", err)
	}
	if !set.IsOccupied(day(t, "2025-01-01")) {
		t.Fatal("check-in day must be occupied")
	}
	if !set.IsOccupied(day(t, "2025-01-04")) {
		t.Fatal("last night must be occupied")
	}
	if set.IsOccupied(day(t, "2025-01-05")) {
		t.Fatal("check-out day must be free")
	}
	if set.IsOccupied(day(t, "2024-12-31")) {
		t.Fatal("day before check-in must be free")
	}
}

func TestBuildDaySetCrossesMonthBoundary(t *testing.T) {
	set, err := BuildDaySet([]Reservation{res(t, "r1", "2025-01-30", "2025-02-02")})
	if err != nil {
		t.Fatalf("BuildDaySet: %v", err)
	}
	for _, d := range []string{"2025-01-30", "2025-01-31", "2025-02-01"} {
		if !set.IsOccupied(day(t, d)) {
			t.Errorf("%s must be occupied", d)
		}
	}
	if set.IsOccupied(day(t, "2025-02-02")) {
		t.Fatal("check-out day must be free")
	}
	if set.Len() != 3 {
		t.Fatalf("expected 3 occupied days, got %d", set.Len())
	}
}

func TestBuildDaySetFailsFastOnCorruptReservation(t *testing.T) {
	_, err := BuildDaySet([]Reservation{
		res(t, "ok", "2025-01-01", "2025-01-03"),
		res(t, "bad", "2025-01-10", "2025-01-10"),
	})
	if err == nil {
		t.Fatal("expected error for inverted reservation")
	}
}

func TestBuildDaySetDeterministic(t *testing.T) {
	list := []Reservation{
		res(t, "r1", "2025-01-01", "2025-01-05"),
		res(t, "r2", "2025-01-10", "2025-01-12"),
	}
	reversed := []Reservation{list[1], list[0]}

	first, err := BuildDaySet(list)
	if err != nil {
		t.Fatalf("BuildDaySet: %v", err)
	}
	second, err := BuildDaySet(reversed)
	if err != nil {
		t.Fatalf("BuildDaySet: %v", err)
	}
	if first.Len() != second.Len() {
		t.Fatalf("set sizes differ: %d vs %d", first.Len(), second.Len())
	}
	for _, d := range first.OccupiedDays() {
		if !second.IsOccupied(d) {
			t.Errorf("membership differs for %s", d)
		}
	}
}

func TestOccupiedDaysMergesReservations(t *testing.T) {
	set, err := BuildDaySet([]Reservation{
		res(t, "r1", "2025-01-01", "2025-01-03"),
		res(t, "r2", "2025-01-03", "2025-01-05"), // back to back
	})
	if err != nil {
		t.Fatalf("BuildDaySet: %v", err)
	}
	if got := len(set.OccupiedDays()); got != 4 {
		t.Fatalf("expected 4 occupied days, got %d", got)
	}
}

func TestFirstOccupied(t *testing.T) {
	set, err := BuildDaySet([]Reservation{res(t, "r1", "2025-01-05", "2025-01-07")})
	if err != nil {
		t.Fatalf("BuildDaySet: %v", err)
	}
	r := calendar.Range{CheckIn: day(t, "2025-01-01"), CheckOut: day(t, "2025-01-10")}
	hit, ok := set.FirstOccupied(r)
	if !ok {
		t.Fatal("expected an occupied day in range")
	}
	if hit.String() != "2025-01-05" {
		t.Fatalf("expected first hit 2025-01-05, got %s", hit)
	}

	clear := calendar.Range{CheckIn: day(t, "2025-01-07"), CheckOut: day(t, "2025-01-10")}
	if _, ok := set.FirstOccupied(clear); ok {
		t.Fatal("range starting on a check-out day must be clear")
	}
}

func TestNilDaySetIsEmpty(t *testing.T) {
	var set *DaySet
	if set.IsOccupied(day(t, "2025-01-01")) {
		t.Fatal("nil set must report unoccupied")
	}
	if set.OccupiedDays() != nil {
		t.Fatal("nil set must have no days")
	}
}
