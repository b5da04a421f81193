package calendar

import (
	"testing"
	"time"
)

func mustRange(t *testing.T, in, out string) Range {
	t.Helper()
	checkIn, err := Parse(in)
	if err != nil {
		t.Fatalf("Parse(%q): %v", in, err)
	}
	checkOut, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse(%q): %v", out, err)
	}
	r, err := NewRange(checkIn, checkOut)
	if err != nil {
		t.Fatalf("NewRange(%s, %s): %v", in, out, err)
	}
	return r
}

func TestNewRangeRejectsInvalid(t *testing.T) {
	d := NewDate(2025, time.June, 1)
	if _, err := NewRange(d, d); err == nil {
		t.Fatal("zero-night range must be invalid")
	}
	if _, err := NewRange(d.AddDays(1), d); err == nil {
		t.Fatal("inverted range must be invalid")
	}
	if _, err := NewRange(Date{}, d); err == nil {
		t.Fatal("unset check-in must be invalid")
	}
}

func TestNights(t *testing.T) {
	if got := mustRange(t, "2025-01-01", "2025-01-05").Nights(); got != 4 {
		t.Fatalf("expected 4 nights, got %d", got)
	}
	if got := mustRange(t, "2025-12-30", "2026-01-02").Nights(); got != 3 {
		t.Fatalf("expected 3 nights across year boundary, got %d", got)
	}
}

func TestContainsDayHalfOpen(t *testing.T) {
	r := mustRange(t, "2025-01-01", "2025-01-05")
	if !r.ContainsDay(NewDate(2025, time.January, 1)) {
		t.Fatal("check-in day must be contained")
	}
	if r.ContainsDay(NewDate(2025, time.January, 5)) {
		t.Fatal("check-out day must not be contained")
	}
}

func TestOverlaps(t *testing.T) {
	base := mustRange(t, "2025-01-05", "2025-01-10")
	cases := []struct {
		in, out string
		want    bool
	}{
		{"2025-01-01", "2025-01-05", false}, // back to back before
		{"2025-01-10", "2025-01-12", false}, // back to back after
		{"2025-01-01", "2025-01-06", true},
		{"2025-01-09", "2025-01-12", true},
		{"2025-01-06", "2025-01-08", true},
		{"2025-01-01", "2025-01-20", true},
	}
	for _, tc := range cases {
		other := mustRange(t, tc.in, tc.out)
		if got := base.Overlaps(other); got != tc.want {
			t.Errorf("[%s,%s) overlaps = %v, want %v", tc.in, tc.out, got, tc.want)
		}
		if got := other.Overlaps(base); got != tc.want {
			t.Errorf("overlap must be symmetric for [%s,%s)", tc.in, tc.out)
		}
	}
}

func TestDaysEnumeration(t *testing.T) {
	days := mustRange(t, "2025-01-30", "2025-02-02").Days()
	want := []string{"2025-01-30", "2025-01-31", "2025-02-01"}
	if len(days) != len(want) {
		t.Fatalf("expected %d days, got %d", len(want), len(days))
	}
	for i, w := range want {
		if days[i].String() != w {
			t.Errorf("day %d = %s, want %s", i, days[i], w)
		}
	}
}
