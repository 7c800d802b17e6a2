package dates

import (
	"math/rand"
	"testing"
	"time"
)

func TestToISODate(t *testing.T) {
	d := time.Date(2025, time.September, 4, 23, 59, 0, 0, time.UTC)
	if got := ToISODate(d); got != "2025-09-04" {
		t.Errorf("expected 2025-09-04, got %s", got)
	}
}

func TestToISODate_UsesOwnLocation(t *testing.T) {
	// 00:30 on the 5th in UTC+10 is still the 4th in UTC.
	loc := time.FixedZone("AEST", 10*60*60)
	d := time.Date(2025, time.September, 5, 0, 30, 0, 0, loc)
	if got := ToISODate(d); got != "2025-09-05" {
		t.Errorf("expected local calendar day 2025-09-05, got %s", got)
	}

	ny := time.FixedZone("EST", -5*60*60)
	d = time.Date(2025, time.September, 4, 22, 0, 0, 0, ny) // 03:00 UTC on the 5th
	if got := ToISODate(d); got != "2025-09-04" {
		t.Errorf("expected local calendar day 2025-09-04, got %s", got)
	}
}

func TestFromISODate(t *testing.T) {
	got, err := FromISODate("2025-09-24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2025 || got.Month() != time.September || got.Day() != 24 {
		t.Errorf("unexpected date: %v", got)
	}
}

func TestFromISODate_DefaultsMissingParts(t *testing.T) {
	got, err := FromISODate("2025-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Day() != 1 || got.Month() != time.September {
		t.Errorf("expected 2025-09-01, got %v", got)
	}

	got, err = FromISODate("2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Month() != time.January || got.Day() != 1 {
		t.Errorf("expected 2025-01-01, got %v", got)
	}
}

func TestFromISODate_Invalid(t *testing.T) {
	for _, s := range []string{"", "abc", "2025-13-01", "2025-02-30", "2025-01-01-01", "2025-x-01"} {
		if _, err := FromISODate(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func TestFromISODate_NegativeYear(t *testing.T) {
	d := time.Date(-1, time.March, 15, 0, 0, 0, 0, time.UTC)
	s := ToISODate(d)
	if s != "-0001-03-15" {
		t.Fatalf("expected -0001-03-15, got %s", s)
	}

	back, err := FromISODate(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("expected %v, got %v", d, back)
	}

	for _, bad := range []string{"-", "--0001-03-15", "-x-03-15"} {
		if _, err := FromISODate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestRoundTrip_RandomDates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	locs := []*time.Location{time.UTC, time.FixedZone("plus14", 14*3600), time.FixedZone("minus12", -12*3600)}

	for i := 0; i < 2000; i++ {
		sec := rng.Int63n(int64(200 * 365 * 24 * time.Hour / time.Second))
		d := time.Unix(sec-int64(50*365*24*3600), 0).In(locs[i%len(locs)])

		back, err := FromISODate(ToISODate(d))
		if err != nil {
			t.Fatalf("round trip failed for %v: %v", d, err)
		}
		y1, m1, d1 := d.Date()
		y2, m2, d2 := back.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			t.Fatalf("round trip mismatch: %v -> %v", d, back)
		}
	}
}

func TestNewRange(t *testing.T) {
	r, err := NewRange("2025-09-24", "2025-09-26")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.StartISO() != "2025-09-24" || r.EndISO() != "2025-09-26" {
		t.Errorf("unexpected range: %s", r)
	}
	if r.String() != "2025-09-24..2025-09-26" {
		t.Errorf("unexpected String(): %s", r)
	}
}

func TestNewRange_StartAfterEnd(t *testing.T) {
	if _, err := NewRange("2025-09-27", "2025-09-26"); err == nil {
		t.Error("expected error when start is after end")
	}
}

func TestRange_EqualByInstant(t *testing.T) {
	a := Range{Start: MustFromISODate("2025-09-24"), End: MustFromISODate("2025-09-26")}
	// Same instants expressed in another location.
	loc := time.FixedZone("plus2", 2*3600)
	b := Range{Start: a.Start.In(loc), End: a.End.In(loc)}
	if !a.Equal(b) {
		t.Error("expected ranges with equal instants to be equal")
	}
	c := Range{Start: a.Start, End: MustFromISODate("2025-09-27")}
	if a.Equal(c) {
		t.Error("expected different end dates to be unequal")
	}
}
