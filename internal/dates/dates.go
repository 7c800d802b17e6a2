// Package dates converts calendar dates to and from the YYYY-MM-DD wire format
// used by the IBOR analytics API.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ISOLayout is the wire format for dates in request parameters.
const ISOLayout = "2006-01-02"

// ToISODate formats the calendar day of t (in t's own location) as YYYY-MM-DD.
func ToISODate(t time.Time) string {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format(ISOLayout)
}

// FromISODate parses YYYY-MM-DD into midnight UTC of that day.
// A missing month or day defaults to 1 ("2025" -> 2025-01-01, "2025-09" -> 2025-09-01).
// Years before 1 carry a leading minus sign, as ToISODate writes them.
func FromISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	body, sign := s, 1
	if strings.HasPrefix(body, "-") {
		body, sign = body[1:], -1
	}

	parts := strings.Split(body, "-")
	if len(parts) > 3 {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}

	fields := [3]int{0, 1, 1}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		fields[i] = n
	}

	year, month, day := sign*fields[0], fields[1], fields[2]
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("invalid month in date %q", s)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid day in date %q", s)
	}
	return t, nil
}

// MustFromISODate is FromISODate for literals known to be valid.
func MustFromISODate(s string) time.Time {
	t, err := FromISODate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Range is an inclusive start..end pair of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange parses two ISO dates into a Range. Start must not be after End.
func NewRange(start, end string) (Range, error) {
	s, err := FromISODate(start)
	if err != nil {
		return Range{}, fmt.Errorf("start date: %w", err)
	}
	e, err := FromISODate(end)
	if err != nil {
		return Range{}, fmt.Errorf("end date: %w", err)
	}
	if s.After(e) {
		return Range{}, fmt.Errorf("start date %s is after end date %s", start, end)
	}
	return Range{Start: s, End: e}, nil
}

// Equal compares both boundaries by instant.
func (r Range) Equal(o Range) bool {
	return r.Start.Equal(o.Start) && r.End.Equal(o.End)
}

// StartISO returns the start boundary as YYYY-MM-DD.
func (r Range) StartISO() string { return ToISODate(r.Start) }

// EndISO returns the end boundary as YYYY-MM-DD.
func (r Range) EndISO() string { return ToISODate(r.End) }

func (r Range) String() string {
	return r.StartISO() + ".." + r.EndISO()
}
