package timecalc

import (
	"fmt"
	"time"
)

const invalidKey = "invalid"

// Day is a calendar date without a time of day, packed as yyyymmdd so it can
// be compared with == and used as a map key. The zero value is invalid and
// stands in for malformed input so it can still be bucketed.
type Day struct {
	ymd int
}

// ParseDay parses a "YYYY-MM-DD" date.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DayFromTime(t), nil
}

// DayOf is ParseDay without the error: malformed input yields the invalid Day.
func DayOf(s string) Day {
	d, _ := ParseDay(s)
	return d
}

// Date builds a Day from its parts, normalising overflow the way time.Date does.
func Date(year int, month time.Month, day int) Day {
	return DayFromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DayFromTime returns the calendar date of t in t's location.
func DayFromTime(t time.Time) Day {
	y, m, d := t.Date()
	return Day{ymd: y*10000 + int(m)*100 + d}
}

// Today returns the current local date.
func Today() Day {
	return DayFromTime(time.Now())
}

func (d Day) time() time.Time {
	return time.Date(d.ymd/10000, time.Month(d.ymd/100%100), d.ymd%100, 0, 0, 0, 0, time.UTC)
}

func (d Day) IsValid() bool { return d.ymd > 0 }

func (d Day) String() string {
	if !d.IsValid() {
		return invalidKey
	}
	return d.time().Format(DateLayout)
}

func (d Day) Year() int             { return d.ymd / 10000 }
func (d Day) Month() time.Month     { return time.Month(d.ymd / 100 % 100) }
func (d Day) DayOfMonth() int       { return d.ymd % 100 }
func (d Day) Weekday() time.Weekday { return d.time().Weekday() }

// AddDays steps by calendar days. The invalid Day stays invalid.
func (d Day) AddDays(n int) Day {
	if !d.IsValid() {
		return d
	}
	return DayFromTime(d.time().AddDate(0, 0, n))
}

// DaysSince returns the number of whole days from o to d.
func (d Day) DaysSince(o Day) int {
	return int(d.time().Sub(o.time()).Hours() / 24)
}

func (d Day) Before(o Day) bool { return d.ymd < o.ymd }
func (d Day) After(o Day) bool  { return d.ymd > o.ymd }

// DaysBetween returns every day from first through last inclusive.
// It returns nil when either bound is invalid or first is after last.
func DaysBetween(first, last Day) []Day {
	if !first.IsValid() || !last.IsValid() || first.After(last) {
		return nil
	}
	out := make([]Day, 0, last.DaysSince(first)+1)
	for d := first; !d.After(last); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}
