package timecalc

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// weeksPerYear is the rollover used when enumerating week keys. Years with a
// 53rd week lose it during enumeration.
const weeksPerYear = 52

// WeekKey identifies a week bucket, rendered as "YYYY-Wnn".
//
// Weeks are numbered from January 1st with Sunday as the first weekday:
// week 1 runs from January 1st up to the first Saturday. This is not ISO-8601.
type WeekKey struct {
	Year int
	Week int
}

// WeekKeyOf returns the week bucket for d. The invalid Day maps to the
// invalid WeekKey.
func WeekKeyOf(d Day) WeekKey {
	if !d.IsValid() {
		return WeekKey{}
	}
	jan1 := Date(d.Year(), time.January, 1)
	days := d.DaysSince(jan1)
	// ceil(n/7) for n > 0
	week := (days + int(jan1.Weekday()) + 1 + 6) / 7
	return WeekKey{Year: d.Year(), Week: week}
}

// ParseWeekKey parses "YYYY-Wnn".
func ParseWeekKey(s string) (WeekKey, error) {
	y, w, ok := strings.Cut(s, "-W")
	if !ok {
		return WeekKey{}, fmt.Errorf("invalid week key %q", s)
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return WeekKey{}, fmt.Errorf("invalid week key %q: %w", s, err)
	}
	week, err := strconv.Atoi(w)
	if err != nil || week < 1 || week > 54 {
		return WeekKey{}, fmt.Errorf("invalid week number in %q", s)
	}
	return WeekKey{Year: year, Week: week}, nil
}

func (k WeekKey) IsValid() bool { return k.Week > 0 }

func (k WeekKey) String() string {
	if !k.IsValid() {
		return invalidKey
	}
	return fmt.Sprintf("%d-W%02d", k.Year, k.Week)
}

// Days returns exactly the dates WeekKeyOf maps to k: the Sunday-to-Saturday
// week, clipped to k's year. Week 1 and the last week of a year can be short.
func (k WeekKey) Days() []Day {
	if !k.IsValid() {
		return nil
	}
	jan1 := Date(k.Year, time.January, 1)
	sunday := jan1.AddDays(7*(k.Week-1) - int(jan1.Weekday()))
	var out []Day
	for _, d := range DaysBetween(sunday, sunday.AddDays(6)) {
		if d.Year() == k.Year {
			out = append(out, d)
		}
	}
	return out
}

// WeeksBetween enumerates week keys from first to last. Every year before the
// last one is assumed to end at week 52.
func WeeksBetween(first, last WeekKey) []WeekKey {
	if !first.IsValid() || !last.IsValid() {
		return nil
	}
	var out []WeekKey
	for year := first.Year; year <= last.Year; year++ {
		start, end := 1, weeksPerYear
		if year == first.Year {
			start = first.Week
		}
		if year == last.Year {
			end = last.Week
		}
		for w := start; w <= end; w++ {
			out = append(out, WeekKey{Year: year, Week: w})
		}
	}
	return out
}

// MonthKey identifies a calendar month, rendered as "YYYY-MM".
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthKeyOf returns the month bucket for d.
func MonthKeyOf(d Day) MonthKey {
	if !d.IsValid() {
		return MonthKey{}
	}
	return MonthKey{Year: d.Year(), Month: d.Month()}
}

// ParseMonthKey parses "YYYY-MM".
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month key %q: %w", s, err)
	}
	return MonthKey{Year: t.Year(), Month: t.Month()}, nil
}

func (k MonthKey) IsValid() bool { return k.Month >= time.January && k.Month <= time.December }

func (k MonthKey) String() string {
	if !k.IsValid() {
		return invalidKey
	}
	return fmt.Sprintf("%d-%02d", k.Year, int(k.Month))
}

// First returns the first day of the month.
func (k MonthKey) First() Day {
	return Date(k.Year, k.Month, 1)
}

// Days returns every day of the month.
func (k MonthKey) Days() []Day {
	if !k.IsValid() {
		return nil
	}
	first := k.First()
	return DaysBetween(first, first.AddDays(32).firstOfMonth().AddDays(-1))
}

// Before reports whether k is an earlier month than o.
func (k MonthKey) Before(o MonthKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

// Next returns the following month.
func (k MonthKey) Next() MonthKey {
	if k.Month == time.December {
		return MonthKey{Year: k.Year + 1, Month: time.January}
	}
	return MonthKey{Year: k.Year, Month: k.Month + 1}
}

// MonthsBetween enumerates month keys from first through last.
func MonthsBetween(first, last MonthKey) []MonthKey {
	if !first.IsValid() || !last.IsValid() {
		return nil
	}
	var out []MonthKey
	for k := first; !last.Before(k); k = k.Next() {
		out = append(out, k)
	}
	return out
}

func (d Day) firstOfMonth() Day {
	return Date(d.Year(), d.Month(), 1)
}
