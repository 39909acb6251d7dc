package analytics

import (
	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

// OffDays is the set of calendar dates covered by off-day entries.
type OffDays map[timecalc.Day]struct{}

// ResolveOffDays expands every off-day entry into the dates it covers.
// A range whose start is after its end, or with a malformed bound, covers
// nothing.
func ResolveOffDays(entries []model.Entry) OffDays {
	set := OffDays{}
	for _, e := range entries {
		switch k := e.Kind().(type) {
		case model.OffDay:
			for _, d := range timecalc.DaysBetween(timecalc.DayOf(k.From), timecalc.DayOf(k.Through)) {
				set[d] = struct{}{}
			}
		case model.Timed:
		}
	}
	return set
}

// Contains reports whether d is an off day.
func (s OffDays) Contains(d timecalc.Day) bool {
	_, ok := s[d]
	return ok
}

// WeekFullyOff reports whether every day bucketed under k is off.
func (s OffDays) WeekFullyOff(k timecalc.WeekKey) bool {
	return s.allOff(k.Days())
}

// MonthFullyOff reports whether every day of the month is off.
func (s OffDays) MonthFullyOff(k timecalc.MonthKey) bool {
	return s.allOff(k.Days())
}

// Sorted returns the off days in ascending order.
func (s OffDays) Sorted() []timecalc.Day {
	out := make([]timecalc.Day, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sortKeys(out)
	return out
}

func (s OffDays) allOff(days []timecalc.Day) bool {
	if len(days) == 0 || len(s) == 0 {
		return false
	}
	for _, d := range days {
		if !s.Contains(d) {
			return false
		}
	}
	return true
}
