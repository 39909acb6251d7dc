package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

// Key is a bucket identifier: a day, a week or a month.
type Key interface {
	comparable
	fmt.Stringer
	IsValid() bool
}

// Totals maps a bucket to its minutes.
type Totals[K Key] map[K]int

// Keys returns the buckets in ascending order. The invalid bucket, if any,
// sorts last.
func (t Totals[K]) Keys() []K {
	keys := make([]K, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

// Sum returns the minutes across all buckets.
func (t Totals[K]) Sum() int {
	sum := 0
	for _, m := range t {
		sum += m
	}
	return sum
}

// TotalsByType maps a bucket to minutes per type id.
type TotalsByType[K Key] map[K]map[string]int

// Keys returns the buckets in ascending order.
func (t TotalsByType[K]) Keys() []K {
	keys := make([]K, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

func sortKeys[K fmt.Stringer](keys []K) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
}

func dayKey(date string) timecalc.Day { return timecalc.DayOf(date) }

func weekKey(date string) timecalc.WeekKey { return timecalc.WeekKeyOf(timecalc.DayOf(date)) }

func monthKey(date string) timecalc.MonthKey { return timecalc.MonthKeyOf(timecalc.DayOf(date)) }

func totals[K Key](entries []model.Entry, keyOf func(string) K) Totals[K] {
	out := Totals[K]{}
	for _, e := range entries {
		switch k := e.Kind().(type) {
		case model.Timed:
			out[keyOf(e.Date)] += k.Minutes
		case model.OffDay:
		}
	}
	return out
}

func totalsByType[K Key](entries []model.Entry, keyOf func(string) K) TotalsByType[K] {
	out := TotalsByType[K]{}
	for _, e := range entries {
		switch k := e.Kind().(type) {
		case model.Timed:
			key := keyOf(e.Date)
			if out[key] == nil {
				out[key] = map[string]int{}
			}
			out[key][k.TypeID] += k.Minutes
		case model.OffDay:
		}
	}
	return out
}

// DailyTotals sums minutes per date. Off-day entries contribute nothing.
func DailyTotals(entries []model.Entry) Totals[timecalc.Day] {
	return totals(entries, dayKey)
}

// DailyTotalsByType sums minutes per date and type.
func DailyTotalsByType(entries []model.Entry) TotalsByType[timecalc.Day] {
	return totalsByType(entries, dayKey)
}

// WeeklyTotals sums minutes per week key.
func WeeklyTotals(entries []model.Entry) Totals[timecalc.WeekKey] {
	return totals(entries, weekKey)
}

// WeeklyTotalsByType sums minutes per week key and type.
func WeeklyTotalsByType(entries []model.Entry) TotalsByType[timecalc.WeekKey] {
	return totalsByType(entries, weekKey)
}

// MonthlyTotals sums minutes per month key.
func MonthlyTotals(entries []model.Entry) Totals[timecalc.MonthKey] {
	return totals(entries, monthKey)
}

// MonthlyTotalsByType sums minutes per month key and type.
func MonthlyTotalsByType(entries []model.Entry) TotalsByType[timecalc.MonthKey] {
	return totalsByType(entries, monthKey)
}

// TimePerType sums minutes per type id regardless of date. Unknown ids are
// kept as they are; entries without a type sum under "".
func TimePerType(entries []model.Entry) map[string]int {
	out := map[string]int{}
	for _, e := range entries {
		if k, ok := e.Kind().(model.Timed); ok {
			out[k.TypeID] += k.Minutes
		}
	}
	return out
}

// TotalTime returns the minutes of all timed entries.
func TotalTime(entries []model.Entry) int {
	sum := 0
	for _, e := range entries {
		if k, ok := e.Kind().(model.Timed); ok {
			sum += k.Minutes
		}
	}
	return sum
}

// EntryCount returns the number of timed entries.
func EntryCount(entries []model.Entry) int {
	n := 0
	for _, e := range entries {
		if _, ok := e.Kind().(model.Timed); ok {
			n++
		}
	}
	return n
}

// DailyAverage is the total divided by the number of days that have entries.
func DailyAverage(entries []model.Entry) int {
	return average(DailyTotals(entries))
}

// WeeklyAverage is the total divided by the number of weeks that have entries.
func WeeklyAverage(entries []model.Entry) int {
	return average(WeeklyTotals(entries))
}

// average rounds half up to whole minutes and returns 0 for no buckets.
func average[K Key](t Totals[K]) int {
	if len(t) == 0 {
		return 0
	}
	return int(math.Floor(float64(t.Sum())/float64(len(t)) + 0.5))
}
