package analytics

import (
	"fmt"

	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

// Granularity is the bucket size of a time series.
type Granularity string

const (
	Daily   Granularity = "day"
	Weekly  Granularity = "week"
	Monthly Granularity = "month"
)

// ParseGranularity accepts "day", "week" or "month".
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case Daily, Weekly, Monthly:
		return g, nil
	}
	return "", fmt.Errorf("unknown view %q: want day, week or month", s)
}

// Record is one point of a gap-filled series.
type Record struct {
	Key    string         `json:"key" yaml:"key"`
	Total  int            `json:"total" yaml:"total"`
	// ByType may hold ids of deleted types; renderers stack them as "Unknown".
	ByType map[string]int `json:"byType" yaml:"byType"`
}

// FillDays returns one record per calendar day from the first to the last
// observed day, skipping off days.
func FillDays(byType TotalsByType[timecalc.Day], typeIDs []string, off OffDays) []Record {
	first, last, ok := bounds(byType)
	if !ok {
		return []Record{}
	}
	out := []Record{}
	for _, d := range timecalc.DaysBetween(first, last) {
		if off.Contains(d) {
			continue
		}
		out = append(out, record(d, byType[d], typeIDs))
	}
	return out
}

// FillWeeks returns one record per week key from the first to the last
// observed week, skipping weeks that are entirely off.
func FillWeeks(byType TotalsByType[timecalc.WeekKey], typeIDs []string, off OffDays) []Record {
	first, last, ok := bounds(byType)
	if !ok {
		return []Record{}
	}
	out := []Record{}
	for _, k := range timecalc.WeeksBetween(first, last) {
		if off.WeekFullyOff(k) {
			continue
		}
		out = append(out, record(k, byType[k], typeIDs))
	}
	return out
}

// FillMonths returns one record per month from the first to the last
// observed month, skipping months that are entirely off.
func FillMonths(byType TotalsByType[timecalc.MonthKey], typeIDs []string, off OffDays) []Record {
	first, last, ok := bounds(byType)
	if !ok {
		return []Record{}
	}
	out := []Record{}
	for _, k := range timecalc.MonthsBetween(first, last) {
		if off.MonthFullyOff(k) {
			continue
		}
		out = append(out, record(k, byType[k], typeIDs))
	}
	return out
}

// bounds returns the first and last valid keys. Entries with malformed dates
// never widen the series.
func bounds[K Key](t TotalsByType[K]) (first, last K, ok bool) {
	for _, k := range t.Keys() {
		if !k.IsValid() {
			continue
		}
		if !ok {
			first, ok = k, true
		}
		last = k
	}
	return first, last, ok
}

// record builds a series point. Every id in typeIDs is present with at least
// 0 minutes; observed ids outside typeIDs are kept so totals stay whole.
func record[K Key](key K, buckets map[string]int, typeIDs []string) Record {
	r := Record{Key: key.String(), ByType: make(map[string]int, len(typeIDs)+len(buckets))}
	for _, id := range typeIDs {
		r.ByType[id] = 0
	}
	for id, m := range buckets {
		r.ByType[id] += m
		r.Total += m
	}
	return r
}
