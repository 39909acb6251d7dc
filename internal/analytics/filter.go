// Package analytics turns a flat list of entries into calendar-bucketed,
// type-partitioned totals. Everything here is pure: callers pass the entries,
// types and filter explicitly and get fresh values back.
package analytics

import "github.com/Tiliavir/typed-time-tracker/internal/model"

// Filter returns the entries matching f. Bounds are inclusive and compared
// lexically on the zero-padded date. The input is not modified.
func Filter(entries []model.Entry, f model.Filter) []model.Entry {
	out := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if f.TypeID != "" && e.TypeIDOrEmpty() != f.TypeID {
			continue
		}
		if f.DateStart != "" && e.Date < f.DateStart {
			continue
		}
		if f.DateEnd != "" && e.Date > f.DateEnd {
			continue
		}
		out = append(out, e)
	}
	return out
}
