package analytics

import (
	"sort"

	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

// Engine answers renderer queries for one snapshot of the document and
// filter. The filtered entries and the off-day set are computed once.
// An Engine is immutable and safe for concurrent use.
type Engine struct {
	types    []model.Type
	typeIDs  []string
	entries  []model.Entry
	filtered []model.Entry
	off      OffDays
}

// Summary holds the figures shown next to the charts.
type Summary struct {
	TotalMinutes  int `json:"totalMinutes" yaml:"totalMinutes"`
	DailyAverage  int `json:"dailyAverage" yaml:"dailyAverage"`
	WeeklyAverage int `json:"weeklyAverage" yaml:"weeklyAverage"`
	EntryCount    int `json:"entryCount" yaml:"entryCount"`
}

// New builds an Engine from doc narrowed by f. Off days are resolved from
// the whole document: they are calendar facts and stay hidden from the time
// axis whatever the filter.
func New(doc model.Document, f model.Filter) *Engine {
	e := &Engine{
		types:    doc.Types,
		entries:  doc.Entries,
		filtered: Filter(doc.Entries, f),
		off:      ResolveOffDays(doc.Entries),
	}
	for _, t := range doc.Types {
		if !t.IsSystem {
			e.typeIDs = append(e.typeIDs, t.ID)
		}
	}
	return e
}

// Entries returns the filtered entries in document order.
func (e *Engine) Entries() []model.Entry { return e.filtered }

// Types returns every type of the snapshot, system types included.
func (e *Engine) Types() []model.Type { return e.types }

// OffDays returns the resolved off-day set.
func (e *Engine) OffDays() OffDays { return e.off }

// TimeGraphData returns the gap-filled series for the granularity.
func (e *Engine) TimeGraphData(g Granularity) []Record {
	switch g {
	case Weekly:
		return FillWeeks(WeeklyTotalsByType(e.filtered), e.typeIDs, e.off)
	case Monthly:
		return FillMonths(MonthlyTotalsByType(e.filtered), e.typeIDs, e.off)
	default:
		return FillDays(DailyTotalsByType(e.filtered), e.typeIDs, e.off)
	}
}

// TimeGraph is TimeGraphData for a view name as sent by a renderer.
func (e *Engine) TimeGraph(view string) ([]Record, error) {
	g, err := ParseGranularity(view)
	if err != nil {
		return nil, err
	}
	return e.TimeGraphData(g), nil
}

func (e *Engine) TimePerType() map[string]int { return TimePerType(e.filtered) }
func (e *Engine) TotalTime() int              { return TotalTime(e.filtered) }
func (e *Engine) DailyAverage() int           { return DailyAverage(e.filtered) }
func (e *Engine) WeeklyAverage() int          { return WeeklyAverage(e.filtered) }
func (e *Engine) EntryCount() int             { return EntryCount(e.filtered) }

// Summary collects the summary figures.
func (e *Engine) Summary() Summary {
	return Summary{
		TotalMinutes:  e.TotalTime(),
		DailyAverage:  e.DailyAverage(),
		WeeklyAverage: e.WeeklyAverage(),
		EntryCount:    e.EntryCount(),
	}
}

// Sorted returns the filtered entries ordered by col.
func (e *Engine) Sorted(col Column, dir Direction) []model.Entry {
	return Sort(e.filtered, e.types, col, dir)
}

// LastNDays returns exactly n daily records ending today, gaps included.
func (e *Engine) LastNDays(n int, today timecalc.Day) []Record {
	byType := DailyTotalsByType(e.filtered)
	out := make([]Record, 0, n)
	for i := n - 1; i >= 0; i-- {
		d := today.AddDays(-i)
		out = append(out, record(d, byType[d], e.typeIDs))
	}
	return out
}

// LastNWeeks returns n weekly records, one per 7-day step back from today.
func (e *Engine) LastNWeeks(n int, today timecalc.Day) []Record {
	byType := WeeklyTotalsByType(e.filtered)
	out := make([]Record, 0, n)
	for i := n - 1; i >= 0; i-- {
		k := timecalc.WeekKeyOf(today.AddDays(-7 * i))
		out = append(out, record(k, byType[k], e.typeIDs))
	}
	return out
}

// CurrentMonthDays returns a record for every day of today's month, off
// days excepted.
func (e *Engine) CurrentMonthDays(today timecalc.Day) []Record {
	byType := DailyTotalsByType(e.filtered)
	out := []Record{}
	for _, d := range timecalc.MonthKeyOf(today).Days() {
		if e.off.Contains(d) {
			continue
		}
		out = append(out, record(d, byType[d], e.typeIDs))
	}
	return out
}

// TypeShare is one slice of the per-type distribution.
type TypeShare struct {
	TypeID  string  `json:"typeId" yaml:"typeId"`
	Name    string  `json:"name" yaml:"name"`
	Color   string  `json:"color" yaml:"color"`
	Minutes int     `json:"minutes" yaml:"minutes"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// Shares returns the non-zero per-type totals in type order, followed by
// any ids that no longer resolve to a type, labelled "Unknown".
func (e *Engine) Shares() []TypeShare {
	per := e.TimePerType()
	total := 0
	for _, m := range per {
		total += m
	}
	if total == 0 {
		return nil
	}
	var out []TypeShare
	seen := map[string]bool{}
	add := func(id, name, color string) {
		m := per[id]
		seen[id] = true
		if m == 0 {
			return
		}
		out = append(out, TypeShare{
			TypeID:  id,
			Name:    name,
			Color:   color,
			Minutes: m,
			Percent: float64(m) * 100 / float64(total),
		})
	}
	for _, t := range e.types {
		if !t.IsSystem {
			add(t.ID, t.Name, t.Color)
		}
	}
	unknown := make([]string, 0)
	for id := range per {
		if !seen[id] {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		add(id, UnknownTypeName, UnknownTypeColor)
	}
	return out
}

const (
	// UnknownTypeName labels entries whose type no longer exists.
	UnknownTypeName  = "Unknown"
	UnknownTypeColor = "#94a3b8"
)
