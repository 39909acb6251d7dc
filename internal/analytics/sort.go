package analytics

import (
	"cmp"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

// Column names a sortable column of the entry table.
type Column string

const (
	ColumnTitle    Column = "title"
	ColumnType     Column = "type"
	ColumnDate     Column = "date"
	ColumnStart    Column = "start"
	ColumnEnd      Column = "end"
	ColumnDuration Column = "duration"
)

// Direction is the sort order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// ParseDirection accepts "asc" or "desc"; empty means ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "", "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("unknown sort direction %q: want asc or desc", s)
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Sort returns a stably sorted copy of entries. The type column sorts by the
// resolved type name; entries whose type is missing sort as "". An unknown
// column returns the entries in their original order.
func Sort(entries []model.Entry, types []model.Type, col Column, dir Direction) []model.Entry {
	out := make([]model.Entry, len(entries))
	copy(out, entries)

	compare := comparator(col, types)
	if compare == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Descending {
			return compare(out[j], out[i]) < 0
		}
		return compare(out[i], out[j]) < 0
	})
	return out
}

func comparator(col Column, types []model.Type) func(a, b model.Entry) int {
	switch col {
	case ColumnTitle:
		return func(a, b model.Entry) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	case ColumnType:
		names := make(map[string]string, len(types))
		for _, t := range types {
			names[t.ID] = strings.ToLower(t.Name)
		}
		return func(a, b model.Entry) int {
			return strings.Compare(names[a.TypeIDOrEmpty()], names[b.TypeIDOrEmpty()])
		}
	case ColumnDate:
		return func(a, b model.Entry) int {
			return entryTime(a).Compare(entryTime(b))
		}
	case ColumnStart:
		return func(a, b model.Entry) int { return strings.Compare(a.StartTime, b.StartTime) }
	case ColumnEnd:
		return func(a, b model.Entry) int { return strings.Compare(a.EndTime, b.EndTime) }
	case ColumnDuration:
		return func(a, b model.Entry) int { return cmp.Compare(a.DurationMinutes, b.DurationMinutes) }
	}
	return nil
}

// entryTime combines date and start time. Unparseable values become the zero
// time.
func entryTime(e model.Entry) time.Time {
	start := e.StartTime
	if start == "" {
		start = "00:00"
	}
	t, err := time.Parse(timecalc.DateLayout+" "+timecalc.ClockLayout, e.Date+" "+start)
	if err != nil {
		return time.Time{}
	}
	return t
}
