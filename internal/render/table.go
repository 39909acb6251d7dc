package render

import (
	"fmt"
	"strings"

	"github.com/Tiliavir/typed-time-tracker/internal/analytics"
	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

// EntryDate formats the date column: "dd/mm/yy" or a "dd/mm/yy - dd/mm/yy"
// range for multi-day off days.
func EntryDate(e model.Entry) string {
	if e.IsRange() {
		return timecalc.FormatShortDate(e.Date) + " - " + timecalc.FormatShortDate(e.EndDate)
	}
	return timecalc.FormatShortDate(e.Date)
}

// TypeOf returns the display name and color of an entry's type.
func TypeOf(e model.Entry, types []model.Type) (name, color string) {
	if e.IsOffDay {
		t := model.OffDayType()
		return t.Name, t.Color
	}
	id := e.TypeIDOrEmpty()
	for _, t := range types {
		if t.ID == id {
			return t.Name, t.Color
		}
	}
	return analytics.UnknownTypeName, analytics.UnknownTypeColor
}

// EntryTable renders entries one per row in the given order.
func EntryTable(entries []model.Entry, types []model.Type) string {
	if len(entries) == 0 {
		return mutedStyle.Render("No entries found.")
	}
	header := fmt.Sprintf("%-8s  %-19s  %-11s  %-8s  %-20s  %s", "ID", "Date", "Time", "Duration", "Type", "Title")
	rows := []string{
		mutedStyle.Render(header),
		mutedStyle.Render(strings.Repeat("─", len(header)+10)),
	}
	for _, e := range entries {
		name, color := TypeOf(e, types)
		clock, dur := e.StartTime+"–"+e.EndTime, timecalc.FormatDuration(e.DurationMinutes)
		if e.IsOffDay {
			clock, dur = "", "–"
			color = string(colorOff)
		}
		rows = append(rows, fmt.Sprintf("%-8s  %-19s  %-11s  %-8s  %s %-18s  %s",
			shortID(e.ID), EntryDate(e), clock, dur, TypeDot(color), name, e.Title))
	}
	return strings.Join(rows, "\n")
}

// shortID keeps ids readable; commands accept any unique prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
