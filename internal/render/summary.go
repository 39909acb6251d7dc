package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/typed-time-tracker/internal/analytics"
	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

// Summary renders the total, averages and entry count.
func Summary(s analytics.Summary) string {
	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		row("Total", timecalc.FormatDuration(s.TotalMinutes)),
		row("Daily average", timecalc.FormatDuration(s.DailyAverage)),
		row("Weekly average", timecalc.FormatDuration(s.WeeklyAverage)),
		row("Entries", fmt.Sprintf("%d", s.EntryCount)),
	)
}

// FilterLine describes the active filter, or "" when there is none.
func FilterLine(f model.Filter, types []model.Type) string {
	if f.IsZero() {
		return ""
	}
	var parts []string
	if f.TypeID != "" {
		name, _ := TypeOf(model.Entry{TypeID: &f.TypeID}, types)
		parts = append(parts, "type "+name)
	}
	if f.DateStart != "" {
		parts = append(parts, "from "+timecalc.FormatLongDate(f.DateStart))
	}
	if f.DateEnd != "" {
		parts = append(parts, "to "+timecalc.FormatLongDate(f.DateEnd))
	}
	return mutedStyle.Render("Filter: " + strings.Join(parts, ", "))
}

// Title renders a section heading.
func Title(s string) string { return titleStyle.Render(s) }
