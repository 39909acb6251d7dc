package render

import (
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/typed-time-tracker/internal/analytics"
	"github.com/Tiliavir/typed-time-tracker/internal/model"
)

const (
	minChartWidth  = 20
	minChartHeight = 6
)

// TimeGraph draws records as stacked bars, one segment per type, in hours.
func TimeGraph(records []analytics.Record, types []model.Type, width, height int) string {
	if len(records) == 0 {
		return mutedStyle.Render("  No data for this period")
	}
	width = max(width, minChartWidth)
	height = max(height, minChartHeight)

	chart := barchart.New(width, height)
	bars := make([]barchart.BarData, 0, len(records))
	for _, r := range records {
		bars = append(bars, barchart.BarData{
			Label:  barLabel(r.Key),
			Values: barValues(r, types),
		})
	}
	chart.PushAll(bars)
	chart.Draw()

	return lipgloss.JoinVertical(lipgloss.Left, chart.View(), "", Legend(types))
}

func barValues(r analytics.Record, types []model.Type) []barchart.BarValue {
	var values []barchart.BarValue
	seen := map[string]bool{}
	push := func(id, name, color string) {
		seen[id] = true
		m := r.ByType[id]
		if m == 0 {
			return
		}
		values = append(values, barchart.BarValue{
			Name:  name,
			Value: float64(m) / 60,
			Style: lipgloss.NewStyle().Foreground(lipgloss.Color(color)),
		})
	}
	for _, t := range types {
		if !t.IsSystem {
			push(t.ID, t.Name, t.Color)
		}
	}
	for _, id := range sortedKeys(r.ByType) {
		if !seen[id] {
			push(id, analytics.UnknownTypeName, analytics.UnknownTypeColor)
		}
	}
	if len(values) == 0 {
		values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
	}
	return values
}

// barLabel shortens keys so bars stay narrow: 2024-03-15 becomes 03-15,
// 2024-W11 becomes W11 and 2024-03 stays as is.
func barLabel(key string) string {
	switch {
	case strings.Contains(key, "-W"):
		return key[strings.Index(key, "-W")+1:]
	case len(key) == len("2006-01-02"):
		return key[5:]
	}
	return key
}

// Legend lists the user types with their colors.
func Legend(types []model.Type) string {
	var items []string
	for _, t := range types {
		if t.IsSystem {
			continue
		}
		items = append(items, TypeDot(t.Color)+" "+t.Name)
	}
	if len(items) == 0 {
		return ""
	}
	return "  " + strings.Join(items, "  ")
}
