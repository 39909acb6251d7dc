package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Tiliavir/typed-time-tracker/internal/analytics"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

// Shares renders the per-type distribution as horizontal bars scaled to
// barWidth cells for 100%.
func Shares(shares []analytics.TypeShare, barWidth int) string {
	if len(shares) == 0 {
		return mutedStyle.Render("  No time recorded")
	}
	var rows []string
	for _, s := range shares {
		cells := int(s.Percent*float64(barWidth)/100 + 0.5)
		if cells == 0 && s.Minutes > 0 {
			cells = 1
		}
		bar := shareStyle(s.Color).Render(strings.Repeat("█", cells))
		rows = append(rows, fmt.Sprintf("  %s %-18s %s %5.1f%%  %s",
			TypeDot(s.Color), s.Name, bar+strings.Repeat(" ", barWidth-cells), s.Percent, timecalc.FormatDuration(s.Minutes)))
	}
	return strings.Join(rows, "\n")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
