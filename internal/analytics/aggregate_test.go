package analytics_test

import (
	"testing"

	"github.com/Tiliavir/typed-time-tracker/internal/analytics"
	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

func TestTotalsAreConservedAcrossGroupings(t *testing.T) {
	fixtures := map[string][]model.Entry{
		"empty": nil,
		"single": {
			timed("1", "A", "2024-01-05", 60),
		},
		"year boundary": {
			timed("1", "A", "2023-12-30", 15),
			timed("2", "B", "2023-12-31", 45),
			timed("3", "A", "2024-01-01", 120),
			timed("4", "A", "2024-01-01", 5),
			timed("5", "missing", "2024-02-29", 1440),
		},
		"sparse": {
			timed("1", "A", "2024-03-01", 10),
			timed("2", "B", "2024-07-14", 20),
			timed("3", "B", "2025-01-02", 30),
		},
	}
	for name, entries := range fixtures {
		t.Run(name, func(t *testing.T) {
			total := analytics.TotalTime(entries)
			daily := analytics.DailyTotals(entries).Sum()
			weekly := analytics.WeeklyTotals(entries).Sum()
			monthly := analytics.MonthlyTotals(entries).Sum()
			perType := 0
			for _, m := range analytics.TimePerType(entries) {
				perType += m
			}
			if daily != total || weekly != total || monthly != total || perType != total {
				t.Errorf("total=%d daily=%d weekly=%d monthly=%d perType=%d", total, daily, weekly, monthly, perType)
			}
		})
	}
}

func TestOffDaysContributeNothing(t *testing.T) {
	entries := []model.Entry{
		timed("1", "A", "2024-01-05", 60),
		offDay("2", "2024-01-06", "", 480),
	}

	if got := analytics.TotalTime(entries); got != 60 {
		t.Errorf("TotalTime = %d, want 60", got)
	}
	daily := analytics.DailyTotals(entries)
	if _, ok := daily[timecalc.DayOf("2024-01-06")]; ok {
		t.Error("off day produced a daily bucket")
	}
	if len(daily) != 1 {
		t.Errorf("DailyTotals has %d buckets, want 1", len(daily))
	}
	perType := analytics.TimePerType(entries)
	if _, ok := perType[model.SystemOffDayTypeID]; ok {
		t.Error("off day produced a type bucket")
	}
	byType := analytics.DailyTotalsByType(entries)
	for day, types := range byType {
		if _, ok := types[model.SystemOffDayTypeID]; ok {
			t.Errorf("off day type bucket on %s", day)
		}
	}
	if got := analytics.EntryCount(entries); got != 1 {
		t.Errorf("EntryCount = %d, want 1", got)
	}
}

func TestTotalsByType(t *testing.T) {
	entries := []model.Entry{
		timed("1", "A", "2024-01-05", 60),
		timed("2", "A", "2024-01-05", 30),
		timed("3", "B", "2024-01-05", 15),
		timed("4", "B", "2024-01-20", 10),
	}
	daily := analytics.DailyTotalsByType(entries)
	jan5 := daily[timecalc.DayOf("2024-01-05")]
	if jan5["A"] != 90 || jan5["B"] != 15 {
		t.Errorf("2024-01-05 = %v, want A:90 B:15", jan5)
	}

	weekly := analytics.WeeklyTotalsByType(entries)
	keys := weekly.Keys()
	if len(keys) != 2 || keys[0].String() != "2024-W01" || keys[1].String() != "2024-W03" {
		t.Errorf("weekly keys = %v, want [2024-W01 2024-W03]", keys)
	}

	monthly := analytics.MonthlyTotalsByType(entries)
	jan, _ := timecalc.ParseMonthKey("2024-01")
	if monthly[jan]["B"] != 25 {
		t.Errorf("2024-01 B = %d, want 25", monthly[jan]["B"])
	}
}

func TestMalformedDatesLandInInvalidBucket(t *testing.T) {
	entries := []model.Entry{
		timed("1", "A", "2024-01-05", 60),
		timed("2", "A", "2024-13-40", 30),
	}
	daily := analytics.DailyTotals(entries)
	if daily[timecalc.Day{}] != 30 {
		t.Errorf("invalid bucket = %d, want 30", daily[timecalc.Day{}])
	}
	keys := daily.Keys()
	if keys[len(keys)-1].String() != "invalid" {
		t.Errorf("invalid bucket should sort last, got %v", keys)
	}
	if daily.Sum() != analytics.TotalTime(entries) {
		t.Error("invalid dates broke conservation")
	}
}

func TestAverages(t *testing.T) {
	tests := []struct {
		name          string
		entries       []model.Entry
		daily, weekly int
	}{
		{"empty", nil, 0, 0},
		{
			name: "rounds half up",
			entries: []model.Entry{
				timed("1", "A", "2024-01-08", 60),
				timed("2", "A", "2024-01-08", 30),
				timed("3", "B", "2024-01-09", 45),
			},
			daily:  68,
			weekly: 135,
		},
		{
			name: "two weeks",
			entries: []model.Entry{
				timed("1", "A", "2024-01-02", 100),
				timed("2", "A", "2024-01-09", 51),
			},
			daily:  76,
			weekly: 76,
		},
		{
			name: "off days do not count as buckets",
			entries: []model.Entry{
				timed("1", "A", "2024-01-02", 100),
				offDay("2", "2024-01-03", "2024-01-20", 480),
			},
			daily:  100,
			weekly: 100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analytics.DailyAverage(tt.entries); got != tt.daily {
				t.Errorf("DailyAverage = %d, want %d", got, tt.daily)
			}
			if got := analytics.WeeklyAverage(tt.entries); got != tt.weekly {
				t.Errorf("WeeklyAverage = %d, want %d", got, tt.weekly)
			}
		})
	}
}
