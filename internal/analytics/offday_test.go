package analytics_test

import (
	"testing"

	"github.com/Tiliavir/typed-time-tracker/internal/analytics"
	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

func offDayStrings(set analytics.OffDays) []string {
	var out []string
	for _, d := range set.Sorted() {
		out = append(out, d.String())
	}
	return out
}

func TestResolveOffDays(t *testing.T) {
	tests := []struct {
		name    string
		entries []model.Entry
		want    []string
	}{
		{
			name:    "range across a month boundary",
			entries: []model.Entry{offDay("1", "2024-03-30", "2024-04-02", 0)},
			want:    []string{"2024-03-30", "2024-03-31", "2024-04-01", "2024-04-02"},
		},
		{
			name:    "range across a year boundary",
			entries: []model.Entry{offDay("1", "2023-12-31", "2024-01-01", 0)},
			want:    []string{"2023-12-31", "2024-01-01"},
		},
		{
			name:    "single day without end date",
			entries: []model.Entry{offDay("1", "2024-02-29", "", 0)},
			want:    []string{"2024-02-29"},
		},
		{
			name:    "start after end is empty",
			entries: []model.Entry{offDay("1", "2024-04-02", "2024-03-30", 0)},
			want:    nil,
		},
		{
			name:    "malformed bound is empty",
			entries: []model.Entry{offDay("1", "2024-04-02", "not-a-date", 0)},
			want:    nil,
		},
		{
			name: "overlapping ranges are unioned and timed entries ignored",
			entries: []model.Entry{
				offDay("1", "2024-05-01", "2024-05-02", 0),
				offDay("2", "2024-05-02", "2024-05-03", 0),
				timed("3", "A", "2024-05-04", 60),
			},
			want: []string{"2024-05-01", "2024-05-02", "2024-05-03"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := offDayStrings(analytics.ResolveOffDays(tt.entries))
			if !equalStrings(got, tt.want) {
				t.Errorf("ResolveOffDays = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeekFullyOff(t *testing.T) {
	set := analytics.ResolveOffDays([]model.Entry{offDay("1", "2024-01-07", "2024-01-13", 0)})

	w2, _ := timecalc.ParseWeekKey("2024-W02")
	if !set.WeekFullyOff(w2) {
		t.Error("2024-W02 should be fully off")
	}
	w3, _ := timecalc.ParseWeekKey("2024-W03")
	if set.WeekFullyOff(w3) {
		t.Error("2024-W03 should not be fully off")
	}

	partial := analytics.ResolveOffDays([]model.Entry{offDay("1", "2024-01-08", "2024-01-14", 0)})
	if partial.WeekFullyOff(w2) {
		t.Error("a Monday-to-Sunday range leaves the week's Sunday worked")
	}

	w1, _ := timecalc.ParseWeekKey("2024-W01")
	short := analytics.ResolveOffDays([]model.Entry{offDay("1", "2024-01-01", "2024-01-06", 0)})
	if !short.WeekFullyOff(w1) {
		t.Error("the six days of 2024-W01 are all off")
	}
}

func TestMonthFullyOff(t *testing.T) {
	set := analytics.ResolveOffDays([]model.Entry{offDay("1", "2024-02-01", "2024-02-29", 0)})
	feb, _ := timecalc.ParseMonthKey("2024-02")
	if !set.MonthFullyOff(feb) {
		t.Error("2024-02 should be fully off")
	}
	mar, _ := timecalc.ParseMonthKey("2024-03")
	if set.MonthFullyOff(mar) {
		t.Error("2024-03 should not be fully off")
	}
	if (analytics.OffDays{}).MonthFullyOff(feb) {
		t.Error("empty set reported a month fully off")
	}
}
