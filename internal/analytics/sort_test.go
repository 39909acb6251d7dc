package analytics_test

import (
	"testing"

	"github.com/Tiliavir/typed-time-tracker/internal/analytics"
	"github.com/Tiliavir/typed-time-tracker/internal/model"
)

func sortFixture() []model.Entry {
	e1 := timed("1", "B", "2024-01-02", 30)
	e1.Title, e1.StartTime, e1.EndTime = "charlie", "08:00", "08:30"
	e2 := timed("2", "A", "2024-01-01", 60)
	e2.Title, e2.StartTime, e2.EndTime = "Alpha", "13:00", "14:00"
	e3 := timed("3", "gone", "2024-01-02", 30)
	e3.Title, e3.StartTime, e3.EndTime = "bravo", "07:15", "07:45"
	e4 := timed("4", "A", "2024-01-01", 90)
	e4.Title, e4.StartTime, e4.EndTime = "delta", "09:00", "10:30"
	return []model.Entry{e1, e2, e3, e4}
}

func TestSort(t *testing.T) {
	tests := []struct {
		col  analytics.Column
		dir  analytics.Direction
		want []string
	}{
		{analytics.ColumnTitle, analytics.Ascending, []string{"2", "3", "1", "4"}},
		{analytics.ColumnTitle, analytics.Descending, []string{"4", "1", "3", "2"}},
		// missing type sorts as "", then "alpha" and "beta" case-insensitively.
		{analytics.ColumnType, analytics.Ascending, []string{"3", "2", "4", "1"}},
		{analytics.ColumnDate, analytics.Ascending, []string{"4", "2", "3", "1"}},
		{analytics.ColumnDate, analytics.Descending, []string{"1", "3", "2", "4"}},
		{analytics.ColumnStart, analytics.Ascending, []string{"3", "1", "4", "2"}},
		{analytics.ColumnEnd, analytics.Descending, []string{"2", "4", "1", "3"}},
		{analytics.ColumnDuration, analytics.Ascending, []string{"1", "3", "2", "4"}},
		{analytics.ColumnDuration, analytics.Descending, []string{"4", "2", "1", "3"}},
		{analytics.Column("colour"), analytics.Descending, []string{"1", "2", "3", "4"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.col)+"/"+tt.dir.String(), func(t *testing.T) {
			got := ids(analytics.Sort(sortFixture(), testTypes(), tt.col, tt.dir))
			if !equalStrings(got, tt.want) {
				t.Errorf("Sort(%s, %s) = %v, want %v", tt.col, tt.dir, got, tt.want)
			}
		})
	}
}

func TestSortIsStable(t *testing.T) {
	entries := []model.Entry{
		timed("first", "A", "2024-01-01", 45),
		timed("other", "A", "2024-01-01", 10),
		timed("second", "B", "2024-01-03", 45),
		timed("third", "A", "2024-01-02", 45),
	}
	asc := ids(analytics.Sort(entries, nil, analytics.ColumnDuration, analytics.Ascending))
	if want := []string{"other", "first", "second", "third"}; !equalStrings(asc, want) {
		t.Errorf("ascending = %v, want %v", asc, want)
	}
	desc := ids(analytics.Sort(entries, nil, analytics.ColumnDuration, analytics.Descending))
	if want := []string{"first", "second", "third", "other"}; !equalStrings(desc, want) {
		t.Errorf("descending = %v, want %v", desc, want)
	}
}

func TestSortReturnsCopy(t *testing.T) {
	entries := sortFixture()
	_ = analytics.Sort(entries, nil, analytics.ColumnTitle, analytics.Ascending)
	if got := ids(entries); !equalStrings(got, []string{"1", "2", "3", "4"}) {
		t.Errorf("input reordered: %v", got)
	}
}

func TestParseDirection(t *testing.T) {
	if d, _ := analytics.ParseDirection("DESC"); d != analytics.Descending {
		t.Error("DESC not parsed as descending")
	}
	if d, _ := analytics.ParseDirection(""); d != analytics.Ascending {
		t.Error("empty direction should be ascending")
	}
	if _, err := analytics.ParseDirection("up"); err == nil {
		t.Error("expected error")
	}
}
