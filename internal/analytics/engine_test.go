package analytics_test

import (
	"reflect"
	"testing"

	"github.com/Tiliavir/typed-time-tracker/internal/analytics"
	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

func TestEngineDayGraphEndToEnd(t *testing.T) {
	doc := model.Document{
		Types: testTypes(),
		Entries: []model.Entry{
			timed("a", "A", "2024-01-05", 60),
			timed("b", "B", "2024-01-08", 120),
		},
	}
	eng := analytics.New(doc, model.Filter{})

	got, err := eng.TimeGraph("day")
	if err != nil {
		t.Fatalf("TimeGraph: %v", err)
	}
	if want := []string{"2024-01-05", "2024-01-06", "2024-01-07", "2024-01-08"}; !equalStrings(recordKeys(got), want) {
		t.Fatalf("keys = %v, want %v", recordKeys(got), want)
	}
	if want := []int{60, 0, 0, 120}; !reflect.DeepEqual(recordTotals(got), want) {
		t.Errorf("totals = %v, want %v", recordTotals(got), want)
	}
	for _, r := range got {
		if _, ok := r.ByType[model.SystemOffDayTypeID]; ok {
			t.Errorf("%s: system type present in breakdown", r.Key)
		}
	}
}

func TestEngineUnknownView(t *testing.T) {
	eng := analytics.New(model.Document{}, model.Filter{})
	if _, err := eng.TimeGraph("quarter"); err == nil {
		t.Error("expected error for unknown view")
	}
	got, err := eng.TimeGraph("week")
	if err != nil || len(got) != 0 {
		t.Errorf("empty document week graph = %v, %v", got, err)
	}
}

func TestEngineAppliesFilterButKeepsOffDays(t *testing.T) {
	doc := model.Document{
		Types: testTypes(),
		Entries: []model.Entry{
			timed("1", "A", "2024-01-05", 60),
			timed("2", "B", "2024-01-06", 30),
			offDay("3", "2024-01-07", "", 480),
			timed("4", "A", "2024-01-08", 15),
		},
	}
	eng := analytics.New(doc, model.Filter{TypeID: "A"})

	if got := eng.TotalTime(); got != 75 {
		t.Errorf("TotalTime = %d, want 75", got)
	}
	if got := eng.TimePerType(); !reflect.DeepEqual(got, map[string]int{"A": 75}) {
		t.Errorf("TimePerType = %v", got)
	}
	got := eng.TimeGraphData(analytics.Daily)
	if want := []string{"2024-01-05", "2024-01-06", "2024-01-08"}; !equalStrings(recordKeys(got), want) {
		t.Errorf("keys = %v, want %v", recordKeys(got), want)
	}
	want := analytics.Summary{TotalMinutes: 75, DailyAverage: 38, WeeklyAverage: 38, EntryCount: 2}
	if s := eng.Summary(); s != want {
		t.Errorf("Summary = %+v, want %+v", s, want)
	}
}

func TestEngineSharesLabelsUnknownTypes(t *testing.T) {
	doc := model.Document{
		Types: testTypes(),
		Entries: []model.Entry{
			timed("1", "A", "2024-01-05", 30),
			timed("2", "deleted", "2024-01-05", 90),
		},
	}
	shares := analytics.New(doc, model.Filter{}).Shares()
	if len(shares) != 2 {
		t.Fatalf("got %d shares, want 2: %+v", len(shares), shares)
	}
	if shares[0].Name != "Alpha" || shares[0].Percent != 25 {
		t.Errorf("first share = %+v", shares[0])
	}
	if shares[1].Name != analytics.UnknownTypeName || shares[1].Minutes != 90 {
		t.Errorf("second share = %+v", shares[1])
	}
	if analytics.New(model.Document{}, model.Filter{}).Shares() != nil {
		t.Error("expected no shares without data")
	}
}

func TestEngineTrailingSeries(t *testing.T) {
	doc := model.Document{
		Types: testTypes(),
		Entries: []model.Entry{
			timed("1", "A", "2024-02-08", 30),
			timed("2", "B", "2024-02-10", 45),
			timed("3", "A", "2024-01-29", 10),
			offDay("4", "2024-02-12", "2024-02-13", 0),
		},
	}
	eng := analytics.New(doc, model.Filter{})
	today := timecalc.DayOf("2024-02-10")

	days := eng.LastNDays(3, today)
	if want := []string{"2024-02-08", "2024-02-09", "2024-02-10"}; !equalStrings(recordKeys(days), want) {
		t.Errorf("LastNDays keys = %v, want %v", recordKeys(days), want)
	}
	if want := []int{30, 0, 45}; !reflect.DeepEqual(recordTotals(days), want) {
		t.Errorf("LastNDays totals = %v, want %v", recordTotals(days), want)
	}

	weeks := eng.LastNWeeks(2, today)
	if want := []string{"2024-W05", "2024-W06"}; !equalStrings(recordKeys(weeks), want) {
		t.Errorf("LastNWeeks keys = %v, want %v", recordKeys(weeks), want)
	}

	month := eng.CurrentMonthDays(today)
	if len(month) != 27 {
		t.Errorf("CurrentMonthDays has %d records, want 27 (29 minus 2 off days)", len(month))
	}
	if month[0].Key != "2024-02-01" {
		t.Errorf("first day = %s", month[0].Key)
	}
}

func TestEngineSorted(t *testing.T) {
	doc := model.Document{Types: testTypes(), Entries: sortFixture()}
	got := ids(analytics.New(doc, model.Filter{TypeID: "A"}).Sorted(analytics.ColumnDuration, analytics.Descending))
	if want := []string{"4", "2"}; !equalStrings(got, want) {
		t.Errorf("Sorted = %v, want %v", got, want)
	}
}
