package timecalc_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

func TestCalculateDuration(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"09:00", "10:30", 90},
		{"00:00", "23:59", 1439},
		{"22:00", "02:00", 240},
		{"23:30", "00:15", 45},
		{"08:00", "08:00", 1440},
		{"00:00", "00:00", 1440},
	}
	for _, tt := range tests {
		got, err := timecalc.CalculateDuration(tt.start, tt.end)
		if err != nil {
			t.Fatalf("CalculateDuration(%q, %q): %v", tt.start, tt.end, err)
		}
		if got != tt.want {
			t.Errorf("CalculateDuration(%q, %q) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestCalculateDurationRejectsBadClock(t *testing.T) {
	for _, in := range []string{"", "9:00", "24:00", "12:60", "ab:cd", "1200"} {
		if _, err := timecalc.CalculateDuration(in, "10:00"); err == nil {
			t.Errorf("CalculateDuration(%q, 10:00): expected error", in)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0h 0m"},
		{45, "0h 45m"},
		{60, "1h 0m"},
		{100, "1h 40m"},
		{1440, "24h 0m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDuration(tt.minutes)
		if got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatDates(t *testing.T) {
	if got := timecalc.FormatShortDate("2024-01-05"); got != "05/01/24" {
		t.Errorf("FormatShortDate = %q, want %q", got, "05/01/24")
	}
	if got := timecalc.FormatLongDate("2024-01-05"); got != "5 Jan 2024" {
		t.Errorf("FormatLongDate = %q, want %q", got, "5 Jan 2024")
	}
	if got := timecalc.FormatShortDate("garbage"); got != "garbage" {
		t.Errorf("FormatShortDate(garbage) = %q", got)
	}
}

// Golden values computed by hand from the week formula; they deliberately
// differ from ISO-8601 around the year boundary.
func TestWeekKeyOf(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2023-12-30", "2023-W52"},
		{"2023-12-31", "2023-W53"},
		{"2024-01-01", "2024-W01"},
		{"2024-01-06", "2024-W01"},
		{"2024-01-07", "2024-W02"},
		{"2024-03-15", "2024-W11"},
		{"2024-12-31", "2024-W53"},
		{"2025-01-01", "2025-W01"},
		{"2025-01-04", "2025-W01"},
		{"2025-01-05", "2025-W02"},
	}
	for _, tt := range tests {
		got := timecalc.WeekKeyOf(timecalc.DayOf(tt.date)).String()
		if got != tt.want {
			t.Errorf("WeekKeyOf(%s) = %s, want %s", tt.date, got, tt.want)
		}
	}
}

func TestWeekKeyOfInvalidDay(t *testing.T) {
	k := timecalc.WeekKeyOf(timecalc.DayOf("2024-13-01"))
	if k.IsValid() {
		t.Errorf("expected invalid key, got %s", k)
	}
	if k.String() != "invalid" {
		t.Errorf("String() = %q, want %q", k.String(), "invalid")
	}
}

func TestParseWeekKeyRoundTrip(t *testing.T) {
	for _, s := range []string{"2024-W01", "2023-W53", "1999-W10"} {
		k, err := timecalc.ParseWeekKey(s)
		if err != nil {
			t.Fatalf("ParseWeekKey(%q): %v", s, err)
		}
		if k.String() != s {
			t.Errorf("ParseWeekKey(%q).String() = %q", s, k.String())
		}
	}
	if _, err := timecalc.ParseWeekKey("2024-05"); err == nil {
		t.Error("expected error for month key")
	}
}

func TestWeekKeyDays(t *testing.T) {
	tests := []struct {
		key         string
		first, last string
		n           int
	}{
		{"2024-W01", "2024-01-01", "2024-01-06", 6},
		{"2024-W02", "2024-01-07", "2024-01-13", 7},
		{"2024-W53", "2024-12-29", "2024-12-31", 3},
		{"2025-W01", "2025-01-01", "2025-01-04", 4},
		{"2023-W53", "2023-12-31", "2023-12-31", 1},
	}
	for _, tt := range tests {
		k, _ := timecalc.ParseWeekKey(tt.key)
		days := k.Days()
		if len(days) != tt.n {
			t.Fatalf("%s: got %d days, want %d", tt.key, len(days), tt.n)
		}
		if days[0].String() != tt.first || days[len(days)-1].String() != tt.last {
			t.Errorf("%s: span %s..%s, want %s..%s", tt.key, days[0], days[len(days)-1], tt.first, tt.last)
		}
	}
}

func TestWeekKeyDaysMatchWeekKeyOf(t *testing.T) {
	first := timecalc.Date(2023, time.January, 1)
	for _, d := range timecalc.DaysBetween(first, timecalc.Date(2025, time.December, 31)) {
		k := timecalc.WeekKeyOf(d)
		found := false
		for _, wd := range k.Days() {
			if timecalc.WeekKeyOf(wd) != k {
				t.Fatalf("%s: day %s belongs to %s", k, wd, timecalc.WeekKeyOf(wd))
			}
			if wd == d {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s.Days() lacks %s", k, d)
		}
	}
}

func TestWeeksBetween(t *testing.T) {
	first, _ := timecalc.ParseWeekKey("2023-W51")
	last, _ := timecalc.ParseWeekKey("2024-W02")
	got := keysToStrings(timecalc.WeeksBetween(first, last))
	want := []string{"2023-W51", "2023-W52", "2024-W01", "2024-W02"}
	assertStrings(t, got, want)

	// The 53rd week of a non-final year is not enumerated.
	first, _ = timecalc.ParseWeekKey("2023-W53")
	last, _ = timecalc.ParseWeekKey("2024-W01")
	assertStrings(t, keysToStrings(timecalc.WeeksBetween(first, last)), []string{"2024-W01"})
}

func TestMonthKeys(t *testing.T) {
	k := timecalc.MonthKeyOf(timecalc.DayOf("2024-02-10"))
	if k.String() != "2024-02" {
		t.Errorf("MonthKeyOf = %s, want 2024-02", k)
	}
	if n := len(k.Days()); n != 29 {
		t.Errorf("2024-02 has %d days, want 29", n)
	}

	first, _ := timecalc.ParseMonthKey("2023-11")
	last, _ := timecalc.ParseMonthKey("2024-02")
	assertStrings(t, keysToStrings(timecalc.MonthsBetween(first, last)),
		[]string{"2023-11", "2023-12", "2024-01", "2024-02"})
}

func TestDaysBetween(t *testing.T) {
	got := keysToStrings(timecalc.DaysBetween(timecalc.DayOf("2024-02-28"), timecalc.DayOf("2024-03-01")))
	assertStrings(t, got, []string{"2024-02-28", "2024-02-29", "2024-03-01"})

	if got := timecalc.DaysBetween(timecalc.DayOf("2024-03-02"), timecalc.DayOf("2024-03-01")); got != nil {
		t.Errorf("reversed bounds: got %v, want nil", got)
	}
}

func TestGenerateID(t *testing.T) {
	a, b := timecalc.GenerateID(), timecalc.GenerateID()
	if len(a) != 36 {
		t.Errorf("GenerateID length = %d, want 36", len(a))
	}
	if a == b {
		t.Error("GenerateID returned the same id twice")
	}
}

func keysToStrings[K fmt.Stringer](keys []K) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

func assertStrings(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
