package timecalc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	// DateLayout is the zero-padded calendar date format used in documents.
	DateLayout = "2006-01-02"
	// ClockLayout is the 24h wall-clock format used for start and end times.
	ClockLayout = "15:04"

	minutesPerDay = 24 * 60
)

// GenerateID returns a random UUID for a new entry or type.
func GenerateID() string {
	return uuid.NewString()
}

// ParseClock parses "HH:MM" and returns the minutes since midnight.
func ParseClock(s string) (int, error) {
	h, m, ok := strings.Cut(s, ":")
	if !ok || len(h) != 2 || len(m) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	hh, err := strconv.Atoi(h)
	if err != nil || hh < 0 || hh > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	mm, err := strconv.Atoi(m)
	if err != nil || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hh*60 + mm, nil
}

// CalculateDuration returns the minutes between two "HH:MM" times.
// An end at or before the start wraps past midnight, so equal times yield
// a full day (1440).
func CalculateDuration(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	d := e - s
	if d <= 0 {
		d += minutesPerDay
	}
	return d, nil
}

// FormatDuration formats minutes as "Xh Ym", e.g. "1h 40m" or "0h 45m".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatShortDate renders "2024-01-05" as "05/01/24". Unparseable input is
// returned unchanged.
func FormatShortDate(s string) string {
	d, err := ParseDay(s)
	if err != nil {
		return s
	}
	return d.time().Format("02/01/06")
}

// FormatLongDate renders "2024-01-05" as "5 Jan 2024".
func FormatLongDate(s string) string {
	d, err := ParseDay(s)
	if err != nil {
		return s
	}
	return d.time().Format("2 Jan 2006")
}
