package domain

import (
	"fmt"
	"time"
)

// DailyTitle returns the journal page title for a date, e.g.
// "August 29th, 2026". This matches the Roam-style daily note convention.
// Parameters:
//   - t: date to derive the title from (only the calendar day matters).
// Returns:
//   - string: page title.
func DailyTitle(t time.Time) string {
	return fmt.Sprintf("%s %s, %d", t.Month().String(), ordinal(t.Day()), t.Year())
}

// DailyUID returns the journal page UID for a date, e.g. "08-29-2026".
// Parameters:
//   - t: date to derive the UID from.
// Returns:
//   - string: page UID.
func DailyUID(t time.Time) string {
	return t.Format("01-02-2006")
}

// ordinal renders a day of month with its English ordinal suffix.
// 11, 12 and 13 take "th" regardless of the last digit.
func ordinal(day int) string {
	suffix := "th"
	if day%100 < 11 || day%100 > 13 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", day, suffix)
}
