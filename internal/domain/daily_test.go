package domain

import (
	"testing"
	"time"
)

func TestDailyTitle(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{
			name:     "regular day",
			date:     time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC),
			expected: "August 29th, 2026",
		},
		{
			name:     "first of month",
			date:     time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			expected: "March 1st, 2026",
		},
		{
			name:     "second",
			date:     time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC),
			expected: "January 2nd, 2026",
		},
		{
			name:     "third",
			date:     time.Date(2026, time.July, 3, 0, 0, 0, 0, time.UTC),
			expected: "July 3rd, 2026",
		},
		{
			name:     "eleventh stays th",
			date:     time.Date(2026, time.April, 11, 0, 0, 0, 0, time.UTC),
			expected: "April 11th, 2026",
		},
		{
			name:     "twelfth stays th",
			date:     time.Date(2026, time.April, 12, 0, 0, 0, 0, time.UTC),
			expected: "April 12th, 2026",
		},
		{
			name:     "thirteenth stays th",
			date:     time.Date(2026, time.April, 13, 0, 0, 0, 0, time.UTC),
			expected: "April 13th, 2026",
		},
		{
			name:     "twenty-first",
			date:     time.Date(2026, time.December, 21, 0, 0, 0, 0, time.UTC),
			expected: "December 21st, 2026",
		},
		{
			name:     "thirty-first",
			date:     time.Date(2026, time.October, 31, 0, 0, 0, 0, time.UTC),
			expected: "October 31st, 2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DailyTitle(tt.date); got != tt.expected {
				t.Errorf("DailyTitle() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDailyUID(t *testing.T) {
	date := time.Date(2026, time.August, 29, 23, 59, 0, 0, time.UTC)
	if got := DailyUID(date); got != "08-29-2026" {
		t.Errorf("DailyUID() = %q, want %q", got, "08-29-2026")
	}

	date = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	if got := DailyUID(date); got != "01-05-2026" {
		t.Errorf("DailyUID() = %q, want %q", got, "01-05-2026")
	}
}
