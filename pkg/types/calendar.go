package types

import (
	"fmt"
	"time"
)

// Wire formats for calendar values. Dates carry no time component and clock
// values no date, per the scheduling API contract.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate validates a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q (want YYYY-MM-DD)", value)
	}
	return t, nil
}

// ValidDate reports whether value is a well-formed calendar date.
func ValidDate(value string) bool {
	_, err := ParseDate(value)
	return err == nil
}

// ValidClock reports whether value is a well-formed HH:MM 24-hour clock value.
func ValidClock(value string) bool {
	_, err := time.Parse(ClockLayout, value)
	return err == nil
}

// ClockBefore reports whether a sorts strictly before b. Both operands must be
// valid clock values; ISO ordering makes the lexical comparison chronological.
func ClockBefore(a, b string) bool {
	return a < b
}

// FormatDate renders t as a wire date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays shifts a wire date by the given number of calendar days.
func AddDays(date string, days int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, days)), nil
}

// Noon is the boundary the matcher uses to split morning and afternoon windows.
const Noon = "12:00"
