package enums

import "fmt"

// TimeOfDay captures a customer's coarse window preference.
type TimeOfDay string

const (
	TimeOfDayAny       TimeOfDay = "any"
	TimeOfDayMorning   TimeOfDay = "morning"
	TimeOfDayAfternoon TimeOfDay = "afternoon"
)

// IsValid reports whether the value is a known TimeOfDay.
func (t TimeOfDay) IsValid() bool {
	return t == TimeOfDayAny || t == TimeOfDayMorning || t == TimeOfDayAfternoon
}

// ParseTimeOfDay converts raw input into a TimeOfDay; empty means any.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	if value == "" {
		return TimeOfDayAny, nil
	}
	switch TimeOfDay(value) {
	case TimeOfDayAny, TimeOfDayMorning, TimeOfDayAfternoon:
		return TimeOfDay(value), nil
	}
	return "", fmt.Errorf("invalid time of day %q", value)
}
