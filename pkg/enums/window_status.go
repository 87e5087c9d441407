package enums

import "fmt"

// WindowStatus tracks the occupancy of a single availability time window.
type WindowStatus string

const (
	WindowStatusAvailable WindowStatus = "available"
	WindowStatusBooked    WindowStatus = "booked"
	WindowStatusBlocked   WindowStatus = "blocked"
)

var validWindowStatuses = []WindowStatus{
	WindowStatusAvailable,
	WindowStatusBooked,
	WindowStatusBlocked,
}

// IsValid reports whether the value is a known WindowStatus.
func (w WindowStatus) IsValid() bool {
	for _, candidate := range validWindowStatuses {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWindowStatus converts raw input into a WindowStatus.
func ParseWindowStatus(value string) (WindowStatus, error) {
	for _, candidate := range validWindowStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid window status %q", value)
}
