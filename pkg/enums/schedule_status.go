package enums

import "fmt"

// ScheduleStatus tracks one install attempt through its confirmation lifecycle.
type ScheduleStatus string

const (
	ScheduleStatusProposed           ScheduleStatus = "proposed"
	ScheduleStatusCustomerConfirmed  ScheduleStatus = "customer_confirmed"
	ScheduleStatusInstallerConfirmed ScheduleStatus = "installer_confirmed"
	ScheduleStatusBothConfirmed      ScheduleStatus = "both_confirmed"
	ScheduleStatusInProgress         ScheduleStatus = "in_progress"
	ScheduleStatusCompleted          ScheduleStatus = "completed"
	ScheduleStatusRescheduled        ScheduleStatus = "rescheduled"
	ScheduleStatusCancelled          ScheduleStatus = "cancelled"
)

var validScheduleStatuses = []ScheduleStatus{
	ScheduleStatusProposed,
	ScheduleStatusCustomerConfirmed,
	ScheduleStatusInstallerConfirmed,
	ScheduleStatusBothConfirmed,
	ScheduleStatusInProgress,
	ScheduleStatusCompleted,
	ScheduleStatusRescheduled,
	ScheduleStatusCancelled,
}

// activeScheduleStatuses are the states an install still counts as upcoming in.
var activeScheduleStatuses = []ScheduleStatus{
	ScheduleStatusProposed,
	ScheduleStatusCustomerConfirmed,
	ScheduleStatusInstallerConfirmed,
	ScheduleStatusBothConfirmed,
	ScheduleStatusInProgress,
}

// String implements fmt.Stringer.
func (s ScheduleStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ScheduleStatus.
func (s ScheduleStatus) IsValid() bool {
	for _, candidate := range validScheduleStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition may leave this status.
func (s ScheduleStatus) IsTerminal() bool {
	return s == ScheduleStatusCompleted || s == ScheduleStatusCancelled || s == ScheduleStatusRescheduled
}

// IsActive reports whether the status counts toward upcoming installs.
func (s ScheduleStatus) IsActive() bool {
	for _, candidate := range activeScheduleStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// HoldsBooking reports whether a record in this status may own a booked window.
func (s ScheduleStatus) HoldsBooking() bool {
	switch s {
	case ScheduleStatusBothConfirmed, ScheduleStatusInProgress, ScheduleStatusCompleted:
		return true
	}
	return false
}

// ActiveScheduleStatuses returns the set used by upcoming-install queries.
func ActiveScheduleStatuses() []ScheduleStatus {
	out := make([]ScheduleStatus, len(activeScheduleStatuses))
	copy(out, activeScheduleStatuses)
	return out
}

// CanTransitionTo validates a single edge of the confirmation state machine.
// Reschedule and cancel exits from any pre-completion state are encoded here;
// bilateral confirmation edges are resolved by the scheduling service before
// this check runs.
func (s ScheduleStatus) CanTransitionTo(next ScheduleStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch next {
	case ScheduleStatusRescheduled, ScheduleStatusCancelled:
		return true
	case ScheduleStatusCustomerConfirmed, ScheduleStatusInstallerConfirmed:
		return s == ScheduleStatusProposed || s == next
	case ScheduleStatusBothConfirmed:
		return s == ScheduleStatusCustomerConfirmed || s == ScheduleStatusInstallerConfirmed
	case ScheduleStatusInProgress:
		return s == ScheduleStatusBothConfirmed
	case ScheduleStatusCompleted:
		return s == ScheduleStatusInProgress
	}
	return false
}

// ParseScheduleStatus converts raw input into a ScheduleStatus.
func ParseScheduleStatus(value string) (ScheduleStatus, error) {
	for _, candidate := range validScheduleStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid schedule status %q", value)
}
