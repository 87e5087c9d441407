package enums

import "testing"

func TestScheduleStatusTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from    ScheduleStatus
		to      ScheduleStatus
		allowed bool
	}{
		{ScheduleStatusProposed, ScheduleStatusCustomerConfirmed, true},
		{ScheduleStatusProposed, ScheduleStatusInstallerConfirmed, true},
		{ScheduleStatusProposed, ScheduleStatusBothConfirmed, false},
		{ScheduleStatusProposed, ScheduleStatusCancelled, true},
		{ScheduleStatusProposed, ScheduleStatusRescheduled, true},
		{ScheduleStatusProposed, ScheduleStatusInProgress, false},

		{ScheduleStatusCustomerConfirmed, ScheduleStatusCustomerConfirmed, true},
		{ScheduleStatusCustomerConfirmed, ScheduleStatusBothConfirmed, true},
		{ScheduleStatusCustomerConfirmed, ScheduleStatusInstallerConfirmed, false},
		{ScheduleStatusInstallerConfirmed, ScheduleStatusBothConfirmed, true},
		{ScheduleStatusInstallerConfirmed, ScheduleStatusCustomerConfirmed, false},

		{ScheduleStatusBothConfirmed, ScheduleStatusInProgress, true},
		{ScheduleStatusBothConfirmed, ScheduleStatusCustomerConfirmed, false},
		{ScheduleStatusBothConfirmed, ScheduleStatusCompleted, false},
		{ScheduleStatusBothConfirmed, ScheduleStatusRescheduled, true},
		{ScheduleStatusBothConfirmed, ScheduleStatusCancelled, true},

		{ScheduleStatusInProgress, ScheduleStatusCompleted, true},
		{ScheduleStatusInProgress, ScheduleStatusBothConfirmed, false},

		{ScheduleStatusCompleted, ScheduleStatusCancelled, false},
		{ScheduleStatusCancelled, ScheduleStatusProposed, false},
		{ScheduleStatusRescheduled, ScheduleStatusCancelled, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestScheduleStatusClassification(t *testing.T) {
	t.Parallel()

	terminal := []ScheduleStatus{ScheduleStatusCompleted, ScheduleStatusCancelled, ScheduleStatusRescheduled}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
		if s.IsActive() {
			t.Errorf("%s should not be active", s)
		}
	}

	holding := []ScheduleStatus{ScheduleStatusBothConfirmed, ScheduleStatusInProgress, ScheduleStatusCompleted}
	for _, s := range holding {
		if !s.HoldsBooking() {
			t.Errorf("%s should hold its booking", s)
		}
	}
	if ScheduleStatusProposed.HoldsBooking() {
		t.Error("proposed must not hold a booking")
	}
}

func TestParseScheduleStatus(t *testing.T) {
	t.Parallel()

	status, err := ParseScheduleStatus("both_confirmed")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if status != ScheduleStatusBothConfirmed {
		t.Fatalf("unexpected status: %s", status)
	}
	if _, err := ParseScheduleStatus("scheduled"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
