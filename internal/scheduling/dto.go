package scheduling

import (
	"github.com/google/uuid"

	dbtypes "github.com/sunfieldhq/solarops-backend/pkg/db/types"
	"github.com/sunfieldhq/solarops-backend/pkg/enums"
)

// ProposeInput starts a new install attempt once a permit is approved upstream.
type ProposeInput struct {
	ProjectID   uuid.UUID
	PermitID    string
	Preferences dbtypes.CustomerPreferences
}

// ConfirmInput records one side of the bilateral confirmation.
type ConfirmInput struct {
	ScheduleID  uuid.UUID
	ConfirmedBy enums.ConfirmParty
}

// RescheduleInput moves an install attempt to a new installer-day/window.
type RescheduleInput struct {
	ScheduleID  uuid.UUID
	InstallerID uuid.UUID
	NewDate     string
	WindowStart string
	WindowEnd   string
	Reason      string
}

// CancelInput terminates an install attempt.
type CancelInput struct {
	ScheduleID uuid.UUID
	Reason     string
}

// AssignCrewInput names the workers sent to a confirmed install.
type AssignCrewInput struct {
	ScheduleID uuid.UUID
	Crew       []string
}

// UpcomingInput selects an installer's active installs from today forward.
type UpcomingInput struct {
	InstallerID uuid.UUID
	Limit       int
}
