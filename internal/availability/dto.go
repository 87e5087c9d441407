package availability

import (
	"github.com/google/uuid"

	"github.com/sunfieldhq/solarops-backend/pkg/db/types"
)

// WindowInput is one bookable span submitted by the installer.
type WindowInput struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// SetInput carries everything needed to (re)publish one installer-day.
type SetInput struct {
	InstallerID      uuid.UUID
	Date             string
	Windows          []WindowInput
	CrewSize         int
	ServiceAreaMiles int
	Equipment        types.StringList

	// Force reinitializes a day even when it still holds a booked window,
	// releasing that booking. Without it such a call fails with CONFLICT.
	Force bool
}

// RangeInput selects a date span of one installer's published days.
type RangeInput struct {
	InstallerID uuid.UUID
	StartDate   string
	EndDate     string
}
