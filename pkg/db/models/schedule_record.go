package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sunfieldhq/solarops-backend/pkg/db/types"
	"github.com/sunfieldhq/solarops-backend/pkg/enums"
)

// ScheduleRecord tracks one install attempt for a project. A project
// accumulates records over reschedules; superseded records stay behind with a
// terminal status for audit and carry a back-reference chain.
type ScheduleRecord struct {
	ID               uuid.UUID                 `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProjectID        uuid.UUID                 `gorm:"column:project_id;type:uuid;not null;index" json:"project_id"`
	PermitID         string                    `gorm:"column:permit_id;type:text;not null" json:"permit_id"`
	InstallerID      *uuid.UUID                `gorm:"column:installer_id;type:uuid;index" json:"installer_id,omitempty"`
	Date             *string                   `gorm:"column:date;type:date" json:"date,omitempty"`
	WindowStart      *string                   `gorm:"column:window_start;type:text" json:"window_start,omitempty"`
	WindowEnd        *string                   `gorm:"column:window_end;type:text" json:"window_end,omitempty"`
	Status           enums.ScheduleStatus      `gorm:"column:status;type:text;not null;default:'proposed'" json:"status"`
	ProposedSlots    types.ProposedSlots       `gorm:"column:proposed_slots;type:text" json:"proposed_slots"`
	Crew             types.StringList          `gorm:"column:crew;type:text" json:"crew,omitempty"`
	Preferences      types.CustomerPreferences `gorm:"column:preferences;type:text" json:"customer_preferences"`
	RescheduledFrom  *uuid.UUID                `gorm:"column:rescheduled_from_id;type:uuid" json:"rescheduled_from_id,omitempty"`
	CancelReason     *string                   `gorm:"column:cancel_reason;type:text" json:"cancel_reason,omitempty"`
	RescheduleReason *string                   `gorm:"column:reschedule_reason;type:text" json:"reschedule_reason,omitempty"`
	CreatedAt        time.Time                 `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time                 `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Notifications []ScheduleNotification `gorm:"foreignKey:ScheduleID;references:ID" json:"customer_notifications"`
}
