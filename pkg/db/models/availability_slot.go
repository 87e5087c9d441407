package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sunfieldhq/solarops-backend/pkg/db/types"
)

// AvailabilitySlot is one installer's declared work capacity for one calendar
// date. installer_id+date is the upsert key.
type AvailabilitySlot struct {
	ID               uuid.UUID        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	InstallerID      uuid.UUID        `gorm:"column:installer_id;type:uuid;not null;uniqueIndex:ux_availability_installer_date" json:"installer_id"`
	Date             string           `gorm:"column:date;type:date;not null;uniqueIndex:ux_availability_installer_date" json:"date"`
	CrewSize         int              `gorm:"column:crew_size;not null;default:1" json:"crew_size"`
	ServiceAreaMiles int              `gorm:"column:service_area_miles;not null;default:0" json:"service_area_miles"`
	Equipment        types.StringList `gorm:"column:equipment;type:text" json:"equipment,omitempty"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Windows []TimeWindow `gorm:"foreignKey:SlotID;references:ID" json:"time_windows"`
}
