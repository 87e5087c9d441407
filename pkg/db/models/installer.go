package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sunfieldhq/solarops-backend/pkg/db/types"
)

// Installer is a crew operator that publishes day-level availability.
type Installer struct {
	ID               uuid.UUID        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name             string           `gorm:"column:name;type:text;not null" json:"name"`
	ServiceAreaMiles int              `gorm:"column:service_area_miles;not null;default:0" json:"service_area_miles"`
	Equipment        types.StringList `gorm:"column:equipment;type:text" json:"equipment,omitempty"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
