package models

import (
	"github.com/google/uuid"

	"github.com/sunfieldhq/solarops-backend/pkg/enums"
)

// TimeWindow is one bookable span inside an availability slot. The booking
// reconciler is the only writer allowed to flip Status between available and
// booked; BoundProjectID identifies the owning project while booked.
type TimeWindow struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SlotID         uuid.UUID          `gorm:"column:slot_id;type:uuid;not null;index" json:"-"`
	Position       int                `gorm:"column:position;not null;default:0" json:"position"`
	StartTime      string             `gorm:"column:start_time;type:text;not null" json:"start"`
	EndTime        string             `gorm:"column:end_time;type:text;not null" json:"end"`
	Status         enums.WindowStatus `gorm:"column:status;type:text;not null;default:'available'" json:"status"`
	BoundProjectID *uuid.UUID         `gorm:"column:bound_project_id;type:uuid" json:"bound_project_id,omitempty"`
}
