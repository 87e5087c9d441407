package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sunfieldhq/solarops-backend/pkg/enums"
)

// ScheduleNotification is one entry in a schedule record's append-only
// notification log. The core never delivers anything; a downstream collaborator
// reads these (or the matching outbox events) and handles email/SMS.
type ScheduleNotification struct {
	ID         uuid.UUID                      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ScheduleID uuid.UUID                      `gorm:"column:schedule_id;type:uuid;not null;index" json:"-"`
	Type       enums.ScheduleNotificationType `gorm:"column:type;type:text;not null" json:"type"`
	Channel    enums.NotificationChannel      `gorm:"column:channel;type:text;not null" json:"channel"`
	Reason     *string                        `gorm:"column:reason;type:text" json:"reason,omitempty"`
	SentAt     time.Time                      `gorm:"column:sent_at;not null" json:"sent_at"`
}
