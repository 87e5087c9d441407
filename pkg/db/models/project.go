package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is the external pipeline entity an install is scheduled for. The
// scheduling core only checks existence and resolves customer ownership; the
// rest of the project lifecycle lives upstream.
type Project struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CustomerID  uuid.UUID `gorm:"column:customer_id;type:uuid;not null;index" json:"customer_id"`
	SiteAddress string    `gorm:"column:site_address;type:text;not null" json:"site_address"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
