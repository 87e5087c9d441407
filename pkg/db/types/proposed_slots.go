package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ProposedSlot is one candidate window offered to the customer at proposal
// time. The snapshot is immutable once written; it exists only so the portal
// can render the original choices.
type ProposedSlot struct {
	InstallerID uuid.UUID `json:"installer_id"`
	Date        string    `json:"date"`
	WindowStart string    `json:"window_start"`
	WindowEnd   string    `json:"window_end"`
	CrewSize    int       `json:"crew_size"`
}

// ProposedSlots stores the ranked candidate snapshot as a JSON column.
type ProposedSlots []ProposedSlot

// Value implements driver.Valuer.
func (p ProposedSlots) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	encoded, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

// Scan implements sql.Scanner.
func (p *ProposedSlots) Scan(src any) error {
	if src == nil {
		*p = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported source type %T for ProposedSlots", src)
	}
	if len(raw) == 0 {
		*p = nil
		return nil
	}
	return json.Unmarshal(raw, p)
}
