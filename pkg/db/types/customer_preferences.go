package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/sunfieldhq/solarops-backend/pkg/enums"
)

// CustomerPreferences snapshots the scheduling preferences supplied with a
// proposal request.
type CustomerPreferences struct {
	PreferredDates     []string        `json:"preferred_dates,omitempty"`
	PreferredTimeOfDay enums.TimeOfDay `json:"preferred_time_of_day,omitempty"`
}

// Value implements driver.Valuer.
func (p CustomerPreferences) Value() (driver.Value, error) {
	encoded, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

// Scan implements sql.Scanner.
func (p *CustomerPreferences) Scan(src any) error {
	if src == nil {
		*p = CustomerPreferences{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported source type %T for CustomerPreferences", src)
	}
	if len(raw) == 0 {
		*p = CustomerPreferences{}
		return nil
	}
	return json.Unmarshal(raw, p)
}
