package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ── PostgreSQL JSONB custom type ──

// AttendanceEntry is one student's mark inside a session. The JSON field
// names are the wire contract and must not change.
type AttendanceEntry struct {
	RegNoSuffix string `json:"regNoSuffix"`
	Present     bool   `json:"present"`
	OD          bool   `json:"od"`
	Reason      string `json:"reason,omitempty"`
}

// EntryList maps a JSONB column to []AttendanceEntry, implementing the
// GORM Scanner/Valuer interfaces.
type EntryList []AttendanceEntry

// Scan parses a JSONB value returned by PostgreSQL.
func (e *EntryList) Scan(src interface{}) error {
	if src == nil {
		*e = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("EntryList.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(b, e)
}

// Value serializes the list as JSONB.
func (e EntryList) Value() (driver.Value, error) {
	if e == nil {
		return nil, nil
	}
	return json.Marshal(e)
}

// BaseModel carries the audit timestamps every table has.
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}
