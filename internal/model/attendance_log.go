package model

import "time"

// Audit actions recorded for attendance sessions.
const (
	AuditActionCreate = "create"
	AuditActionEdit   = "edit"
)

// AttendanceLog is one append-only audit record for a session create or
// edit. Before is null for creates. Rows are never updated or read back
// by the reconciliation path.
type AttendanceLog struct {
	LogID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"log_id"`
	SessionID string    `gorm:"type:uuid;not null;index"                       json:"session_id"`
	Action    string    `gorm:"type:varchar(20);not null"                      json:"action"`
	Before    EntryList `gorm:"type:jsonb"                                     json:"before,omitempty"`
	After     EntryList `gorm:"type:jsonb;not null"                            json:"after"`
	Editor    string    `gorm:"type:varchar(100);not null"                     json:"editor"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (AttendanceLog) TableName() string { return "attendance_logs" }
