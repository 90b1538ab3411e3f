package dto

import "github.com/naveen-dev-dotcom/attendance-app/internal/model"

// ── Attendance module DTOs ──
//
// Field names here are the wire contract consumed by the existing
// frontend and must stay exactly as written.

// SubmitAttendanceRequest records (or edits) one class's attendance for
// one calendar day.
type SubmitAttendanceRequest struct {
	ClassID    string                  `json:"classId"    binding:"required,uuid"`
	Date       string                  `json:"date"       binding:"required"` // "2006-01-02"
	Time       string                  `json:"time"`                          // free-text submission time label
	Attendance []model.AttendanceEntry `json:"attendance" binding:"required"`
	IsEdit     bool                    `json:"isEdit"`
}

// SessionResponse is one persisted attendance session.
type SessionResponse struct {
	ID           string                  `json:"_id"`
	ClassID      string                  `json:"classId"`
	Date         string                  `json:"date"`
	Time         string                  `json:"time"`
	Attendance   []model.AttendanceEntry `json:"attendance"`
	CreatedBy    string                  `json:"createdBy"`
	LastEditedBy *string                 `json:"lastEditedBy,omitempty"`
	CreatedAt    string                  `json:"createdAt"`
}
