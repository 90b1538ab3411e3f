package model

import "time"

// AttendanceSession is one class's attendance record for one calendar
// day. Date is stored at day granularity; the unique (class_id, date)
// constraint enforces at most one session per class per day.
type AttendanceSession struct {
	SessionID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"        json:"session_id"`
	ClassID      string    `gorm:"type:uuid;not null;uniqueIndex:uq_sessions_class_date" json:"class_id"`
	Date         time.Time `gorm:"type:date;not null;uniqueIndex:uq_sessions_class_date" json:"date"`
	TimeLabel    string    `gorm:"type:varchar(50);not null;default:''"                  json:"time_label"`
	Entries      EntryList `gorm:"type:jsonb;not null"                                   json:"entries"`
	CreatedBy    string    `gorm:"type:varchar(100);not null"                            json:"created_by"`
	LastEditedBy *string   `gorm:"type:varchar(100)"                                     json:"last_edited_by,omitempty"`
	BaseModel

	Class *Class `gorm:"foreignKey:ClassID;references:ClassID" json:"class,omitempty"`
}

// TableName sets the table name.
func (AttendanceSession) TableName() string { return "attendance_sessions" }
