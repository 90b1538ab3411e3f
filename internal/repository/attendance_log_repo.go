package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/naveen-dev-dotcom/attendance-app/internal/model"
)

// AttendanceLogRepository is the append-only audit sink. The
// reconciliation path only ever appends; ListBySession exists for the
// operator-facing audit endpoint.
type AttendanceLogRepository interface {
	Append(ctx context.Context, log *model.AttendanceLog) error
	ListBySession(ctx context.Context, sessionID string) ([]model.AttendanceLog, error)
}

type attendanceLogRepo struct {
	db *gorm.DB
}

func NewAttendanceLogRepo(db *gorm.DB) AttendanceLogRepository {
	return &attendanceLogRepo{db: db}
}

func (r *attendanceLogRepo) Append(ctx context.Context, log *model.AttendanceLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *attendanceLogRepo) ListBySession(ctx context.Context, sessionID string) ([]model.AttendanceLog, error) {
	var logs []model.AttendanceLog
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}
