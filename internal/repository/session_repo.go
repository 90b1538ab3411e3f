package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/naveen-dev-dotcom/attendance-app/internal/model"
)

// SessionRepository is the attendance-session access interface. All day
// windows are half-open [dayStart, dayEnd).
type SessionRepository interface {
	Create(ctx context.Context, session *model.AttendanceSession) error
	GetByID(ctx context.Context, id string) (*model.AttendanceSession, error)
	// FindByClassAndDay returns nil (no error) when no session exists.
	FindByClassAndDay(ctx context.Context, classID string, dayStart, dayEnd time.Time) (*model.AttendanceSession, error)
	ListByClassAndRange(ctx context.Context, classID string, start, end time.Time) ([]model.AttendanceSession, error)
	ListByFilter(ctx context.Context, classID string, dayStart, dayEnd *time.Time) ([]model.AttendanceSession, error)
	Update(ctx context.Context, session *model.AttendanceSession) error
}

type sessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.AttendanceSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.AttendanceSession, error) {
	var session model.AttendanceSession
	err := r.db.WithContext(ctx).
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) FindByClassAndDay(ctx context.Context, classID string, dayStart, dayEnd time.Time) (*model.AttendanceSession, error) {
	var session model.AttendanceSession
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND date >= ? AND date < ?", classID, dayStart, dayEnd).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) ListByClassAndRange(ctx context.Context, classID string, start, end time.Time) ([]model.AttendanceSession, error) {
	var sessions []model.AttendanceSession
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND date >= ? AND date < ?", classID, start, end).
		Order("date ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) ListByFilter(ctx context.Context, classID string, dayStart, dayEnd *time.Time) ([]model.AttendanceSession, error) {
	var sessions []model.AttendanceSession
	q := r.db.WithContext(ctx).Model(&model.AttendanceSession{})
	if classID != "" {
		q = q.Where("class_id = ?", classID)
	}
	if dayStart != nil && dayEnd != nil {
		q = q.Where("date >= ? AND date < ?", *dayStart, *dayEnd)
	}
	err := q.Order("date ASC").Find(&sessions).Error
	return sessions, err
}

// Update replaces the mutable fields of a session. CreatedAt and
// CreatedBy are deliberately untouched: the edit window is measured
// from the original creation time.
func (r *sessionRepo) Update(ctx context.Context, session *model.AttendanceSession) error {
	return r.db.WithContext(ctx).
		Model(session).
		Where("session_id = ?", session.SessionID).
		Updates(map[string]interface{}{
			"entries":        session.Entries,
			"time_label":     session.TimeLabel,
			"last_edited_by": session.LastEditedBy,
		}).Error
}
