package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/naveen-dev-dotcom/attendance-app/config"
	"github.com/naveen-dev-dotcom/attendance-app/internal/dto"
	"github.com/naveen-dev-dotcom/attendance-app/internal/model"
	"github.com/naveen-dev-dotcom/attendance-app/internal/repository"
)

// ── Attendance module business errors ──

var (
	ErrDuplicateSubmission = errors.New("attendance already submitted, use edit")
	ErrEditWindowExpired   = errors.New("cannot edit attendance after the edit window")
	ErrInvalidDateFormat   = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrEntryInvalid        = errors.New("invalid attendance entries")
	ErrSessionNotFound     = errors.New("attendance session not found")
)

// SubmitLocker serializes submissions per (class, day) key. A nil
// locker means submissions race straight to the database, where the
// (class_id, date) uniqueness constraint is the backstop.
type SubmitLocker interface {
	WithSubmitLock(ctx context.Context, key string, ttl time.Duration, fn func() error) error
}

// AttendanceService is the reconciliation engine: it decides whether a
// submission creates a session or edits an existing one, enforces the
// edit window and writes the audit trail.
type AttendanceService interface {
	Submit(ctx context.Context, req *dto.SubmitAttendanceRequest, editor string) (*dto.SessionResponse, error)
	ListSessions(ctx context.Context, classID, date string) ([]dto.SessionResponse, error)
	ListAuditLog(ctx context.Context, sessionID string) ([]model.AttendanceLog, error)
}

type attendanceService struct {
	repo       *repository.Repository
	locker     SubmitLocker
	editWindow time.Duration
	lockTTL    time.Duration
	logger     *zap.Logger
}

// NewAttendanceService creates an AttendanceService instance.
func NewAttendanceService(cfg *config.Config, repo *repository.Repository, locker SubmitLocker, logger *zap.Logger) AttendanceService {
	lockTTL := cfg.Attendance.LockTTL
	if lockTTL <= 0 {
		lockTTL = 10 * time.Second
	}
	return &attendanceService{
		repo:       repo,
		locker:     locker,
		editWindow: cfg.Attendance.EditWindow,
		lockTTL:    lockTTL,
		logger:     logger,
	}
}

// ────────────────────── Submit ──────────────────────

func (s *attendanceService) Submit(ctx context.Context, req *dto.SubmitAttendanceRequest, editor string) (*dto.SessionResponse, error) {
	day, err := parseDay(req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	dayStart, dayEnd := dayWindow(day)

	entries, err := normalizeEntries(req.Attendance)
	if err != nil {
		return nil, err
	}

	var result *dto.SessionResponse
	submit := func() error {
		result, err = s.reconcile(ctx, req, dayStart, dayEnd, entries, editor)
		return err
	}

	if s.locker == nil {
		if err := submit(); err != nil {
			return nil, err
		}
		return result, nil
	}

	lockKey := fmt.Sprintf("%s:%s", req.ClassID, dayStart.Format(dateLayout))
	if err := s.locker.WithSubmitLock(ctx, lockKey, s.lockTTL, submit); err != nil {
		return nil, err
	}
	return result, nil
}

// reconcile runs the create-or-edit decision while the submit lock (if
// any) is held.
func (s *attendanceService) reconcile(
	ctx context.Context,
	req *dto.SubmitAttendanceRequest,
	dayStart, dayEnd time.Time,
	entries model.EntryList,
	editor string,
) (*dto.SessionResponse, error) {
	existing, err := s.repo.Session.FindByClassAndDay(ctx, req.ClassID, dayStart, dayEnd)
	if err != nil {
		s.logger.Error("lookup session failed", zap.String("class_id", req.ClassID), zap.Error(err))
		return nil, err
	}

	if existing != nil && !req.IsEdit {
		return nil, ErrDuplicateSubmission
	}

	if existing != nil {
		return s.edit(ctx, existing, req.Time, entries, editor)
	}

	return s.create(ctx, req.ClassID, dayStart, req.Time, entries, editor)
}

func (s *attendanceService) edit(
	ctx context.Context,
	session *model.AttendanceSession,
	timeLabel string,
	entries model.EntryList,
	editor string,
) (*dto.SessionResponse, error) {
	if time.Since(session.CreatedAt) > s.editWindow {
		return nil, ErrEditWindowExpired
	}

	// The pre-image is logged before the overwrite, so the audit entry
	// always reflects a state that was truly persisted.
	s.appendAudit(ctx, &model.AttendanceLog{
		SessionID: session.SessionID,
		Action:    model.AuditActionEdit,
		Before:    session.Entries,
		After:     entries,
		Editor:    editor,
	})

	session.Entries = entries
	session.TimeLabel = timeLabel
	session.LastEditedBy = &editor

	if err := s.repo.Session.Update(ctx, session); err != nil {
		s.logger.Error("update session failed", zap.String("session_id", session.SessionID), zap.Error(err))
		return nil, err
	}

	return toSessionResponse(session), nil
}

func (s *attendanceService) create(
	ctx context.Context,
	classID string,
	dayStart time.Time,
	timeLabel string,
	entries model.EntryList,
	editor string,
) (*dto.SessionResponse, error) {
	session := &model.AttendanceSession{
		ClassID:   classID,
		Date:      dayStart,
		TimeLabel: timeLabel,
		Entries:   entries,
		CreatedBy: editor,
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		// A lost create race trips the (class_id, date) unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSubmission
		}
		s.logger.Error("create session failed", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}

	s.appendAudit(ctx, &model.AttendanceLog{
		SessionID: session.SessionID,
		Action:    model.AuditActionCreate,
		Before:    nil,
		After:     entries,
		Editor:    editor,
	})

	return toSessionResponse(session), nil
}

// appendAudit writes one audit entry. Append failures never roll back
// the session write; they are surfaced in the operator log only.
func (s *attendanceService) appendAudit(ctx context.Context, log *model.AttendanceLog) {
	if err := s.repo.AttendanceLog.Append(ctx, log); err != nil {
		s.logger.Error("append audit log failed",
			zap.String("session_id", log.SessionID),
			zap.String("action", log.Action),
			zap.Error(err),
		)
	}
}

// ────────────────────── ListSessions ──────────────────────

func (s *attendanceService) ListSessions(ctx context.Context, classID, date string) ([]dto.SessionResponse, error) {
	var dayStart, dayEnd *time.Time
	if date != "" {
		day, err := parseDay(date)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		start, end := dayWindow(day)
		dayStart, dayEnd = &start, &end
	}

	sessions, err := s.repo.Session.ListByFilter(ctx, classID, dayStart, dayEnd)
	if err != nil {
		s.logger.Error("list sessions failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, *toSessionResponse(&sessions[i]))
	}
	return result, nil
}

// ────────────────────── ListAuditLog ──────────────────────

func (s *attendanceService) ListAuditLog(ctx context.Context, sessionID string) ([]model.AttendanceLog, error) {
	if _, err := s.repo.Session.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("lookup session failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	logs, err := s.repo.AttendanceLog.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("list audit log failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	return logs, nil
}

// ── Helpers ──

// normalizeEntries validates a submission and applies the status
// derivation rules: OD always counts as present, and a present entry
// carries no reason. A reason is mandatory for absent and OD entries.
func normalizeEntries(in []model.AttendanceEntry) (model.EntryList, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrEntryInvalid)
	}

	out := make(model.EntryList, len(in))
	seen := make(map[string]struct{}, len(in))
	for i, e := range in {
		if e.RegNoSuffix == "" {
			return nil, fmt.Errorf("%w: entry %d has no regNoSuffix", ErrEntryInvalid, i)
		}
		if _, dup := seen[e.RegNoSuffix]; dup {
			return nil, fmt.Errorf("%w: duplicate regNoSuffix %q", ErrEntryInvalid, e.RegNoSuffix)
		}
		seen[e.RegNoSuffix] = struct{}{}

		if e.OD {
			e.Present = true
		}
		if e.Present && !e.OD {
			e.Reason = ""
		} else if e.Reason == "" {
			return nil, fmt.Errorf("%w: entry %q requires a reason", ErrEntryInvalid, e.RegNoSuffix)
		}

		out[i] = e
	}
	return out, nil
}

func toSessionResponse(session *model.AttendanceSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:           session.SessionID,
		ClassID:      session.ClassID,
		Date:         session.Date.Format(dateLayout),
		Time:         session.TimeLabel,
		Attendance:   session.Entries,
		CreatedBy:    session.CreatedBy,
		LastEditedBy: session.LastEditedBy,
		CreatedAt:    session.CreatedAt.UTC().Format(time.RFC3339),
	}
}
