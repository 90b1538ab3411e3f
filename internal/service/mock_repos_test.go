package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/naveen-dev-dotcom/attendance-app/internal/model"
)

// ── Mock AdminRepository ──

type mockAdminRepo struct {
	admins    map[string]*model.Admin
	createErr error
}

func newMockAdminRepo() *mockAdminRepo {
	return &mockAdminRepo{admins: make(map[string]*model.Admin)}
}

func (m *mockAdminRepo) Create(_ context.Context, admin *model.Admin) error {
	if m.createErr != nil {
		return m.createErr
	}
	if admin.AdminID == "" {
		admin.AdminID = "admin-" + admin.Username
	}
	for _, a := range m.admins {
		if a.Username == admin.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	m.admins[admin.AdminID] = admin
	return nil
}

func (m *mockAdminRepo) GetByID(_ context.Context, id string) (*model.Admin, error) {
	if a, ok := m.admins[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByUsername(_ context.Context, username string) (*model.Admin, error) {
	for _, a := range m.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	if a, ok := m.admins[id]; ok {
		a.PasswordHash = passwordHash
		return nil
	}
	return gorm.ErrRecordNotFound
}

// ── Mock ClassRepository ──

type mockClassRepo struct {
	classes map[string]*model.Class
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{classes: make(map[string]*model.Class)}
}

func (m *mockClassRepo) Create(_ context.Context, class *model.Class) error {
	if class.ClassID == "" {
		class.ClassID = "class-" + class.Name
	}
	m.classes[class.ClassID] = class
	return nil
}

func (m *mockClassRepo) GetByID(_ context.Context, id string) (*model.Class, error) {
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) List(_ context.Context) ([]model.Class, error) {
	var result []model.Class
	for _, c := range m.classes {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
	seq      int
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	for _, s := range m.students {
		if s.ClassID == student.ClassID && s.RegNoSuffix == student.RegNoSuffix {
			return gorm.ErrDuplicatedKey
		}
	}
	if student.StudentID == "" {
		m.seq++
		student.StudentID = fmt.Sprintf("student-%d", m.seq)
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) BatchCreate(ctx context.Context, students []model.Student) error {
	for i := range students {
		if err := m.Create(ctx, &students[i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, classID string) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		if classID != "" && s.ClassID != classID {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RegNoSuffix < result[j].RegNoSuffix })
	return result, nil
}

func (m *mockStudentRepo) ListByClassAndSuffixes(_ context.Context, classID string, suffixes []string) ([]model.Student, error) {
	wanted := make(map[string]bool, len(suffixes))
	for _, s := range suffixes {
		wanted[s] = true
	}
	var result []model.Student
	for _, s := range m.students {
		if s.ClassID == classID && wanted[s.RegNoSuffix] {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RegNoSuffix < result[j].RegNoSuffix })
	return result, nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions  map[string]*model.AttendanceSession
	seq       int
	createErr error
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.AttendanceSession)}
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.AttendanceSession) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, s := range m.sessions {
		if s.ClassID == session.ClassID && s.Date.Equal(session.Date) {
			return gorm.ErrDuplicatedKey
		}
	}
	m.seq++
	session.SessionID = fmt.Sprintf("sess-%d", m.seq)
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.AttendanceSession, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) FindByClassAndDay(_ context.Context, classID string, dayStart, dayEnd time.Time) (*model.AttendanceSession, error) {
	for _, s := range m.sessions {
		if s.ClassID == classID && !s.Date.Before(dayStart) && s.Date.Before(dayEnd) {
			return s, nil
		}
	}
	return nil, nil
}

func (m *mockSessionRepo) ListByClassAndRange(_ context.Context, classID string, start, end time.Time) ([]model.AttendanceSession, error) {
	var result []model.AttendanceSession
	for _, s := range m.sessions {
		if s.ClassID == classID && !s.Date.Before(start) && s.Date.Before(end) {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockSessionRepo) ListByFilter(_ context.Context, classID string, dayStart, dayEnd *time.Time) ([]model.AttendanceSession, error) {
	var result []model.AttendanceSession
	for _, s := range m.sessions {
		if classID != "" && s.ClassID != classID {
			continue
		}
		if dayStart != nil && dayEnd != nil {
			if s.Date.Before(*dayStart) || !s.Date.Before(*dayEnd) {
				continue
			}
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockSessionRepo) Update(_ context.Context, session *model.AttendanceSession) error {
	stored, ok := m.sessions[session.SessionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Entries = session.Entries
	stored.TimeLabel = session.TimeLabel
	stored.LastEditedBy = session.LastEditedBy
	return nil
}

// ── Mock AttendanceLogRepository ──

type mockAttendanceLogRepo struct {
	logs      []model.AttendanceLog
	appendErr error
}

func newMockAttendanceLogRepo() *mockAttendanceLogRepo {
	return &mockAttendanceLogRepo{}
}

func (m *mockAttendanceLogRepo) Append(_ context.Context, log *model.AttendanceLog) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	log.LogID = fmt.Sprintf("log-%d", len(m.logs)+1)
	log.CreatedAt = time.Now()
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockAttendanceLogRepo) ListBySession(_ context.Context, sessionID string) ([]model.AttendanceLog, error) {
	var result []model.AttendanceLog
	for _, l := range m.logs {
		if l.SessionID == sessionID {
			result = append(result, l)
		}
	}
	return result, nil
}

// ── Mock SubmitLocker ──

type mockLocker struct {
	calls int
	keys  []string
}

func (m *mockLocker) WithSubmitLock(_ context.Context, key string, _ time.Duration, fn func() error) error {
	m.calls++
	m.keys = append(m.keys, key)
	return fn()
}
