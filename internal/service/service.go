package service

import (
	"go.uber.org/zap"

	"github.com/naveen-dev-dotcom/attendance-app/config"
	"github.com/naveen-dev-dotcom/attendance-app/internal/repository"
	"github.com/naveen-dev-dotcom/attendance-app/pkg/jwt"
	"github.com/naveen-dev-dotcom/attendance-app/pkg/redis"
)

// Service aggregates all business services.
type Service struct {
	Auth       AuthService
	Class      ClassService
	Student    StudentService
	Attendance AttendanceService
	Report     ReportService
	Export     ExportService
}

// NewService wires the service aggregate. rdb may be nil; auth then
// skips token blacklisting and submissions fall back to the database
// uniqueness constraint alone.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	var blacklist TokenBlacklist
	var locker SubmitLocker
	if rdb != nil {
		blacklist = rdb
		locker = rdb
	}

	report := NewReportService(repo, logger)

	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, blacklist, logger),
		Class:      NewClassService(repo, logger),
		Student:    NewStudentService(repo, logger),
		Attendance: NewAttendanceService(cfg, repo, locker, logger),
		Report:     report,
		Export:     NewExportService(repo, report, logger),
	}
}
