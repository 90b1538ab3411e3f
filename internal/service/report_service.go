package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/naveen-dev-dotcom/attendance-app/internal/dto"
	"github.com/naveen-dev-dotcom/attendance-app/internal/repository"
)

// ── Reporting module business errors ──

var (
	ErrStudentNotFound        = errors.New("student not found")
	ErrMissingRangeParameters = errors.New("classId, fromDate and toDate are required")
)

// ReportService computes read-only aggregates over attendance sessions.
type ReportService interface {
	StudentHistory(ctx context.Context, studentID, classID string) (*dto.StudentHistoryResponse, error)
	RangeSummary(ctx context.Context, classID, fromDate, toDate string) (*dto.RangeSummaryResponse, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService creates a ReportService instance.
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// ────────────────────── StudentHistory ──────────────────────

func (s *reportService) StudentHistory(ctx context.Context, studentID, classID string) (*dto.StudentHistoryResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("lookup student failed", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	sessions, err := s.repo.Session.ListByFilter(ctx, classID, nil, nil)
	if err != nil {
		s.logger.Error("list sessions failed", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}

	// Sessions with no entry for this student do not count toward the
	// total; they are not absences.
	stats := dto.StudentStats{}
	absents := make([]dto.DatedReason, 0)
	ods := make([]dto.DatedReason, 0)

	for i := range sessions {
		session := &sessions[i]
		for _, entry := range session.Entries {
			if entry.RegNoSuffix != student.RegNoSuffix {
				continue
			}
			stats.Total++
			date := session.Date.Format(dateLayout)
			switch {
			case entry.OD:
				stats.ODCount++
				ods = append(ods, dto.DatedReason{Date: date, Reason: entry.Reason})
			case entry.Present:
				stats.PresentCount++
			default:
				absents = append(absents, dto.DatedReason{Date: date, Reason: entry.Reason})
			}
			break
		}
	}
	stats.AbsentCount = stats.Total - stats.PresentCount - stats.ODCount

	regNo := student.RegNoSuffix
	if student.Class != nil {
		regNo = student.Class.RegNoPrefix + student.RegNoSuffix
	}

	return &dto.StudentHistoryResponse{
		Student: dto.StudentIdentity{Name: student.Name, RegNo: regNo},
		Stats:   stats,
		Absents: absents,
		ODs:     ods,
	}, nil
}

// ────────────────────── RangeSummary ──────────────────────

func (s *reportService) RangeSummary(ctx context.Context, classID, fromDate, toDate string) (*dto.RangeSummaryResponse, error) {
	if classID == "" || fromDate == "" || toDate == "" {
		return nil, ErrMissingRangeParameters
	}

	from, err := parseDay(fromDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	to, err := parseDay(toDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	// Inclusive range: from the first day's start to the last day's end.
	start, _ := dayWindow(from)
	_, end := dayWindow(to)

	sessions, err := s.repo.Session.ListByClassAndRange(ctx, classID, start, end)
	if err != nil {
		s.logger.Error("list sessions failed", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}

	// Flatten every entry of every session and accumulate per suffix.
	// An OD entry carries present=true, so OD days count as presence
	// here, matching the per-student history percentages.
	type tally struct {
		presentCount int
		absentCount  int
		total        int
	}
	bySuffix := make(map[string]*tally)
	suffixes := make([]string, 0)

	for i := range sessions {
		for _, entry := range sessions[i].Entries {
			t, ok := bySuffix[entry.RegNoSuffix]
			if !ok {
				t = &tally{}
				bySuffix[entry.RegNoSuffix] = t
				suffixes = append(suffixes, entry.RegNoSuffix)
			}
			if entry.Present {
				t.presentCount++
			} else {
				t.absentCount++
			}
			t.total++
		}
	}

	// Resolve suffixes against the roster; unknown suffixes are
	// silently dropped from the report.
	students, err := s.repo.Student.ListByClassAndSuffixes(ctx, classID, suffixes)
	if err != nil {
		s.logger.Error("resolve students failed", zap.String("class_id", classID), zap.Error(err))
		return nil, err
	}

	prefix := ""
	if len(students) > 0 {
		class, err := s.repo.Class.GetByID(ctx, classID)
		if err != nil {
			s.logger.Error("lookup class failed", zap.String("class_id", classID), zap.Error(err))
			return nil, err
		}
		prefix = class.RegNoPrefix
	}

	report := make([]dto.StudentSummary, 0, len(students))
	totalPresent, totalAbsent := 0, 0
	for i := range students {
		student := &students[i]
		t := bySuffix[student.RegNoSuffix]
		if t == nil {
			t = &tally{}
		}
		report = append(report, dto.StudentSummary{
			StudentID:         student.StudentID,
			Name:              student.Name,
			RegNo:             prefix + student.RegNoSuffix,
			PresentCount:      t.presentCount,
			AbsentCount:       t.absentCount,
			TotalSessions:     t.total,
			PresentPercentage: percentage(t.presentCount, t.total),
			AbsentPercentage:  percentage(t.absentCount, t.total),
		})
		totalPresent += t.presentCount
		totalAbsent += t.absentCount
	}

	combined := totalPresent + totalAbsent

	return &dto.RangeSummaryResponse{
		OverallAttendance: dto.OverallAttendance{
			TotalPresent:          totalPresent,
			TotalAbsent:           totalAbsent,
			OverallPresentPercent: percentage(totalPresent, combined),
			OverallAbsentPercent:  percentage(totalAbsent, combined),
		},
		TopAbsent:  topBy(report, func(s *dto.StudentSummary) int { return s.AbsentCount }),
		TopPresent: topBy(report, func(s *dto.StudentSummary) int { return s.PresentCount }),
		FullReport: report,
	}, nil
}

// ── Helpers ──

// percentage renders count/total*100 with exactly two decimal digits,
// "0.00" when total is zero.
func percentage(count, total int) string {
	if total == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", float64(count)/float64(total)*100)
}

// topBy returns the five highest-keyed rows, stable so ties keep the
// original report order.
func topBy(report []dto.StudentSummary, key func(*dto.StudentSummary) int) []dto.StudentSummary {
	top := make([]dto.StudentSummary, len(report))
	copy(top, report)
	sort.SliceStable(top, func(i, j int) bool {
		return key(&top[i]) > key(&top[j])
	})
	if len(top) > 5 {
		top = top[:5]
	}
	return top
}
