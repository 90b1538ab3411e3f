package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/naveen-dev-dotcom/attendance-app/internal/repository"
)

// ── Export module business errors ──

var (
	ErrExportNoSessions   = errors.New("no attendance sessions to export")
	ErrExportGenerateFail = errors.New("generate export file failed")
)

// ExportService renders reports as downloadable files. Results are
// returned as buffers; the handler sets the HTTP headers and streams.
type ExportService interface {
	// RangeSummaryXLSX renders the range summary as an .xlsx workbook.
	RangeSummaryXLSX(ctx context.Context, classID, fromDate, toDate string) (*bytes.Buffer, string, error)
	// SessionCalendarICS renders a class's session days as an iCalendar feed.
	SessionCalendarICS(ctx context.Context, classID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo    *repository.Repository
	reports ReportService
	logger  *zap.Logger
}

// NewExportService creates an ExportService instance.
func NewExportService(repo *repository.Repository, reports ReportService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, reports: reports, logger: logger}
}

// ────────────────────── RangeSummaryXLSX ──────────────────────

func (s *exportService) RangeSummaryXLSX(ctx context.Context, classID, fromDate, toDate string) (*bytes.Buffer, string, error) {
	summary, err := s.reports.RangeSummary(ctx, classID, fromDate, toDate)
	if err != nil {
		return nil, "", err
	}

	class, err := s.repo.Class.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrClassNotFound
		}
		s.logger.Error("lookup class failed", zap.String("class_id", classID), zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Attendance Summary"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "B", 24)
	f.SetColWidth(sheetName, "C", "G", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — attendance %s to %s", class.Name, fromDate, toDate))
	f.MergeCell(sheetName, "A1", "G1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	headers := []string{"Reg No", "Name", "Present", "Absent", "Sessions", "Present %", "Absent %"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, fmt.Sprintf("%s2", col), h)
	}

	row := 3
	for _, st := range summary.FullReport {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), st.RegNo)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), st.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), st.PresentCount)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), st.AbsentCount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), st.TotalSessions)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), st.PresentPercentage)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), st.AbsentPercentage)
		row++
	}

	row++
	overall := summary.OverallAttendance
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Overall")
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), overall.TotalPresent)
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), overall.TotalAbsent)
	f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), overall.OverallPresentPercent)
	f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), overall.OverallAbsentPercent)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write excel failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("attendance_%s_%s_%s.xlsx", class.Name, fromDate, toDate)
	return buf, filename, nil
}

// ────────────────────── SessionCalendarICS ──────────────────────

func (s *exportService) SessionCalendarICS(ctx context.Context, classID string) (*bytes.Buffer, string, error) {
	class, err := s.repo.Class.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrClassNotFound
		}
		s.logger.Error("lookup class failed", zap.String("class_id", classID), zap.Error(err))
		return nil, "", err
	}

	sessions, err := s.repo.Session.ListByFilter(ctx, classID, nil, nil)
	if err != nil {
		s.logger.Error("list sessions failed", zap.String("class_id", classID), zap.Error(err))
		return nil, "", err
	}
	if len(sessions) == 0 {
		return nil, "", ErrExportNoSessions
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//attendance-app//EN")

	for i := range sessions {
		session := &sessions[i]
		present, absent := 0, 0
		for _, entry := range session.Entries {
			if entry.Present {
				present++
			} else {
				absent++
			}
		}

		event := cal.AddEvent(fmt.Sprintf("%s@attendance-app", session.SessionID))
		event.SetCreatedTime(session.CreatedAt)
		event.SetDtStampTime(session.CreatedAt)
		event.SetAllDayStartAt(session.Date)
		event.SetAllDayEndAt(session.Date.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("Attendance: %s (%d present, %d absent)", class.Name, present, absent))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("attendance_%s.ics", class.Name)
	return buf, filename, nil
}
