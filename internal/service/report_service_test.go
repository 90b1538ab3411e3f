package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/naveen-dev-dotcom/attendance-app/internal/model"
	"github.com/naveen-dev-dotcom/attendance-app/internal/repository"
)

// ── Test helpers ──

func setupTestReportService() (ReportService, *repository.Repository, *mockSessionRepo, *mockStudentRepo) {
	sessionRepo := newMockSessionRepo()
	studentRepo := newMockStudentRepo()
	classRepo := newMockClassRepo()
	repo := &repository.Repository{
		Admin:         newMockAdminRepo(),
		Class:         classRepo,
		Student:       studentRepo,
		Session:       sessionRepo,
		AttendanceLog: newMockAttendanceLogRepo(),
	}
	svc := NewReportService(repo, zap.NewNop())
	return svc, repo, sessionRepo, studentRepo
}

func seedClass(repo *repository.Repository) *model.Class {
	class := &model.Class{ClassID: "class-1", Name: "3rd Year CSE-B", RegNoPrefix: "20CS"}
	repo.Class.Create(context.Background(), class)
	return class
}

func seedStudent(studentRepo *mockStudentRepo, class *model.Class, id, suffix, name string) *model.Student {
	student := &model.Student{
		StudentID:   id,
		ClassID:     class.ClassID,
		RegNoSuffix: suffix,
		Name:        name,
		Class:       class,
	}
	studentRepo.students[id] = student
	return student
}

func addSession(sessionRepo *mockSessionRepo, day time.Time, entries model.EntryList) {
	sessionRepo.seq++
	id := fmt.Sprintf("sess-%d", sessionRepo.seq)
	sessionRepo.sessions[id] = &model.AttendanceSession{
		SessionID: id,
		ClassID:   "class-1",
		Date:      day,
		Entries:   entries,
		CreatedBy: "naveen",
	}
}

// ── StudentHistory ──

func TestReportService_StudentHistory_ODScenario(t *testing.T) {
	svc, repo, sessionRepo, studentRepo := setupTestReportService()
	class := seedClass(repo)
	seedStudent(studentRepo, class, "student-c", "103", "Charlie")

	addSession(sessionRepo, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), model.EntryList{
		{RegNoSuffix: "101", Present: true},
		{RegNoSuffix: "102", Present: false, Reason: "sick"},
		{RegNoSuffix: "103", Present: true, OD: true, Reason: "fest"},
	})

	result, err := svc.StudentHistory(context.Background(), "student-c", "class-1")
	if err != nil {
		t.Fatalf("StudentHistory should succeed: %v", err)
	}

	if result.Student.Name != "Charlie" {
		t.Errorf("expected name Charlie, got %s", result.Student.Name)
	}
	if result.Student.RegNo != "20CS103" {
		t.Errorf("expected regNo 20CS103, got %s", result.Student.RegNo)
	}
	if result.Stats.Total != 1 || result.Stats.PresentCount != 0 || result.Stats.ODCount != 1 || result.Stats.AbsentCount != 0 {
		t.Errorf("expected total=1 present=0 od=1 absent=0, got %+v", result.Stats)
	}
	if len(result.ODs) != 1 || result.ODs[0].Reason != "fest" || result.ODs[0].Date != "2026-03-02" {
		t.Errorf("expected one OD day with reason fest, got %+v", result.ODs)
	}
	if len(result.Absents) != 0 {
		t.Errorf("expected no absences, got %+v", result.Absents)
	}
}

func TestReportService_StudentHistory_SkipsUnmatchedSessions(t *testing.T) {
	svc, repo, sessionRepo, studentRepo := setupTestReportService()
	class := seedClass(repo)
	seedStudent(studentRepo, class, "student-a", "101", "Alice")

	addSession(sessionRepo, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), model.EntryList{
		{RegNoSuffix: "101", Present: true},
	})
	// Alice is missing from this one; it must not count as an absence.
	addSession(sessionRepo, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), model.EntryList{
		{RegNoSuffix: "102", Present: true},
	})

	result, err := svc.StudentHistory(context.Background(), "student-a", "class-1")
	if err != nil {
		t.Fatalf("StudentHistory should succeed: %v", err)
	}
	if result.Stats.Total != 1 {
		t.Errorf("unmatched session must not count, got total=%d", result.Stats.Total)
	}
	if result.Stats.AbsentCount != 0 {
		t.Errorf("unmatched session is not an absence, got absent=%d", result.Stats.AbsentCount)
	}
}

func TestReportService_StudentHistory_CountsRoundTrip(t *testing.T) {
	svc, repo, sessionRepo, studentRepo := setupTestReportService()
	class := seedClass(repo)
	seedStudent(studentRepo, class, "student-a", "101", "Alice")

	days := []struct {
		day   int
		entry model.AttendanceEntry
	}{
		{2, model.AttendanceEntry{RegNoSuffix: "101", Present: true}},
		{3, model.AttendanceEntry{RegNoSuffix: "101", Present: false, Reason: "sick"}},
		{4, model.AttendanceEntry{RegNoSuffix: "101", Present: true, OD: true, Reason: "fest"}},
		{5, model.AttendanceEntry{RegNoSuffix: "101", Present: true}},
		{6, model.AttendanceEntry{RegNoSuffix: "101", Present: false, Reason: "travel"}},
	}
	for _, d := range days {
		addSession(sessionRepo, time.Date(2026, 3, d.day, 0, 0, 0, 0, time.UTC), model.EntryList{d.entry})
	}

	result, err := svc.StudentHistory(context.Background(), "student-a", "class-1")
	if err != nil {
		t.Fatalf("StudentHistory should succeed: %v", err)
	}

	stats := result.Stats
	if stats.PresentCount+stats.AbsentCount+stats.ODCount != stats.Total {
		t.Errorf("counts must sum to total: %+v", stats)
	}
	if stats.Total != 5 || stats.PresentCount != 2 || stats.AbsentCount != 2 || stats.ODCount != 1 {
		t.Errorf("expected total=5 present=2 absent=2 od=1, got %+v", stats)
	}
	if len(result.Absents) != 2 || len(result.ODs) != 1 {
		t.Errorf("detail lists out of step with counters: absents=%d ods=%d", len(result.Absents), len(result.ODs))
	}
}

func TestReportService_StudentHistory_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestReportService()

	_, err := svc.StudentHistory(context.Background(), "nonexistent", "class-1")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound, got: %v", err)
	}
}

// ── RangeSummary ──

func TestReportService_RangeSummary_MissingParameters(t *testing.T) {
	svc, _, _, _ := setupTestReportService()

	cases := []struct{ classID, from, to string }{
		{"", "2026-03-01", "2026-03-31"},
		{"class-1", "", "2026-03-31"},
		{"class-1", "2026-03-01", ""},
	}
	for _, tc := range cases {
		_, err := svc.RangeSummary(context.Background(), tc.classID, tc.from, tc.to)
		if !errors.Is(err, ErrMissingRangeParameters) {
			t.Errorf("expected ErrMissingRangeParameters for %+v, got: %v", tc, err)
		}
	}
}

func TestReportService_RangeSummary_InvalidDate(t *testing.T) {
	svc, _, _, _ := setupTestReportService()

	_, err := svc.RangeSummary(context.Background(), "class-1", "bad", "2026-03-31")
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("expected ErrInvalidDateFormat, got: %v", err)
	}
}

func TestReportService_RangeSummary_EmptyWindow(t *testing.T) {
	svc, _, _, _ := setupTestReportService()

	result, err := svc.RangeSummary(context.Background(), "class-1", "2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("RangeSummary should succeed on an empty window: %v", err)
	}

	if result.OverallAttendance.OverallPresentPercent != "0.00" {
		t.Errorf("expected 0.00 overall percent, got %s", result.OverallAttendance.OverallPresentPercent)
	}
	if len(result.FullReport) != 0 {
		t.Errorf("expected empty fullReport, got %d rows", len(result.FullReport))
	}
	if len(result.TopAbsent) != 0 || len(result.TopPresent) != 0 {
		t.Error("rankings should be empty for an empty window")
	}
}

func TestReportService_RangeSummary_Computes(t *testing.T) {
	svc, repo, sessionRepo, studentRepo := setupTestReportService()
	class := seedClass(repo)
	seedStudent(studentRepo, class, "student-a", "101", "Alice")
	seedStudent(studentRepo, class, "student-b", "102", "Bob")

	addSession(sessionRepo, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), model.EntryList{
		{RegNoSuffix: "101", Present: true},
		{RegNoSuffix: "102", Present: false, Reason: "sick"},
	})
	addSession(sessionRepo, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), model.EntryList{
		{RegNoSuffix: "101", Present: false, Reason: "late"},
		// OD day: present=true post-normalization, counts as presence.
		{RegNoSuffix: "102", Present: true, OD: true, Reason: "fest"},
	})

	result, err := svc.RangeSummary(context.Background(), "class-1", "2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("RangeSummary should succeed: %v", err)
	}

	if len(result.FullReport) != 2 {
		t.Fatalf("expected 2 report rows, got %d", len(result.FullReport))
	}

	alice := result.FullReport[0]
	if alice.RegNo != "20CS101" {
		t.Fatalf("fullReport should be ordered by suffix, got %s first", alice.RegNo)
	}
	if alice.PresentCount != 1 || alice.AbsentCount != 1 || alice.TotalSessions != 2 {
		t.Errorf("unexpected counts for Alice: %+v", alice)
	}
	if alice.PresentPercentage != "50.00" || alice.AbsentPercentage != "50.00" {
		t.Errorf("expected 50.00/50.00 for Alice, got %s/%s", alice.PresentPercentage, alice.AbsentPercentage)
	}

	bob := result.FullReport[1]
	if bob.PresentCount != 1 || bob.AbsentCount != 1 {
		t.Errorf("OD day should count as presence for Bob: %+v", bob)
	}

	overall := result.OverallAttendance
	if overall.TotalPresent != 2 || overall.TotalAbsent != 2 {
		t.Errorf("expected overall 2/2, got %d/%d", overall.TotalPresent, overall.TotalAbsent)
	}
	if overall.OverallPresentPercent != "50.00" {
		t.Errorf("expected 50.00 overall, got %s", overall.OverallPresentPercent)
	}
}

func TestReportService_RangeSummary_InclusiveToDate(t *testing.T) {
	svc, repo, sessionRepo, studentRepo := setupTestReportService()
	class := seedClass(repo)
	seedStudent(studentRepo, class, "student-a", "101", "Alice")

	// Session exactly on the to-date must be included.
	addSession(sessionRepo, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), model.EntryList{
		{RegNoSuffix: "101", Present: true},
	})

	result, err := svc.RangeSummary(context.Background(), "class-1", "2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("RangeSummary should succeed: %v", err)
	}
	if len(result.FullReport) != 1 || result.FullReport[0].TotalSessions != 1 {
		t.Error("session on the to-date should be inside the range")
	}
}

func TestReportService_RangeSummary_DropsUnknownSuffixes(t *testing.T) {
	svc, repo, sessionRepo, studentRepo := setupTestReportService()
	class := seedClass(repo)
	seedStudent(studentRepo, class, "student-a", "101", "Alice")

	addSession(sessionRepo, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), model.EntryList{
		{RegNoSuffix: "101", Present: true},
		{RegNoSuffix: "999", Present: false, Reason: "unknown"}, // not on the roster
	})

	result, err := svc.RangeSummary(context.Background(), "class-1", "2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("RangeSummary should succeed: %v", err)
	}
	if len(result.FullReport) != 1 {
		t.Errorf("unknown suffixes must be silently excluded, got %d rows", len(result.FullReport))
	}
}

func TestReportService_RangeSummary_TopRankings(t *testing.T) {
	svc, repo, sessionRepo, studentRepo := setupTestReportService()
	class := seedClass(repo)

	// Six students with distinct absence counts 0..5 over five days.
	for i := 1; i <= 6; i++ {
		suffix := fmt.Sprintf("10%d", i)
		seedStudent(studentRepo, class, "student-"+suffix, suffix, "Student "+suffix)
	}
	for day := 2; day <= 6; day++ {
		entries := make(model.EntryList, 0, 6)
		for i := 1; i <= 6; i++ {
			suffix := fmt.Sprintf("10%d", i)
			// Student 10N is absent on the first N-1 days.
			if day-2 < i-1 {
				entries = append(entries, model.AttendanceEntry{RegNoSuffix: suffix, Present: false, Reason: "x"})
			} else {
				entries = append(entries, model.AttendanceEntry{RegNoSuffix: suffix, Present: true})
			}
		}
		addSession(sessionRepo, time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC), entries)
	}

	result, err := svc.RangeSummary(context.Background(), "class-1", "2026-03-01", "2026-03-31")
	if err != nil {
		t.Fatalf("RangeSummary should succeed: %v", err)
	}

	if len(result.TopAbsent) != 5 {
		t.Fatalf("topAbsent should be capped at 5, got %d", len(result.TopAbsent))
	}
	for i := 1; i < len(result.TopAbsent); i++ {
		if result.TopAbsent[i-1].AbsentCount < result.TopAbsent[i].AbsentCount {
			t.Errorf("topAbsent not descending at %d: %d < %d",
				i, result.TopAbsent[i-1].AbsentCount, result.TopAbsent[i].AbsentCount)
		}
	}
	if result.TopAbsent[0].RegNo != "20CS106" {
		t.Errorf("expected the most absent student first, got %s", result.TopAbsent[0].RegNo)
	}
	if result.TopPresent[0].AbsentCount != 0 {
		t.Errorf("expected the most present student first, got %+v", result.TopPresent[0])
	}
	// fullReport untouched by ranking: still suffix order.
	if result.FullReport[0].RegNo != "20CS101" {
		t.Errorf("fullReport should stay in suffix order, got %s first", result.FullReport[0].RegNo)
	}
}
