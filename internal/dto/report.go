package dto

// ── Reporting DTOs ──
//
// Percentages are always strings with exactly two decimal digits,
// "0.00" when the denominator is zero.

// DatedReason is one absence or on-duty day in a student history.
type DatedReason struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// StudentStats are the per-student counters over all matched sessions.
type StudentStats struct {
	Total        int `json:"total"`
	PresentCount int `json:"presentCount"`
	AbsentCount  int `json:"absentCount"`
	ODCount      int `json:"odCount"`
}

// StudentIdentity names the student in a history report.
type StudentIdentity struct {
	Name  string `json:"name"`
	RegNo string `json:"regNo"`
}

// StudentHistoryResponse is the full per-student history report.
type StudentHistoryResponse struct {
	Student StudentIdentity `json:"student"`
	Stats   StudentStats    `json:"stats"`
	Absents []DatedReason   `json:"absents"`
	ODs     []DatedReason   `json:"ods"`
}

// StudentSummary is one row of a range-summary report.
type StudentSummary struct {
	StudentID         string `json:"studentId"`
	Name              string `json:"name"`
	RegNo             string `json:"regNo"`
	PresentCount      int    `json:"presentCount"`
	AbsentCount       int    `json:"absentCount"`
	TotalSessions     int    `json:"totalSessions"`
	PresentPercentage string `json:"presentPercentage"`
	AbsentPercentage  string `json:"absentPercentage"`
}

// OverallAttendance aggregates the whole class over the range.
type OverallAttendance struct {
	TotalPresent          int    `json:"totalPresent"`
	TotalAbsent           int    `json:"totalAbsent"`
	OverallPresentPercent string `json:"overallPresentPercent"`
	OverallAbsentPercent  string `json:"overallAbsentPercent"`
}

// RangeSummaryResponse is the per-class date-range report.
type RangeSummaryResponse struct {
	OverallAttendance OverallAttendance `json:"overallAttendance"`
	TopAbsent         []StudentSummary  `json:"topAbsent"`
	TopPresent        []StudentSummary  `json:"topPresent"`
	FullReport        []StudentSummary  `json:"fullReport"`
}
