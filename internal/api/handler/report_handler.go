package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/naveen-dev-dotcom/attendance-app/internal/service"
	"github.com/naveen-dev-dotcom/attendance-app/pkg/response"
)

// ReportHandler serves the reporting endpoints.
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// StudentHistory returns one student's attendance history.
// GET /api/v1/reports/students/:id?classId=xxx
func (h *ReportHandler) StudentHistory(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "student id must not be empty")
		return
	}
	classID := c.Query("classId")
	if classID == "" {
		response.BadRequest(c, 10001, "classId must not be empty")
		return
	}

	result, err := h.reportSvc.StudentHistory(c.Request.Context(), id, classID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			response.NotFound(c, 20007, "student not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// RangeSummary returns the per-class report over a date range.
// GET /api/v1/reports/summary?classId=xxx&fromDate=2026-03-01&toDate=2026-03-31
func (h *ReportHandler) RangeSummary(c *gin.Context) {
	classID := c.Query("classId")
	fromDate := c.Query("fromDate")
	toDate := c.Query("toDate")

	result, err := h.reportSvc.RangeSummary(c.Request.Context(), classID, fromDate, toDate)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingRangeParameters):
			response.BadRequest(c, 20004, "classId, fromDate and toDate are required")
		case errors.Is(err, service.ErrInvalidDateFormat):
			response.BadRequest(c, 20003, "dates must be YYYY-MM-DD")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}
