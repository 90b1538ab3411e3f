package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/naveen-dev-dotcom/attendance-app/internal/service"
	"github.com/naveen-dev-dotcom/attendance-app/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler serves the file-export endpoints.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportRangeSummary downloads the range summary as an .xlsx workbook.
// GET /api/v1/export/summary?classId=xxx&fromDate=...&toDate=...
func (h *ExportHandler) ExportRangeSummary(c *gin.Context) {
	classID := c.Query("classId")
	fromDate := c.Query("fromDate")
	toDate := c.Query("toDate")

	buf, filename, err := h.exportSvc.RangeSummaryXLSX(c.Request.Context(), classID, fromDate, toDate)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, xlsxContentType, filename, buf.Bytes())
}

// ExportSessionCalendar downloads a class's session days as an
// iCalendar feed.
// GET /api/v1/export/calendar?classId=xxx
func (h *ExportHandler) ExportSessionCalendar(c *gin.Context) {
	classID := c.Query("classId")
	if classID == "" {
		response.BadRequest(c, 10001, "classId must not be empty")
		return
	}

	buf, filename, err := h.exportSvc.SessionCalendarICS(c.Request.Context(), classID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, icsContentType, filename, buf.Bytes())
}

func writeDownload(c *gin.Context, contentType, filename string, body []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, body)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingRangeParameters):
		response.BadRequest(c, 20004, "classId, fromDate and toDate are required")
	case errors.Is(err, service.ErrInvalidDateFormat):
		response.BadRequest(c, 20003, "dates must be YYYY-MM-DD")
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 20006, "class not found")
	case errors.Is(err, service.ErrExportNoSessions):
		response.NotFound(c, 20011, "no sessions in the requested range")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
