package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naveen-dev-dotcom/attendance-app/internal/dto"
	"github.com/naveen-dev-dotcom/attendance-app/internal/service"
	"github.com/naveen-dev-dotcom/attendance-app/pkg/redis"
	"github.com/naveen-dev-dotcom/attendance-app/pkg/response"
)

// AttendanceHandler serves the attendance session endpoints.
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// Submit records or edits a class's attendance for one day.
// POST /api/v1/attendance
func (h *AttendanceHandler) Submit(c *gin.Context) {
	var req dto.SubmitAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	editor, ok := MustGetUsername(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.Submit(c.Request.Context(), &req, editor)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	if req.IsEdit {
		response.OK(c, result)
		return
	}
	response.Created(c, result)
}

// ListSessions returns sessions, optionally filtered by class and day.
// GET /api/v1/attendance?classId=xxx&date=2026-03-02
func (h *AttendanceHandler) ListSessions(c *gin.Context) {
	classID := c.Query("classId")
	date := c.Query("date")

	sessions, err := h.attendanceSvc.ListSessions(c.Request.Context(), classID, date)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": sessions})
}

// ListAuditLog returns the audit trail of one session, oldest first.
// GET /api/v1/attendance/:id/logs
func (h *AttendanceHandler) ListAuditLog(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "session id must not be empty")
		return
	}

	logs, err := h.attendanceSvc.ListAuditLog(c.Request.Context(), id)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": logs})
}

func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateSubmission):
		response.BadRequest(c, 20001, "attendance already submitted for this class and date")
	case errors.Is(err, service.ErrEditWindowExpired):
		response.Forbidden(c, 20002, "edit window has expired")
	case errors.Is(err, service.ErrInvalidDateFormat):
		response.BadRequest(c, 20003, "date must be YYYY-MM-DD")
	case errors.Is(err, service.ErrEntryInvalid):
		response.BadRequest(c, 20005, "attendance entries are invalid")
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 20009, "session not found")
	case errors.Is(err, redis.ErrLockHeld):
		response.Error(c, http.StatusConflict, 20010, "another submission for this class is in progress")
	default:
		response.InternalError(c)
	}
}
