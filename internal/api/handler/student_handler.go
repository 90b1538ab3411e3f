package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/naveen-dev-dotcom/attendance-app/internal/dto"
	"github.com/naveen-dev-dotcom/attendance-app/internal/service"
	"github.com/naveen-dev-dotcom/attendance-app/pkg/response"
)

// StudentHandler serves the roster-student endpoints.
type StudentHandler struct {
	studentSvc service.StudentService
}

// NewStudentHandler creates a StudentHandler.
func NewStudentHandler(studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// CreateStudent adds one student to a class.
// POST /api/v1/students
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.studentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.Created(c, result)
}

// GetStudent returns one student.
// GET /api/v1/students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "student id must not be empty")
		return
	}

	result, err := h.studentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.OK(c, result)
}

// ListStudents returns students, optionally scoped to one class.
// GET /api/v1/students?classId=xxx
func (h *StudentHandler) ListStudents(c *gin.Context) {
	classID := c.Query("classId")

	students, err := h.studentSvc.List(c.Request.Context(), classID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": students})
}

// BulkImport inserts many students at once, all-or-nothing.
// POST /api/v1/students/bulk
func (h *StudentHandler) BulkImport(c *gin.Context) {
	var req dto.BulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.studentSvc.BulkImport(c.Request.Context(), &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}

	response.Created(c, result)
}

func (h *StudentHandler) handleStudentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 20006, "class not found")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 20007, "student not found")
	case errors.Is(err, service.ErrStudentExists):
		response.BadRequest(c, 20008, "registration suffix already exists in class")
	default:
		response.InternalError(c)
	}
}
