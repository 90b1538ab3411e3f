package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/naveen-dev-dotcom/attendance-app/internal/dto"
	"github.com/naveen-dev-dotcom/attendance-app/internal/service"
	"github.com/naveen-dev-dotcom/attendance-app/pkg/response"
)

// ClassHandler serves the roster-class endpoints.
type ClassHandler struct {
	classSvc service.ClassService
}

// NewClassHandler creates a ClassHandler.
func NewClassHandler(classSvc service.ClassService) *ClassHandler {
	return &ClassHandler{classSvc: classSvc}
}

// CreateClass adds a class.
// POST /api/v1/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.classSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// GetClass returns one class.
// GET /api/v1/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "class id must not be empty")
		return
	}

	result, err := h.classSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			response.NotFound(c, 20006, "class not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ListClasses returns all classes.
// GET /api/v1/classes
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": classes})
}
