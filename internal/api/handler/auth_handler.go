package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/naveen-dev-dotcom/attendance-app/internal/dto"
	"github.com/naveen-dev-dotcom/attendance-app/internal/service"
	"github.com/naveen-dev-dotcom/attendance-app/pkg/response"
)

// AuthHandler serves the admin authentication endpoints.
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login authenticates an admin.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, 10001, "invalid username or password")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Register creates an admin account. Feature-gated; disabled by
// default in production.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationDisabled):
			response.Forbidden(c, 10003, "registration is disabled")
		case errors.Is(err, service.ErrAdminExists):
			response.BadRequest(c, 10004, "username already taken")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Logout revokes the current token.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, ok := MustGetTokenJTI(c)
	if !ok {
		return
	}
	expiresAt, ok := MustGetTokenExpiry(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// GetCurrentAdmin returns the authenticated admin.
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentAdmin(c *gin.Context) {
	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	result, err := h.authSvc.GetCurrentAdmin(c.Request.Context(), adminID)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			response.NotFound(c, 10006, "admin not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ChangePassword rotates the caller's password.
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	adminID, ok := MustGetAdminID(c)
	if !ok {
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), adminID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.BadRequest(c, 10005, "old password is incorrect")
		case errors.Is(err, service.ErrAdminNotFound):
			response.NotFound(c, 10006, "admin not found")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
