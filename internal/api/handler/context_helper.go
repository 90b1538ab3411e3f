package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/naveen-dev-dotcom/attendance-app/pkg/response"
)

// MustGetAdminID extracts admin_id from the Gin context. If the JWT
// middleware did not inject it, writes a 401 and returns false; the
// caller should return immediately.
func MustGetAdminID(c *gin.Context) (string, bool) {
	v, exists := c.Get("admin_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetUsername extracts the authenticated username.
func MustGetUsername(c *gin.Context) (string, bool) {
	v, exists := c.Get("username")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetTokenJTI extracts the current token's jti.
func MustGetTokenJTI(c *gin.Context) (string, bool) {
	v, exists := c.Get("token_jti")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// MustGetTokenExpiry extracts the current token's expiry time.
func MustGetTokenExpiry(c *gin.Context) (time.Time, bool) {
	v, exists := c.Get("token_expires_at")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return time.Time{}, false
	}
	t, ok := v.(time.Time)
	if !ok {
		response.Unauthorized(c, 10002, "not authenticated")
		return time.Time{}, false
	}
	return t, true
}
