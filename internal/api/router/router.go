package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/naveen-dev-dotcom/attendance-app/config"
	"github.com/naveen-dev-dotcom/attendance-app/internal/api/handler"
	"github.com/naveen-dev-dotcom/attendance-app/internal/api/middleware"
	"github.com/naveen-dev-dotcom/attendance-app/pkg/jwt"
	"github.com/naveen-dev-dotcom/attendance-app/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── Health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// An interface holding a typed nil is not nil; only hand the
	// client over when one actually exists.
	var checker middleware.TokenChecker
	if rdb != nil {
		checker = rdb
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// Auth (no token required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
		}

		// Everything below requires a valid access token.
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, checker))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentAdmin)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			classes := authorized.Group("/classes")
			{
				classes.GET("", h.Class.ListClasses)
				classes.GET("/:id", h.Class.GetClass)
				classes.POST("", h.Class.CreateClass)
			}

			students := authorized.Group("/students")
			{
				students.GET("", h.Student.ListStudents)
				students.GET("/:id", h.Student.GetStudent)
				students.POST("", h.Student.CreateStudent)
				students.POST("/bulk", h.Student.BulkImport)
			}

			attendance := authorized.Group("/attendance")
			{
				attendance.POST("", h.Attendance.Submit)
				attendance.GET("", h.Attendance.ListSessions)
				attendance.GET("/:id/logs", h.Attendance.ListAuditLog)
			}

			reports := authorized.Group("/reports")
			{
				reports.GET("/students/:id", h.Report.StudentHistory)
				reports.GET("/summary", h.Report.RangeSummary)
			}

			export := authorized.Group("/export")
			{
				export.GET("/summary", h.Export.ExportRangeSummary)
				export.GET("/calendar", h.Export.ExportSessionCalendar)
			}
		}
	}

	return r
}
