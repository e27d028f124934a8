package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"worktrack/backend/config"
	"worktrack/backend/internal/api/handler"
	"worktrack/backend/internal/api/middleware"
	"worktrack/backend/pkg/jwt"
	"worktrack/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 打卡来自现场终端，限流窗口放得比较宽
	clockLimit := middleware.RateLimit(rdb, 60, time.Minute)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		// 考勤模块
		attendance := v1.Group("/attendance")
		{
			attendance.POST("/open", clockLimit, h.Attendance.OpenShift)
			attendance.POST("/close", clockLimit, h.Attendance.CloseShift)
			attendance.GET("/:id", h.Attendance.Get)
			attendance.PUT("/:id", middleware.RoleAuth("admin"), h.Attendance.Update)
		}

		// 工时模块
		timeEntries := v1.Group("/time-entries")
		{
			timeEntries.POST("/clock-in", clockLimit, h.TrackedTime.ClockIn)
			timeEntries.POST("/clock-out", clockLimit, h.TrackedTime.ClockOut)
			timeEntries.POST("", middleware.RoleAuth("admin"), h.TrackedTime.Create)
			timeEntries.GET("/:id", h.TrackedTime.Get)
			timeEntries.PUT("/:id", middleware.RoleAuth("admin"), h.TrackedTime.Update)
			timeEntries.DELETE("/:id", middleware.RoleAuth("admin"), h.TrackedTime.Delete)
		}

		// 引擎配置模块
		settings := v1.Group("/settings")
		{
			settings.GET("", h.Settings.Get)
			settings.PUT("", middleware.RoleAuth("admin"), h.Settings.Update)
		}
	}

	return r
}
