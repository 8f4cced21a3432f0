package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gestion-cours/backend/config"
	"gestion-cours/backend/internal/api/handler"
	"gestion-cours/backend/internal/api/middleware"
	"gestion-cours/backend/internal/model"
	"gestion-cours/backend/pkg/jwt"
	"gestion-cours/backend/pkg/redis"
)

// 登录接口限流：每 IP 每分钟最多 10 次
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// New 组装 Gin 引擎：全局中间件 + 按角色分组的路由
func New(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Upload.MaxSizeBytes + 1<<20))

	// 头像等静态文件
	r.Static("/static/uploads", cfg.Upload.Dir)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	// ── 公开路由 ──
	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(rdb, loginRateLimit, loginRateWindow), h.Auth.Login)
	}

	// ── 需认证路由 ──
	authed := api.Group("")
	authed.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.GET("/auth/me", h.Auth.GetCurrentUser)

		// 个人资料：所有角色可用
		authed.GET("/profile", h.User.GetProfile)
		authed.PUT("/profile", h.User.UpdateProfile)

		// ── 管理员 ──
		admin := authed.Group("/admin")
		admin.Use(middleware.RoleAuth(model.RoleAdmin))
		{
			admin.GET("/users", h.User.ListUsers)
			admin.POST("/users", h.User.CreateUser)
			admin.GET("/courses", h.Report.ListCourses)
			admin.GET("/courses/export", h.Report.ExportCourses)
		}

		// ── 教师 ──
		professor := authed.Group("/professor")
		professor.Use(middleware.RoleAuth(model.RoleProfessor))
		{
			professor.GET("/courses", h.Course.ListMyCourses)
			professor.POST("/courses", h.Course.CreateCourse)
			professor.GET("/courses/:id", h.Course.GetCourseDetail)
			professor.POST("/courses/:id", h.Course.SubmitCourseDetail)
		}

		// ── 学生 ──
		student := authed.Group("/student")
		student.Use(middleware.RoleAuth(model.RoleStudent))
		{
			student.GET("/enrollments", h.Student.ListEnrollments)
		}
	}

	return r
}
