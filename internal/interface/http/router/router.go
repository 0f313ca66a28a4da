// Package router 组装gin引擎：全局中间件、/api路由、/metrics、/swagger
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/response"
)

// Handlers 所有HTTP处理器
type Handlers struct {
	Auth   *handler.AuthHandler
	Book   *handler.BookHandler
	Member *handler.MemberHandler
	Issue  *handler.IssueHandler
	Health *handler.HealthHandler
}

// NewRouter 创建并配置Gin引擎
//
// 中间件顺序：Recovery → Logger（请求ID、Span） → Metrics → CORS → RateLimit
// 馆藏读接口公开，其余业务接口要求馆员登录
func NewRouter(cfg *config.Config, h Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	metrics.InitMetrics()

	r := gin.New()
	// 只信任配置的代理，否则X-Forwarded-For可以伪造客户端IP绕过限流
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		slog.Warn("invalid trusted proxies, forwarded headers ignored", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(
		middleware.Recovery(),
		middleware.Logger(),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS),
	)
	if cfg.RateLimit.Enabled {
		r.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Middleware())
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrRouteNotFound)
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.Server.Mode != gin.ReleaseMode {
		// 访问 /swagger/index.html 查看API文档
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	staff := []string{string(user.RoleAdmin), string(user.RoleLibrarian)}
	requireStaff := []gin.HandlerFunc{auth.RequireAuth(), middleware.RequireRole(staff...)}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health.Health)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", auth.OptionalAuth(), h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/logout", auth.RequireAuth(), h.Auth.Logout)
		}

		books := api.Group("/books")
		{
			books.GET("/all", h.Book.ListBooks)
			books.GET("/search", h.Book.SearchBooks)
			books.GET("/:id", h.Book.GetBook)

			books.POST("/add", append(requireStaff, h.Book.AddBook)...)
			books.PUT("/:id", append(requireStaff, h.Book.UpdateBook)...)
			books.DELETE("/:id", append(requireStaff, h.Book.DeleteBook)...)
		}

		members := api.Group("/members")
		members.Use(requireStaff...)
		{
			members.POST("/add", h.Member.AddMember)
			members.GET("/all", h.Member.ListMembers)
			members.GET("/:id", h.Member.GetMember)
			members.PUT("/:id/status", h.Member.ChangeStatus)
			members.GET("/:id/issues", h.Issue.ListByMember)
		}

		issues := api.Group("/issues")
		issues.Use(requireStaff...)
		{
			issues.POST("/issue", h.Issue.IssueBook)
			issues.POST("/return", h.Issue.ReturnBook)
			issues.POST("/pay-fine", h.Issue.PayFine)
			issues.GET("/all", h.Issue.ListAll)
			issues.GET("/active", h.Issue.ListActive)
			issues.GET("/overdue", h.Issue.ListOverdue)
			issues.GET("/:id", h.Issue.GetIssue)
		}
	}

	return r
}
