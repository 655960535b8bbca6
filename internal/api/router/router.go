package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/beluleung/ISOM5260-project/config"
	"github.com/beluleung/ISOM5260-project/internal/api/handler"
	"github.com/beluleung/ISOM5260-project/internal/api/middleware"
	"github.com/beluleung/ISOM5260-project/pkg/metrics"
)

// Setup 初始化并返回 Gin 路由引擎
// m 为 nil 时不采集也不暴露指标；limiter 为 nil 时写接口不限流
func Setup(cfg *config.Config, h *handler.Handler, m *metrics.Metrics, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))
	if m != nil {
		r.Use(middleware.Metrics(m))
	}

	// ── 健康检查 / 指标 ──
	r.GET("/health", h.Health.Check)
	if m != nil && cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	// 写接口限流（按 IP + 路由）
	var limited gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.RateLimit.Enabled {
		limited = middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, logger)
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 会员模块
		members := v1.Group("/members")
		{
			members.POST("", limited, h.Member.Register)
			members.GET("/:id", h.Member.GetMember)
		}

		// 活动模块（静态路径先于 :id 注册）
		activities := v1.Group("/activities")
		{
			activities.GET("", h.Activity.ListActivities)
			activities.GET("/options", h.Activity.ListOptions)
			activities.GET("/calendar.ics", h.Export.ExportCalendar)
			activities.GET("/:id", h.Activity.GetActivity)
		}

		// 报名模块
		v1.POST("/signups", limited, h.SignUp.Enroll)

		// 管理模块
		admin := v1.Group("/admin")
		{
			adminActivities := admin.Group("/activities")
			{
				adminActivities.POST("", h.Activity.CreateActivity)
				adminActivities.PUT("/:id", h.Activity.UpdateActivity)
				adminActivities.DELETE("/:id", h.Activity.DeleteActivity)
				adminActivities.GET("/:id/has-signups", h.Activity.HasSignups)
			}

			admin.GET("/reports/signups", h.Report.SignupReport)

			query := admin.Group("/query")
			query.Use(limited)
			{
				query.POST("", h.Report.RunQuery)
				query.POST("/export", h.Export.ExportQuery)
			}
		}
	}

	return r
}
