package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jengzang/risk-heatmap-go/internal/config"
	"github.com/jengzang/risk-heatmap-go/internal/handler"
	"github.com/jengzang/risk-heatmap-go/internal/middleware"
	"github.com/jengzang/risk-heatmap-go/pkg/metrics"
)

// Handlers 路由依赖的处理器
type Handlers struct {
	Prediction *handler.PredictionHandler
	Point      *handler.PointHandler
	Zone       *handler.ZoneHandler
	History    *handler.HistoryHandler
}

// SetupRouter 设置路由
// ctx 结束时限流器的清理协程随之退出
func SetupRouter(ctx context.Context, cfg *config.Config, h Handlers, m *metrics.Metrics, log *zap.Logger) *gin.Engine {
	r := gin.New()

	// 中间件：恢复、请求 ID、日志、指标、CORS
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS())

	// Prometheus 指标
	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api")
	{
		// 健康检查
		api.GET("/health", handler.Health)

		// 省份列表
		api.GET("/zonas", h.Zone.List)

		// 预测接口（限流）
		predict := api.Group("")
		if cfg.RateLimitRequests > 0 && cfg.RateLimitWindowSeconds > 0 {
			limiter := middleware.NewRateLimiter(ctx, cfg.RateLimitRequests, cfg.RateLimitWindow())
			predict.Use(middleware.RateLimit(limiter))
		}
		{
			predict.POST("/predecir", h.Prediction.Predict)
			predict.POST("/predecir/geojson", h.Prediction.PredictGeoJSON)
			predict.POST("/predecir_punto", h.Point.PredictPoint)
			predict.POST("/diagnosticar", h.Point.Diagnose)
		}

		// 预测历史（配置密钥时需要 JWT）
		history := api.Group("/historial")
		if cfg.JWTSecret != "" {
			history.Use(middleware.JWTAuth(cfg.JWTSecret))
		}
		history.GET("", h.History.List)
	}

	return r
}
