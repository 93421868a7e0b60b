package api

import (
	"lotto_service/internal/lotto_service/metrics"
	"lotto_service/pkg/healthcheck"
	"lotto_service/pkg/httpClient"
	"lotto_service/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "lotto_service/docs"
)

// NewRouter 建立 gin 路由
func NewRouter(h *LottoHandler, health *healthcheck.Manager, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(logger), httpClient.GinTraceMiddleware(), middleware.Logger(logger))
	r.Use(middleware.Cors())

	r.GET("/api-docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/version", h.Version)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
	health.InstallHandlers(r)

	api := r.Group("/api/v1")
	{
		api.POST("/recommendations", h.Recommend)
		api.GET("/analysis", h.Analysis)
		api.GET("/history", h.History)
		api.POST("/history/refresh", h.RefreshHistory)
	}

	return r
}
