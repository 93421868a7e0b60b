package api

import (
	"lotto_service/internal/lotto_service/config"
	"lotto_service/internal/lotto_service/metrics"
	"lotto_service/internal/lotto_service/service"
	"lotto_service/pkg/healthcheck"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func provideHandler(svc *service.LottoService, logger *zap.Logger) *LottoHandler {
	return NewLottoHandler(svc, logger)
}

func provideRouter(h *LottoHandler, health *healthcheck.Manager, m *metrics.Metrics, cfg *config.AppConfig, logger *zap.Logger) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewRouter(h, health, m, logger)
}

// Module API 模組
var Module = fx.Module("api",
	fx.Provide(
		provideHandler,
		provideRouter,
		NewAPIServer,
	),
	fx.Invoke(RegisterReadinessChecks, RegisterServer),
)
