package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"lotto_service/internal/lotto_service/config"
	"lotto_service/internal/lotto_service/history"
	"lotto_service/pkg/databaseManager"
	"lotto_service/pkg/healthcheck"
	"lotto_service/pkg/redisManager"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

// APIServer 處理 API 請求的 HTTP 服務器
type APIServer struct {
	config *config.AppConfig
	logger *zap.Logger
	health *healthcheck.Manager
	server *http.Server
}

// NewAPIServer 創建新的 API 服務器
func NewAPIServer(cfg *config.AppConfig, router *gin.Engine, health *healthcheck.Manager, logger *zap.Logger) *APIServer {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	return &APIServer{
		config: cfg,
		logger: logger.With(zap.String("component", "api_server")),
		health: health,
		server: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Addr 返回監聽地址
func (s *APIServer) Addr() string {
	return s.server.Addr
}

// Start 啟動 API 服務器
// 監聽失敗直接返回錯誤，讓 fx 中止啟動
func (s *APIServer) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("監聽 %s 失敗: %w", s.server.Addr, err)
	}

	go func() {
		s.logger.Info("API 服務器已啟動", zap.String("address", ln.Addr().String()))
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API 服務器運行失敗", zap.Error(err))
		}
	}()

	s.health.SetReady(true)
	return nil
}

// Stop 優雅關閉 API 服務器
func (s *APIServer) Stop(ctx context.Context) error {
	s.logger.Info("正在停止 API 服務器")
	s.health.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("API 服務器優雅關閉失敗", zap.Error(err))
		return err
	}
	s.logger.Info("API 服務器已優雅關閉")
	return nil
}

// HealthParams 就緒檢查的依賴，Redis 與數據庫為可選
type HealthParams struct {
	fx.In

	Health *healthcheck.Manager
	Store  *history.Store
	Redis  redisManager.RedisManager       `optional:"true"`
	DB     databaseManager.DatabaseManager `optional:"true"`
}

// RegisterReadinessChecks 註冊歷史資料、Redis 與數據庫的就緒檢查
func RegisterReadinessChecks(p HealthParams) {
	p.Health.AddReadinessCheck(&healthcheck.CustomChecker{
		Name_: "history",
		CheckFunc: func(ctx context.Context) error {
			_, err := p.Store.Current(ctx)
			return err
		},
	})

	if p.Redis != nil {
		p.Health.AddReadinessCheck(&healthcheck.RedisChecker{
			Name_:    "redis",
			PingFunc: p.Redis.Ping,
		})
	}

	if p.DB != nil {
		if sqlDB, err := p.DB.GetDB().DB(); err == nil {
			p.Health.AddReadinessCheck(&healthcheck.DatabaseChecker{
				Name_: "database",
				DB:    sqlDB,
			})
		}
	}
}

// RegisterServer 將服務器掛到 fx 生命週期
func RegisterServer(lc fx.Lifecycle, s *APIServer) {
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.Stop,
	})
}
