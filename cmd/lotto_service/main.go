package main

import (
	"fmt"
	"os"

	"lotto_service/internal/lotto_service/api"
	"lotto_service/internal/lotto_service/config"
	"lotto_service/internal/lotto_service/history"
	"lotto_service/internal/lotto_service/metrics"
	"lotto_service/internal/lotto_service/service"
	"lotto_service/pkg/databaseManager"
	"lotto_service/pkg/healthcheck"
	"lotto_service/pkg/httpClient"
	"lotto_service/pkg/logger"
	"lotto_service/pkg/redisManager"
	"lotto_service/pkg/utils"
	"lotto_service/pkg/utils/scheduler"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// appOptions 依配置組合所有模組，Redis 與數據庫只在啟用時載入
func appOptions(cfg *config.AppConfig) []fx.Option {
	options := []fx.Option{
		config.Supply(cfg),
		logger.Module,

		// 線上抓取使用的 HTTP 客戶端
		fx.Supply(
			fx.Annotated{Name: "serviceName", Target: cfg.AppName},
			fx.Annotated{Name: "httpTimeout", Target: cfg.Fetch.Timeout},
		),
		httpClient.Module,

		scheduler.Module,
		healthcheck.Module,
		metrics.Module,
		history.Module,
		service.Module,
		api.Module,
	}

	if cfg.Redis.Enabled {
		options = append(options, redisManager.Module)
	}
	if cfg.Database.Enabled {
		options = append(options, databaseManager.Module)
	}

	return options
}

func newApp(cfg *config.AppConfig) *fx.App {
	options := append(appOptions(cfg),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.With(zap.String("component", "fx"))}
		}),
	)
	return fx.New(options...)
}

func main() {
	// 初始化 flag 參數
	config.InitFlags()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "載入配置失敗: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("lotto_service %s\n", utils.VersionString())

	// Run 會處理 SIGINT / SIGTERM 並依序執行 OnStop
	newApp(cfg).Run()
}
