package healthcheck

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ProvideManager 提供健康檢查管理器
func ProvideManager(logger *zap.Logger) *Manager {
	return New(Config{Logger: logger})
}

// Module 提供一個基本的健康檢查管理器
var Module = fx.Module("healthcheck",
	fx.Provide(ProvideManager),
)
