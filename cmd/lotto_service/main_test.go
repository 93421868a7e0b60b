package main

import (
	"testing"

	"lotto_service/internal/lotto_service/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
)

func TestNewApp_ValidatesGraph(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.AppConfig)
	}{
		{"僅檔案來源", func(c *config.AppConfig) {}},
		{"啟用線上抓取與 Redis", func(c *config.AppConfig) {
			c.Fetch.Enabled = true
			c.Redis.Enabled = true
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.AppConfig{}
			cfg.AppName = "lotto_service"
			cfg.Server.Port = 8080
			cfg.History.File = "draws.csv"
			tt.mutate(cfg)

			// 只驗證依賴圖，不建立連線
			err := fx.ValidateApp(append(appOptions(cfg), fx.NopLogger)...)
			assert.NoError(t, err)
		})
	}
}
