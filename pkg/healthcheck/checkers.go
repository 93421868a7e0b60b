package healthcheck

import (
	"context"
	"fmt"
	"time"
)

const defaultCheckTimeout = 3 * time.Second

// PingContexter 定義了數據庫和其他服務的 PingContext 接口
type PingContexter interface {
	PingContext(ctx context.Context) error
}

// DatabaseChecker 檢查數據庫連接健康狀況
type DatabaseChecker struct {
	Name_   string
	DB      PingContexter
	Timeout time.Duration
}

// Name 返回檢查器的名稱
func (d *DatabaseChecker) Name() string {
	if d.Name_ != "" {
		return d.Name_
	}
	return "database-checker"
}

// Check 執行數據庫健康檢查
func (d *DatabaseChecker) Check(ctx context.Context) error {
	if d.DB == nil {
		return fmt.Errorf("數據庫未配置")
	}

	ctx, cancel := context.WithTimeout(ctx, timeoutOrDefault(d.Timeout))
	defer cancel()

	return d.DB.PingContext(ctx)
}

// RedisChecker 檢查 Redis 連接健康狀況
type RedisChecker struct {
	Name_    string
	PingFunc func(ctx context.Context) error
	Timeout  time.Duration
}

// Name 返回檢查器的名稱
func (rc *RedisChecker) Name() string {
	if rc.Name_ != "" {
		return rc.Name_
	}
	return "redis-checker"
}

// Check 執行 Redis 健康檢查
func (rc *RedisChecker) Check(ctx context.Context) error {
	if rc.PingFunc == nil {
		return fmt.Errorf("Redis Ping 函數未配置")
	}

	ctx, cancel := context.WithTimeout(ctx, timeoutOrDefault(rc.Timeout))
	defer cancel()

	return rc.PingFunc(ctx)
}

// CustomChecker 允許使用自定義函數進行健康檢查
type CustomChecker struct {
	Name_     string
	CheckFunc func(ctx context.Context) error
}

// Name 返回檢查器的名稱
func (c *CustomChecker) Name() string {
	return c.Name_
}

// Check 執行自定義健康檢查
func (c *CustomChecker) Check(ctx context.Context) error {
	if c.CheckFunc == nil {
		return fmt.Errorf("檢查函數未配置")
	}
	return c.CheckFunc(ctx)
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultCheckTimeout
	}
	return d
}
