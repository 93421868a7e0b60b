package redisManager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// 導出 redis.Nil 以便使用者可以處理找不到鍵的情況
var Nil = redis.Nil

// IsKeyNotExist 檢查錯誤是否表示鍵不存在
func IsKeyNotExist(err error) bool {
	return errors.Is(err, redis.Nil)
}

// RedisConfig 存儲 Redis 連接的配置項
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	// 自定義連接超時設定
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
}

// RedisManager 提供 Redis 操作的介面
type RedisManager interface {
	// 基本操作
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error

	// 連接管理
	Close() error
	Ping(ctx context.Context) error
}

// redisManagerImpl 是 RedisManager 介面的實作
type redisManagerImpl struct {
	client *redis.Client
}

// buildOptions 將配置轉為 go-redis 選項，未設定的欄位套用默認值
func buildOptions(cfg *RedisConfig) *redis.Options {
	options := &redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     20,
		MinIdleConns: 10,
	}

	if cfg.DialTimeout > 0 {
		options.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		options.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		options.WriteTimeout = cfg.WriteTimeout
	}
	if cfg.PoolSize > 0 {
		options.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		options.MinIdleConns = cfg.MinIdleConns
	}
	return options
}

// NewRedisManager 創建一個新的 Redis 管理器，連接在首次使用時建立
func NewRedisManager(cfg *RedisConfig) RedisManager {
	return &redisManagerImpl{
		client: redis.NewClient(buildOptions(cfg)),
	}
}

// ProvideRedisManager 提供 RedisManager 實例，用於 fx
// 啟動時連不上 Redis 只記錄警告，快取層會自動降級
func ProvideRedisManager(lc fx.Lifecycle, cfg *RedisConfig, logger *zap.Logger) RedisManager {
	manager := NewRedisManager(cfg)
	log := logger.With(zap.String("component", "redis"), zap.String("addr", cfg.Addr))

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := manager.Ping(ctx); err != nil {
				log.Warn("Redis 連接失敗", zap.Error(err))
				return nil
			}
			log.Info("Redis 連接成功")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("關閉 Redis 連接")
			return manager.Close()
		},
	})

	return manager
}

// Module 創建 fx 模組
var Module = fx.Module("redis",
	fx.Provide(ProvideRedisManager),
)

func (r *redisManagerImpl) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *redisManagerImpl) Get(ctx context.Context, key string) (string, error) {
	result, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("key %s does not exist: %w", key, redis.Nil)
	}
	return result, err
}

func (r *redisManagerImpl) Delete(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *redisManagerImpl) Close() error {
	return r.client.Close()
}

func (r *redisManagerImpl) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
