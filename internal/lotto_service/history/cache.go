package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lotto_service/internal/lotto_service/analysis"
	"lotto_service/pkg/redisManager"
)

// DefaultRoundTTL 快取的開獎保存時間
const DefaultRoundTTL = 7 * 24 * time.Hour

// RoundCache 已抓取開獎的快取
type RoundCache interface {
	Get(ctx context.Context, round int) (analysis.Draw, bool, error)
	Put(ctx context.Context, draw analysis.Draw) error
}

// RedisRoundCache 以 lotto:round:{n} 為鍵保存 JSON
type RedisRoundCache struct {
	redis redisManager.RedisManager
	ttl   time.Duration
}

// NewRedisRoundCache 創建 RedisRoundCache
func NewRedisRoundCache(redis redisManager.RedisManager, ttl time.Duration) *RedisRoundCache {
	if ttl <= 0 {
		ttl = DefaultRoundTTL
	}
	return &RedisRoundCache{redis: redis, ttl: ttl}
}

func roundKey(round int) string {
	return fmt.Sprintf("lotto:round:%d", round)
}

func (c *RedisRoundCache) Get(ctx context.Context, round int) (analysis.Draw, bool, error) {
	data, err := c.redis.Get(ctx, roundKey(round))
	if err != nil {
		if redisManager.IsKeyNotExist(err) {
			return analysis.Draw{}, false, nil
		}
		return analysis.Draw{}, false, fmt.Errorf("讀取快取第 %d 期失敗: %w", round, err)
	}

	var draw analysis.Draw
	if err := json.Unmarshal([]byte(data), &draw); err != nil || draw.Round != round {
		// 內容損壞的鍵直接清掉，下次重新抓取
		if delErr := c.redis.Delete(ctx, roundKey(round)); delErr != nil {
			return analysis.Draw{}, false, fmt.Errorf("清除損壞快取第 %d 期失敗: %w", round, delErr)
		}
		return analysis.Draw{}, false, nil
	}
	return draw, true, nil
}

func (c *RedisRoundCache) Put(ctx context.Context, draw analysis.Draw) error {
	data, err := json.Marshal(draw)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, roundKey(draw.Round), data, c.ttl)
}
