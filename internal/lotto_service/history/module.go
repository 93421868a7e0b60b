package history

import (
	"context"

	"lotto_service/internal/lotto_service/config"
	"lotto_service/pkg/databaseManager"
	"lotto_service/pkg/httpClient"
	"lotto_service/pkg/redisManager"
	"lotto_service/pkg/utils/scheduler"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// RefreshJobID 定時抓取任務的ID
const RefreshJobID = "history_refresh"

// StoreParams 建立 Store 所需的依賴，Redis 與數據庫為可選
type StoreParams struct {
	fx.In

	Config *config.AppConfig
	Logger *zap.Logger
	HTTP   httpClient.HTTPClient           `optional:"true"`
	Redis  redisManager.RedisManager       `optional:"true"`
	DB     databaseManager.DatabaseManager `optional:"true"`
}

// ProvideStore 依配置組合歷史資料來源、線上抓取與快照
func ProvideStore(p StoreParams) (*Store, error) {
	cfg := p.Config
	var sources []Source

	if cfg.History.File != "" {
		sources = append(sources, NewFileSource(cfg.History.File, cfg.History.Sheet, cfg.History.HeaderRows, cfg.History.RoundColumn))
	}

	var repo *DBRepository
	if p.DB != nil {
		var err error
		repo, err = NewDBRepository(p.DB, p.Logger)
		if err != nil {
			return nil, err
		}
		sources = append(sources, repo)
	}

	opts := []StoreOption{
		WithRefreshInterval(cfg.History.RefreshInterval),
		WithStartRound(cfg.Fetch.StartRound),
	}

	if cfg.Fetch.Enabled {
		client := p.HTTP
		if client == nil {
			client = httpClient.NewClient(
				httpClient.WithTimeout(cfg.Fetch.Timeout),
				httpClient.WithServiceName(cfg.AppName),
			)
		}

		refresherOpts := []RefresherOption{
			WithMaxRounds(cfg.Fetch.MaxRounds),
			WithFetchTimeout(cfg.Fetch.Timeout),
		}
		if p.Redis != nil {
			refresherOpts = append(refresherOpts, WithRoundCache(NewRedisRoundCache(p.Redis, cfg.Redis.RoundTTL)))
		}
		if repo != nil {
			refresherOpts = append(refresherOpts, WithRepository(repo))
		}

		live := NewMemorySource()
		sources = append(sources, live)
		refresher := NewRefresher(NewHTTPDrawFetcher(client, cfg.Fetch.BaseURL, p.Logger), p.Logger, refresherOpts...)
		opts = append(opts, WithRefresher(refresher, live))
	}

	return NewStore(NewLoader(p.Logger, sources...), p.Logger, opts...), nil
}

// RegisterRefreshJob 啟動時預先載入快照，啟用線上抓取時安排定時任務
func RegisterRefreshJob(lc fx.Lifecycle, store *Store, cfg *config.AppConfig, sched *scheduler.Scheduler, logger *zap.Logger) {
	log := logger.With(zap.String("component", "history_module"))

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// 預先載入失敗不阻止啟動，readiness 會回報未就緒
			if _, err := store.Current(ctx); err != nil {
				log.Warn("預先載入歷史資料失敗", zap.Error(err))
			}

			if !cfg.Fetch.Enabled || sched.JobExists(RefreshJobID) {
				return nil
			}
			return sched.ScheduleRecurring(cfg.Fetch.Interval, RefreshJobID, true, func(ctx context.Context) {
				if _, err := store.Refresh(ctx); err != nil {
					log.Warn("定時刷新歷史資料失敗", zap.Error(err))
				}
			})
		},
		OnStop: func(ctx context.Context) error {
			sched.CancelJob(RefreshJobID)
			return nil
		},
	})
}

// Module 歷史資料模組
var Module = fx.Module("history",
	fx.Provide(ProvideStore),
	fx.Invoke(RegisterRefreshJob),
)
