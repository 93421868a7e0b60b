package scheduler

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ProvideScheduler 提供排程器實例，隨應用啟動與停止
func ProvideScheduler(lc fx.Lifecycle, logger *zap.Logger) *Scheduler {
	s := New(logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if jobs := s.GetAllJobs(); len(jobs) > 0 {
				s.logger.Info("停止排程器", zap.Strings("pendingJobs", jobs))
			}
			s.Stop()
			return nil
		},
	})

	return s
}

// Module 排程器模組
var Module = fx.Module("scheduler",
	fx.Provide(ProvideScheduler),
)
