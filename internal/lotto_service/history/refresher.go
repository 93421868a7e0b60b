package history

import (
	"context"
	"time"

	"lotto_service/internal/lotto_service/analysis"

	"go.uber.org/zap"
)

const (
	DefaultMaxRounds    = 10              // 每次最多抓取的期數
	DefaultFetchTimeout = 5 * time.Second // 每次抓取的總時限
)

// RefreshReport 一次線上抓取的結果
type RefreshReport struct {
	From      int             `json:"from"`       // 起始期數
	Fetched   int             `json:"fetched"`    // 成功取得的期數
	StoppedAt int             `json:"stopped_at"` // 停止時的期數（未開獎或出錯）
	Draws     []analysis.Draw `json:"draws"`
	Err       error           `json:"-"`
	Error     string          `json:"error,omitempty"`
}

// Refresher 從 latest+1 開始逐期抓取新開獎
type Refresher struct {
	fetcher   DrawFetcher
	cache     RoundCache     // 可為 nil
	repo      DrawRepository // 可為 nil
	maxRounds int
	timeout   time.Duration
	logger    *zap.Logger
}

// RefresherOption 配置 Refresher
type RefresherOption func(*Refresher)

// WithRoundCache 設置快取
func WithRoundCache(cache RoundCache) RefresherOption {
	return func(r *Refresher) {
		r.cache = cache
	}
}

// WithRepository 設置歸檔，抓到的資料會寫入
func WithRepository(repo DrawRepository) RefresherOption {
	return func(r *Refresher) {
		r.repo = repo
	}
}

// WithMaxRounds 設置每次最多抓取的期數
func WithMaxRounds(n int) RefresherOption {
	return func(r *Refresher) {
		if n > 0 {
			r.maxRounds = n
		}
	}
}

// WithFetchTimeout 設置每次抓取的總時限
func WithFetchTimeout(d time.Duration) RefresherOption {
	return func(r *Refresher) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewRefresher 創建 Refresher
func NewRefresher(fetcher DrawFetcher, logger *zap.Logger, opts ...RefresherOption) *Refresher {
	r := &Refresher{
		fetcher:   fetcher,
		maxRounds: DefaultMaxRounds,
		timeout:   DefaultFetchTimeout,
		logger:    logger.With(zap.String("component", "history_refresher")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ArchivedRound 返回歸檔中最大的期數，未設置歸檔時為 0
func (r *Refresher) ArchivedRound(ctx context.Context) (int, error) {
	if r.repo == nil {
		return 0, nil
	}
	return r.repo.LatestRound(ctx)
}

// Refresh 從 from 期開始抓取，遇到未開獎、錯誤或達到上限時停止
// 錯誤記錄在報告中，不會中斷呼叫者
func (r *Refresher) Refresh(ctx context.Context, from int) RefreshReport {
	if from <= 0 {
		from = 1
	}
	report := RefreshReport{From: from, StoppedAt: from}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	for round := from; round < from+r.maxRounds; round++ {
		report.StoppedAt = round

		draw, ok, err := r.lookup(ctx, round)
		if err != nil {
			report.Err = err
			report.Error = err.Error()
			r.logger.Warn("抓取開獎失敗", zap.Int("round", round), zap.Error(err))
			break
		}
		if !ok {
			break
		}

		report.Draws = append(report.Draws, draw)
		report.Fetched++
		report.StoppedAt = round + 1
	}

	if r.repo != nil && len(report.Draws) > 0 {
		// 寫入歸檔不受抓取時限影響
		if err := r.repo.SaveDraws(context.WithoutCancel(ctx), report.Draws); err != nil {
			r.logger.Warn("歸檔新開獎失敗", zap.Error(err))
		}
	}

	r.logger.Info("線上抓取完成",
		zap.Int("from", report.From),
		zap.Int("fetched", report.Fetched),
		zap.Int("stoppedAt", report.StoppedAt))
	return report
}

// lookup 先查快取，未命中再抓取並寫回快取
func (r *Refresher) lookup(ctx context.Context, round int) (analysis.Draw, bool, error) {
	if r.cache != nil {
		draw, ok, err := r.cache.Get(ctx, round)
		if err != nil {
			r.logger.Debug("讀取快取失敗", zap.Int("round", round), zap.Error(err))
		} else if ok {
			return draw, true, nil
		}
	}

	draw, ok, err := r.fetcher.FetchRound(ctx, round)
	if err != nil || !ok {
		return draw, ok, err
	}

	if r.cache != nil {
		if err := r.cache.Put(ctx, draw); err != nil {
			r.logger.Debug("寫入快取失敗", zap.Int("round", round), zap.Error(err))
		}
	}
	return draw, true, nil
}
