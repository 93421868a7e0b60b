package history

import (
	"context"
	"strings"
	"sync"
	"time"

	"lotto_service/internal/lotto_service/analysis"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultRefreshInterval = time.Hour        // 快照的有效時間
	DefaultLoadTimeout     = 30 * time.Second // 單次載入的時限
)

// Snapshot 一次載入的歷史資料，建立後不再變動
type Snapshot struct {
	Draws       []analysis.Draw
	History     analysis.HistorySet
	Frequencies analysis.FrequencyTable
	LatestRound int
	Unnumbered  int // 無期數的資料筆數，檔案依序對應第 1..N 期
	LoadedAt    time.Time
	Source      string
}

func newSnapshot(result *LoadResult, now time.Time) *Snapshot {
	return &Snapshot{
		Draws:       result.Draws,
		History:     analysis.NewHistorySet(result.Draws),
		Frequencies: analysis.CountFrequencies(result.Draws),
		LatestRound: LatestRound(result.Draws),
		Unnumbered:  countUnnumbered(result.Draws),
		LoadedAt:    now,
		Source:      strings.Join(result.Sources, ","),
	}
}

func countUnnumbered(draws []analysis.Draw) int {
	n := 0
	for _, d := range draws {
		if d.Round <= 0 {
			n++
		}
	}
	return n
}

// Store 保存目前的快照，過期或失效時重新載入
type Store struct {
	loader      *Loader
	refresher   *Refresher    // 可為 nil
	live        *MemorySource // 線上抓取結果
	startRound  int
	interval    time.Duration
	loadTimeout time.Duration
	now         func() time.Time
	logger      *zap.Logger

	mu       sync.RWMutex
	snapshot *Snapshot
	stale    bool

	group     singleflight.Group
	refreshMu sync.Mutex
}

// StoreOption 配置 Store
type StoreOption func(*Store)

// WithRefresher 啟用線上抓取，抓到的資料放入 live 來源
func WithRefresher(refresher *Refresher, live *MemorySource) StoreOption {
	return func(s *Store) {
		s.refresher = refresher
		s.live = live
	}
}

// WithRefreshInterval 設置快照的有效時間
func WithRefreshInterval(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLoadTimeout 設置單次載入的時限
func WithLoadTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.loadTimeout = d
		}
	}
}

// WithStartRound 設置線上抓取的最小起始期數
func WithStartRound(round int) StoreOption {
	return func(s *Store) {
		if round > 0 {
			s.startRound = round
		}
	}
}

// WithClock 替換時間來源
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore 創建 Store
func NewStore(loader *Loader, logger *zap.Logger, opts ...StoreOption) *Store {
	s := &Store{
		loader:     loader,
		startRound:  1,
		interval:    DefaultRefreshInterval,
		loadTimeout: DefaultLoadTimeout,
		now:         time.Now,
		logger:      logger.With(zap.String("component", "history_store")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current 返回目前的快照，必要時重新載入
// 重新載入失敗時沿用舊快照；從未成功載入過則返回錯誤
func (s *Store) Current(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	snap, stale := s.snapshot, s.stale
	s.mu.RUnlock()

	if snap != nil && !stale && s.now().Sub(snap.LoadedAt) < s.interval {
		return snap, nil
	}

	fresh, err := s.reload(ctx)
	if err != nil {
		if snap != nil {
			s.logger.Warn("重新載入歷史資料失敗，沿用舊快照",
				zap.Time("loadedAt", snap.LoadedAt),
				zap.Error(err))
			return snap, nil
		}
		return nil, err
	}
	return fresh, nil
}

// reload 併發的載入請求共用同一次載入
// 載入不跟隨發起者的 ctx 取消，避免短時限的呼叫者連帶影響其他等待者
func (s *Store) reload(ctx context.Context) (*Snapshot, error) {
	v, err, _ := s.group.Do("reload", func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.loadTimeout)
		defer cancel()

		result, err := s.loader.Load(loadCtx)
		if err != nil {
			return nil, err
		}

		snap := newSnapshot(result, s.now())

		s.mu.Lock()
		s.snapshot = snap
		s.stale = false
		s.mu.Unlock()

		s.logger.Info("載入歷史資料",
			zap.Int("draws", len(snap.Draws)),
			zap.Int("history", len(snap.History)),
			zap.Int("latestRound", snap.LatestRound),
			zap.String("source", snap.Source))
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

// Invalidate 標記快照失效，下次 Current 時重新載入
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

// Refresh 執行線上抓取後重新載入快照
func (s *Store) Refresh(ctx context.Context) (RefreshReport, error) {
	if s.refresher == nil {
		return RefreshReport{}, analysis.NewLottoErrorWithFormat(analysis.ErrInvalidConfiguration, "未啟用線上抓取")
	}

	// 同一時間只跑一次抓取
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	report := s.refresher.Refresh(ctx, s.nextRound(ctx))
	if report.Fetched > 0 {
		s.live.Add(report.Draws...)
		s.Invalidate()
		if _, err := s.Current(ctx); err != nil {
			return report, err
		}
	}
	return report, nil
}

// nextRound 計算下一個要抓取的期數
// 無期數的檔案資料視為第 1..N 期，避免重複抓取已載入的開獎
func (s *Store) nextRound(ctx context.Context) int {
	next := s.startRound
	if snap, err := s.Current(ctx); err == nil {
		next = max(next, snap.LatestRound+1, snap.Unnumbered+1)
	}

	archived, err := s.refresher.ArchivedRound(ctx)
	if err != nil {
		s.logger.Warn("查詢歸檔最新期數失敗", zap.Error(err))
		return next
	}
	return max(next, archived+1)
}
