package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lotto_service/internal/lotto_service/analysis"
	"lotto_service/internal/lotto_service/config"
	"lotto_service/internal/lotto_service/history"
	"lotto_service/internal/lotto_service/metrics"
	"lotto_service/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// SnapshotStore 提供歷史資料快照
type SnapshotStore interface {
	Current(ctx context.Context) (*history.Snapshot, error)
	Refresh(ctx context.Context) (history.RefreshReport, error)
}

// LottoService 號碼推薦服務
type LottoService struct {
	store       SnapshotStore
	poolOpts    analysis.PoolOptions
	maxAttempts int
	seed        int64
	metrics     *metrics.Metrics // 可為 nil
	validator   *utils.CustomValidator
	now         func() time.Time
	logger      *zap.Logger
}

// Option 配置 LottoService
type Option func(*LottoService)

// WithPoolOptions 設置候選池參數
func WithPoolOptions(opts analysis.PoolOptions) Option {
	return func(s *LottoService) {
		s.poolOpts = opts
	}
}

// WithMaxAttempts 設置整批次最大嘗試次數
func WithMaxAttempts(n int) Option {
	return func(s *LottoService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithSeed 固定隨機種子，相同歷史資料與請求會得到相同結果
func WithSeed(seed int64) Option {
	return func(s *LottoService) {
		s.seed = seed
	}
}

// WithMetrics 設置指標
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *LottoService) {
		s.metrics = m
	}
}

// WithClock 設置時間來源，用於測試
func WithClock(now func() time.Time) Option {
	return func(s *LottoService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewLottoService 創建推薦服務
func NewLottoService(store SnapshotStore, logger *zap.Logger, opts ...Option) *LottoService {
	s := &LottoService{
		store:       store,
		poolOpts:    analysis.DefaultPoolOptions(),
		maxAttempts: analysis.MaxAttempts,
		validator:   utils.GetValidator(),
		now:         time.Now,
		logger:      logger.With(zap.String("component", "lotto_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// picker 有固定種子時每次請求建立新的生成器，否則共用全局生成器
func (s *LottoService) picker() analysis.WeightedPicker {
	if s.seed != 0 {
		return utils.NewRandomGenerator(s.seed)
	}
	return utils.GetRandomGenerator()
}

// Recommend 依歷史資料產生推薦組合
func (s *LottoService) Recommend(ctx context.Context, req RecommendRequest) (*Recommendation, error) {
	if err := s.validator.Validate(req); err != nil {
		s.countRequest("invalid")
		return nil, fmt.Errorf("%w: %w", analysis.ErrInvalidConfiguration, err)
	}

	snap, err := s.store.Current(ctx)
	if err != nil {
		s.countRequest("unavailable")
		s.logger.Warn("無法取得歷史資料", zap.Error(err))
		return nil, err
	}

	start := s.now()
	pool := analysis.BuildPoolWithOptions(snap.Frequencies, s.poolOpts)
	gen := analysis.NewGenerator(pool, snap.History, s.picker(),
		analysis.WithMaxAttempts(s.maxAttempts),
		analysis.WithLogger(s.logger))
	result := gen.Generate(req.GameCount, req.FixedNumbers)

	rec := &Recommendation{
		ID:           uuid.New().String(),
		Games:        toGames(result.Games),
		FixedNumbers: result.Fixed,
		Dropped:      pool.DroppedPreview(analysis.DroppedPreview),
		HistoryCount: len(snap.History),
		Attempts:     result.Attempts,
		Requested:    result.Requested,
		Exhausted:    result.Exhausted,
		GeneratedAt:  s.now(),
	}

	s.countRequest("ok")
	if s.metrics != nil {
		s.metrics.ObserveBatch(len(rec.Games), rec.Attempts, rec.Exhausted, s.now().Sub(start).Seconds())
	}

	s.logger.Info("產生推薦組合",
		zap.String("id", rec.ID),
		zap.Int("requested", rec.Requested),
		zap.Int("generated", len(rec.Games)),
		zap.Int("attempts", rec.Attempts),
		zap.Ints("fixed", rec.FixedNumbers))
	return rec, nil
}

// Analysis 返回目前候選池的分析結果
func (s *LottoService) Analysis(ctx context.Context) (*AnalysisReport, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return nil, err
	}

	pool := analysis.BuildPoolWithOptions(snap.Frequencies, s.poolOpts)
	survivors := pool.Survivors()

	boosted := make([]int, 0, len(survivors))
	weights := make(map[int]int, len(survivors))
	for _, n := range survivors {
		weights[n] = pool.Weight(n)
		if pool.IsBoosted(n) {
			boosted = append(boosted, n)
		}
	}

	freq := pool.Frequencies()
	return &AnalysisReport{
		Frequencies:  freq.AsMap(),
		Ranked:       append([]int(nil), pool.Ranked()...),
		Survivors:    survivors,
		Dropped:      pool.Dropped(),
		Boosted:      boosted,
		Weights:      weights,
		MaxCount:     pool.MaxCount(),
		DrawCount:    len(snap.Draws),
		LatestRound:  snap.LatestRound,
		AnalyzedFrom: snap.LoadedAt,
	}, nil
}

// HistorySummary 返回歷史資料摘要
func (s *LottoService) HistorySummary(ctx context.Context) (*HistorySummary, error) {
	snap, err := s.store.Current(ctx)
	if err != nil {
		return nil, err
	}
	s.observeDraws(snap)

	return &HistorySummary{
		DrawCount:      len(snap.Draws),
		DistinctTuples: len(snap.History),
		LatestRound:    snap.LatestRound,
		LoadedAt:       snap.LoadedAt,
		Source:         snap.Source,
	}, nil
}

// RefreshHistory 執行線上抓取並重新載入歷史資料
func (s *LottoService) RefreshHistory(ctx context.Context) (history.RefreshReport, error) {
	report, err := s.store.Refresh(ctx)
	if s.metrics != nil {
		outcome := err
		if outcome == nil {
			outcome = report.Err
		}
		s.metrics.ObserveRefresh(report.Fetched, outcome)
	}
	if err != nil {
		if !errors.Is(err, analysis.ErrInvalidConfiguration) {
			s.logger.Warn("刷新歷史資料失敗", zap.Error(err))
		}
		return report, err
	}

	if snap, err := s.store.Current(ctx); err == nil {
		s.observeDraws(snap)
	}
	return report, nil
}

func (s *LottoService) countRequest(outcome string) {
	if s.metrics != nil {
		s.metrics.RecommendRequests.WithLabelValues(outcome).Inc()
	}
}

func (s *LottoService) observeDraws(snap *history.Snapshot) {
	if s.metrics != nil {
		s.metrics.HistoryDraws.Set(float64(len(snap.Draws)))
	}
}

// ServiceParams 建立服務所需的依賴
type ServiceParams struct {
	fx.In

	Store   *history.Store
	Config  *config.AppConfig
	Metrics *metrics.Metrics `optional:"true"`
	Logger  *zap.Logger
}

// ProvideLottoService 提供推薦服務
func ProvideLottoService(p ServiceParams) *LottoService {
	return NewLottoService(p.Store, p.Logger,
		WithPoolOptions(p.Config.PoolOptions()),
		WithMaxAttempts(p.Config.Generator.MaxAttempts),
		WithSeed(p.Config.Generator.Seed),
		WithMetrics(p.Metrics),
	)
}

// Module 提供 FX 模塊
var Module = fx.Module("service",
	fx.Provide(ProvideLottoService),
)
