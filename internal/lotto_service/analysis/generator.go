package analysis

import (
	"go.uber.org/zap"
)

// Result 一次批次產生的結果
type Result struct {
	Games     []Combination `json:"games"`     // 依產生順序
	Requested int           `json:"requested"` // 要求組數
	Fixed     []int         `json:"fixed"`     // 實際套用的固定號碼
	Attempts  int           `json:"attempts"`  // 使用的嘗試次數
	Exhausted bool          `json:"exhausted"` // 嘗試次數用盡且未達要求組數
}

// Generator 產生不與歷史一等獎及同批次重複的號碼組合
type Generator struct {
	pool        *Pool
	history     HistorySet
	rng         WeightedPicker
	maxAttempts int
	logger      *zap.Logger
}

// GeneratorOption 設定 Generator
type GeneratorOption func(*Generator)

// WithMaxAttempts 設置整批次的最大嘗試次數
func WithMaxAttempts(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithLogger 設置日誌
func WithLogger(logger *zap.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger.With(zap.String("component", "generator"))
		}
	}
}

// NewGenerator 創建號碼產生器
func NewGenerator(pool *Pool, history HistorySet, rng WeightedPicker, opts ...GeneratorOption) *Generator {
	g := &Generator{
		pool:        pool,
		history:     history,
		rng:         rng,
		maxAttempts: MaxAttempts,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate 產生 gameCount 組號碼
// 嘗試次數是整批次共用，用盡時直接返回目前已接受的組合，不視為錯誤
func (g *Generator) Generate(gameCount int, fixed []int) Result {
	fixed = NormalizeFixed(fixed)
	if gameCount > MaxGameCount {
		gameCount = MaxGameCount
	}
	if gameCount < 0 {
		gameCount = 0
	}

	result := Result{
		Games:     make([]Combination, 0, gameCount),
		Requested: gameCount,
		Fixed:     fixed,
	}
	accepted := make(map[Combination]bool, gameCount)
	sampler := NewSampler(g.pool, g.rng)

	for len(result.Games) < gameCount {
		if result.Attempts >= g.maxAttempts {
			result.Exhausted = true
			break
		}
		result.Attempts++

		picked, err := sampler.Sample(fixed)
		if err != nil {
			g.logger.Debug("放棄本次抽樣", zap.Error(err), zap.Int("attempt", result.Attempts))
			continue
		}

		combo, ok := NewCombination(picked)
		if !ok {
			continue
		}
		if g.history.Contains(combo) || accepted[combo] {
			continue
		}

		accepted[combo] = true
		result.Games = append(result.Games, combo)
	}

	if result.Exhausted {
		g.logger.Warn("嘗試次數用盡，僅返回部分組合",
			zap.Error(ErrRetryBudgetExhausted),
			zap.Int("requested", gameCount),
			zap.Int("generated", len(result.Games)),
			zap.Int("attempts", result.Attempts))
	}

	return result
}
