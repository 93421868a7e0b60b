package history

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"lotto_service/internal/lotto_service/analysis"

	"go.uber.org/zap"
)

// Loader 依序讀取所有已配置的來源並合併
type Loader struct {
	sources []Source
	logger  *zap.Logger
}

// NewLoader 創建 Loader
func NewLoader(logger *zap.Logger, sources ...Source) *Loader {
	return &Loader{
		sources: sources,
		logger:  logger.With(zap.String("component", "history_loader")),
	}
}

// LoadResult 合併後的結果
type LoadResult struct {
	Draws   []analysis.Draw
	Sources []string // 成功讀取的來源名稱
}

// Load 讀取並合併所有來源
// 有期數的資料依期數去重，後面的來源覆蓋前面的；無期數的資料全部保留
// 只有在所有來源都失敗時才返回 ErrDataUnavailable
func (l *Loader) Load(ctx context.Context) (*LoadResult, error) {
	if len(l.sources) == 0 {
		return nil, analysis.NewLottoErrorWithFormat(analysis.ErrDataUnavailable, "未配置任何歷史資料來源")
	}

	var (
		unnumbered []analysis.Draw
		byRound    = make(map[int]analysis.Draw)
		loaded     []string
		errs       []error
	)

	for _, src := range l.sources {
		draws, err := src.Load(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			l.logger.Warn("讀取歷史資料來源失敗",
				zap.String("source", src.Name()),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}

		l.logger.Debug("讀取歷史資料來源",
			zap.String("source", src.Name()),
			zap.Int("draws", len(draws)))
		loaded = append(loaded, src.Name())

		for _, d := range draws {
			if d.Round > 0 {
				byRound[d.Round] = d
			} else {
				unnumbered = append(unnumbered, d)
			}
		}
	}

	if len(loaded) == 0 {
		return nil, fmt.Errorf("%w: %w", analysis.ErrDataUnavailable, errors.Join(errs...))
	}

	numbered := make([]analysis.Draw, 0, len(byRound))
	for _, d := range byRound {
		numbered = append(numbered, d)
	}
	sortByRound(numbered)

	return &LoadResult{
		Draws:   append(unnumbered, numbered...),
		Sources: loaded,
	}, nil
}

func sortByRound(draws []analysis.Draw) {
	sort.SliceStable(draws, func(i, j int) bool {
		return draws[i].Round < draws[j].Round
	})
}

// LatestRound 返回資料中最大的期數，沒有期數時為 0
func LatestRound(draws []analysis.Draw) int {
	latest := 0
	for _, d := range draws {
		if d.Round > latest {
			latest = d.Round
		}
	}
	return latest
}
