package service

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"lotto_service/internal/lotto_service/analysis"
	"lotto_service/internal/lotto_service/history"
	"lotto_service/internal/lotto_service/metrics"
	"lotto_service/pkg/utils"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockStore 模擬歷史資料快照
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Current(ctx context.Context) (*history.Snapshot, error) {
	args := m.Called(ctx)
	if snap := args.Get(0); snap != nil {
		return snap.(*history.Snapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) Refresh(ctx context.Context) (history.RefreshReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(history.RefreshReport), args.Error(1)
}

var loadedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testSnapshot() *history.Snapshot {
	draws := make([]analysis.Draw, 0, 10)
	for i := 1; i <= 10; i++ {
		draws = append(draws, analysis.Draw{
			Round:   i,
			Numbers: []int{i, i + 5, i + 10, i + 15, i + 20, i + 25, i + 30},
		})
	}
	return &history.Snapshot{
		Draws:       draws,
		History:     analysis.NewHistorySet(draws),
		Frequencies: analysis.CountFrequencies(draws),
		LatestRound: 10,
		LoadedAt:    loadedAt,
		Source:      "file",
	}
}

func newTestService(store SnapshotStore, opts ...Option) *LottoService {
	opts = append([]Option{WithSeed(42)}, opts...)
	return NewLottoService(store, zap.NewNop(), opts...)
}

func TestRecommend(t *testing.T) {
	store := &MockStore{}
	store.On("Current", mock.Anything).Return(testSnapshot(), nil)
	m := metrics.New()
	svc := newTestService(store, WithMetrics(m))

	rec, err := svc.Recommend(context.Background(), RecommendRequest{GameCount: 5, FixedNumbers: []int{7, 14}})
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Len(t, rec.Games, 5)
	assert.Equal(t, 5, rec.Requested)
	assert.False(t, rec.Exhausted)
	assert.Equal(t, []int{7, 14}, rec.FixedNumbers)
	assert.Equal(t, 10, rec.HistoryCount)
	assert.LessOrEqual(t, len(rec.Dropped), analysis.DroppedPreview)

	// 排除的是出現次數最多的號碼
	freq := testSnapshot().Frequencies
	for _, d := range rec.Dropped {
		for n := analysis.MinNumber; n <= analysis.MaxNumber; n++ {
			if !slices.Contains(rec.Dropped, n) && freq.Count(n) > freq.Count(d) {
				t.Errorf("排除號碼 %d (%d 次) 少於保留號碼 %d (%d 次)", d, freq.Count(d), n, freq.Count(n))
			}
		}
	}
	assert.GreaterOrEqual(t, rec.Attempts, 5)

	seen := make(map[analysis.Combination]bool)
	history := testSnapshot().History
	for _, g := range rec.Games {
		assert.True(t, g.Numbers.Contains(7))
		assert.True(t, g.Numbers.Contains(14))
		assert.False(t, seen[g.Numbers], "同批次不可重複")
		assert.False(t, history.Contains(g.Numbers), "不可與歷史一等獎重複")
		seen[g.Numbers] = true

		require.Len(t, g.Colors, analysis.GameSize)
		for i, n := range g.Numbers {
			assert.Equal(t, analysis.BallColor(n), g.Colors[i])
		}
	}

	assert.Equal(t, 5.0, testutil.ToFloat64(m.GamesGenerated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecommendRequests.WithLabelValues("ok")))
}

func TestRecommend_SeedIsReproducible(t *testing.T) {
	store := &MockStore{}
	store.On("Current", mock.Anything).Return(testSnapshot(), nil)

	a, err := newTestService(store).Recommend(context.Background(), RecommendRequest{GameCount: 3})
	require.NoError(t, err)
	b, err := newTestService(store).Recommend(context.Background(), RecommendRequest{GameCount: 3})
	require.NoError(t, err)

	assert.Equal(t, a.Games, b.Games)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRecommend_InvalidRequest(t *testing.T) {
	tests := []struct {
		name  string
		req   RecommendRequest
		field string
	}{
		{"組數為零", RecommendRequest{GameCount: 0}, "game_count"},
		{"組數超過上限", RecommendRequest{GameCount: 11}, "game_count"},
		{"固定號碼過多", RecommendRequest{GameCount: 1, FixedNumbers: []int{1, 2, 3, 4, 5, 6}}, "fixed_numbers"},
		{"固定號碼重複", RecommendRequest{GameCount: 1, FixedNumbers: []int{3, 3}}, "fixed_numbers"},
		{"固定號碼超出範圍", RecommendRequest{GameCount: 1, FixedNumbers: []int{46}}, "fixed_numbers[0]"},
		{"固定號碼為零", RecommendRequest{GameCount: 1, FixedNumbers: []int{0}}, "fixed_numbers[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockStore{}
			m := metrics.New()
			svc := newTestService(store, WithMetrics(m))

			rec, err := svc.Recommend(context.Background(), tt.req)
			assert.Nil(t, rec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, analysis.ErrInvalidConfiguration))

			var verrs utils.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.NotEmpty(t, verrs)
			assert.Equal(t, tt.field, verrs[0].Field)

			store.AssertNotCalled(t, "Current", mock.Anything)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.RecommendRequests.WithLabelValues("invalid")))
		})
	}
}

func TestRecommend_DataUnavailable(t *testing.T) {
	store := &MockStore{}
	store.On("Current", mock.Anything).Return(nil, analysis.ErrDataUnavailable)
	svc := newTestService(store)

	rec, err := svc.Recommend(context.Background(), RecommendRequest{GameCount: 1})
	assert.Nil(t, rec)
	assert.True(t, errors.Is(err, analysis.ErrDataUnavailable))
}

func TestRecommend_ExhaustedBudget(t *testing.T) {
	store := &MockStore{}
	store.On("Current", mock.Anything).Return(testSnapshot(), nil)
	m := metrics.New()
	svc := newTestService(store, WithMaxAttempts(3), WithMetrics(m))

	rec, err := svc.Recommend(context.Background(), RecommendRequest{GameCount: 10})
	require.NoError(t, err)
	assert.True(t, rec.Exhausted)
	assert.Equal(t, 3, rec.Attempts)
	assert.LessOrEqual(t, len(rec.Games), 3)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExhaustedBatches))
}

func TestAnalysis(t *testing.T) {
	store := &MockStore{}
	snap := testSnapshot()
	store.On("Current", mock.Anything).Return(snap, nil)
	svc := newTestService(store)

	report, err := svc.Analysis(context.Background())
	require.NoError(t, err)

	assert.Len(t, report.Ranked, analysis.MaxNumber)
	assert.Len(t, report.Survivors, analysis.Cutoff)
	assert.Len(t, report.Dropped, analysis.MaxNumber-analysis.Cutoff)
	assert.Len(t, report.Boosted, analysis.BoostLimit)
	assert.Len(t, report.Weights, analysis.Cutoff)
	assert.Equal(t, 10, report.DrawCount)
	assert.Equal(t, 10, report.LatestRound)
	assert.Equal(t, loadedAt, report.AnalyzedFrom)

	for _, n := range report.Boosted {
		base := report.MaxCount - report.Frequencies[n] + 1
		assert.Equal(t, base*2, report.Weights[n], "號碼 %d", n)
	}
	for _, n := range report.Dropped {
		_, ok := report.Weights[n]
		assert.False(t, ok)
	}
}

func TestHistorySummary(t *testing.T) {
	store := &MockStore{}
	store.On("Current", mock.Anything).Return(testSnapshot(), nil)
	m := metrics.New()
	svc := newTestService(store, WithMetrics(m))

	summary, err := svc.HistorySummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &HistorySummary{
		DrawCount:      10,
		DistinctTuples: 10,
		LatestRound:    10,
		LoadedAt:       loadedAt,
		Source:         "file",
	}, summary)
	assert.Equal(t, 10.0, testutil.ToFloat64(m.HistoryDraws))
}

func TestRefreshHistory(t *testing.T) {
	t.Run("抓取成功", func(t *testing.T) {
		store := &MockStore{}
		report := history.RefreshReport{From: 11, Fetched: 1, StoppedAt: 12}
		store.On("Refresh", mock.Anything).Return(report, nil)
		store.On("Current", mock.Anything).Return(testSnapshot(), nil)
		m := metrics.New()
		svc := newTestService(store, WithMetrics(m))

		got, err := svc.RefreshHistory(context.Background())
		require.NoError(t, err)
		assert.Equal(t, report, got)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryRefreshes.WithLabelValues(metrics.RefreshSuccess)))
	})

	t.Run("抓取出錯記錄在報告中", func(t *testing.T) {
		store := &MockStore{}
		fetchErr := errors.New("timeout")
		store.On("Refresh", mock.Anything).Return(history.RefreshReport{From: 11, StoppedAt: 11, Err: fetchErr, Error: "timeout"}, nil)
		store.On("Current", mock.Anything).Return(testSnapshot(), nil)
		m := metrics.New()
		svc := newTestService(store, WithMetrics(m))

		got, err := svc.RefreshHistory(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "timeout", got.Error)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.HistoryRefreshes.WithLabelValues(metrics.RefreshFailed)))
	})

	t.Run("未啟用線上抓取", func(t *testing.T) {
		store := &MockStore{}
		store.On("Refresh", mock.Anything).Return(history.RefreshReport{}, analysis.ErrInvalidConfiguration)
		svc := newTestService(store)

		_, err := svc.RefreshHistory(context.Background())
		assert.True(t, errors.Is(err, analysis.ErrInvalidConfiguration))
		store.AssertNotCalled(t, "Current", mock.Anything)
	})
}
