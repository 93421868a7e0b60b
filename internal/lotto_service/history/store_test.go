package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"lotto_service/internal/lotto_service/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func sampleDraws() []analysis.Draw {
	return []analysis.Draw{
		mkDraw(1, 1, 2, 3, 4, 5, 6, 7),
		mkDraw(2, 10, 11, 12, 13, 14, 15, 16),
	}
}

func TestStore_CurrentCachesSnapshot(t *testing.T) {
	src := &MockSource{name: "file"}
	src.On("Load", mock.Anything).Return(sampleDraws(), nil)

	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewStore(NewLoader(zap.NewNop(), src), zap.NewNop(),
		WithClock(clock.Now), WithRefreshInterval(time.Hour))

	snap, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Draws, 2)
	assert.Len(t, snap.History, 2)
	assert.Equal(t, 2, snap.LatestRound)
	assert.Equal(t, 1, snap.Frequencies.Count(7))
	assert.Equal(t, "file", snap.Source)

	again, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.Same(t, snap, again)
	src.AssertNumberOfCalls(t, "Load", 1)

	// 超過有效時間後重新載入
	clock.Advance(2 * time.Hour)
	reloaded, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, snap, reloaded)
	src.AssertNumberOfCalls(t, "Load", 2)

	// 失效後重新載入
	store.Invalidate()
	_, err = store.Current(context.Background())
	require.NoError(t, err)
	src.AssertNumberOfCalls(t, "Load", 3)
}

func TestStore_KeepsPreviousSnapshotOnFailure(t *testing.T) {
	src := &MockSource{name: "file"}
	src.On("Load", mock.Anything).Return(sampleDraws(), nil).Once()
	src.On("Load", mock.Anything).Return(nil, errors.New("disk error"))

	store := NewStore(NewLoader(zap.NewNop(), src), zap.NewNop())

	first, err := store.Current(context.Background())
	require.NoError(t, err)

	store.Invalidate()
	second, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestStore_DataUnavailable(t *testing.T) {
	src := &MockSource{name: "file"}
	src.On("Load", mock.Anything).Return(nil, analysis.ErrDataUnavailable)

	store := NewStore(NewLoader(zap.NewNop(), src), zap.NewNop())

	_, err := store.Current(context.Background())
	assert.ErrorIs(t, err, analysis.ErrDataUnavailable)
	assert.Nil(t, store.snapshot)
}

func TestStore_ConcurrentCurrent(t *testing.T) {
	src := &MockSource{name: "file"}
	src.On("Load", mock.Anything).Return(sampleDraws(), nil)

	store := NewStore(NewLoader(zap.NewNop(), src), zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := store.Current(context.Background())
			assert.NoError(t, err)
			assert.Len(t, snap.Draws, 2)
		}()
	}
	wg.Wait()

	assert.NotNil(t, store.snapshot)
}

func TestStore_Refresh(t *testing.T) {
	src := &MockSource{name: "file"}
	src.On("Load", mock.Anything).Return(sampleDraws(), nil)

	fetcher := new(MockFetcher)
	fetcher.On("FetchRound", mock.Anything, 3).Return(mkDraw(3, 20, 21, 22, 23, 24, 25, 26), true, nil)
	fetcher.On("FetchRound", mock.Anything, 4).Return(analysis.Draw{}, false, nil)

	live := NewMemorySource()
	store := NewStore(NewLoader(zap.NewNop(), src, live), zap.NewNop(),
		WithRefresher(NewRefresher(fetcher, zap.NewNop()), live))

	report, err := store.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.From)
	assert.Equal(t, 1, report.Fetched)

	snap, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Draws, 3)
	assert.Equal(t, 3, snap.LatestRound)
	assert.Equal(t, "file,live", snap.Source)
}

func TestStore_RefreshWithoutHistoryUsesStartRound(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchRound", mock.Anything, 100).Return(mkDraw(100, 1, 2, 3, 4, 5, 6, 7), true, nil)
	fetcher.On("FetchRound", mock.Anything, 101).Return(analysis.Draw{}, false, nil)

	live := NewMemorySource()
	store := NewStore(NewLoader(zap.NewNop(), live), zap.NewNop(),
		WithRefresher(NewRefresher(fetcher, zap.NewNop()), live),
		WithStartRound(100))

	report, err := store.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, report.From)

	snap, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, snap.LatestRound)
}

func TestStore_RefreshSkipsUnnumberedFileRounds(t *testing.T) {
	// 預設格式：標題列、表頭列，無期數欄
	content := "1st lotto\nn1,n2,n3,n4,n5,n6,bonus\n1,2,3,4,5,6,7\n10,11,12,13,14,15,16\n"
	path := filepath.Join(t.TempDir(), "draws.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	fetcher := new(MockFetcher)
	fetcher.On("FetchRound", mock.Anything, 3).Return(mkDraw(3, 20, 21, 22, 23, 24, 25, 26), true, nil)
	fetcher.On("FetchRound", mock.Anything, 4).Return(analysis.Draw{}, false, nil)

	live := NewMemorySource()
	store := NewStore(NewLoader(zap.NewNop(), NewCSVSource(path), live), zap.NewNop(),
		WithRefresher(NewRefresher(fetcher, zap.NewNop()), live),
		WithStartRound(1))

	before, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, before.LatestRound)
	assert.Equal(t, 2, before.Unnumbered)

	report, err := store.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.From)
	assert.Equal(t, 1, report.Fetched)

	after, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.Len(t, after.Draws, 3)
	assert.Equal(t, 1, after.Frequencies.Count(1), "已載入的開獎不可重複計數")
	assert.Equal(t, 1, after.Frequencies.Count(20))
	fetcher.AssertNotCalled(t, "FetchRound", mock.Anything, 1)
	fetcher.AssertNotCalled(t, "FetchRound", mock.Anything, 2)

	// 再次刷新從最新期數之後開始
	report, err = store.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, report.From)
	assert.Equal(t, 0, report.Fetched)
}

func TestStore_RefreshStartsAfterArchive(t *testing.T) {
	tests := []struct {
		name     string
		archived int
		err      error
		want     int
	}{
		{name: "歸檔領先快照", archived: 5, want: 6},
		{name: "歸檔落後快照", archived: 1, want: 3},
		{name: "查詢歸檔失敗", err: errors.New("db down"), want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &MockSource{name: "file"}
			src.On("Load", mock.Anything).Return(sampleDraws(), nil)

			repo := new(MockRepository)
			repo.On("LatestRound", mock.Anything).Return(tt.archived, tt.err)

			fetcher := new(MockFetcher)
			fetcher.On("FetchRound", mock.Anything, tt.want).Return(analysis.Draw{}, false, nil)

			live := NewMemorySource()
			store := NewStore(NewLoader(zap.NewNop(), src, live), zap.NewNop(),
				WithRefresher(NewRefresher(fetcher, zap.NewNop(), WithRepository(repo)), live))

			report, err := store.Refresh(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, report.From)
			repo.AssertExpectations(t)
		})
	}
}

func TestStore_ReloadIgnoresCallerCancellation(t *testing.T) {
	src := &MockSource{name: "file"}
	src.On("Load", mock.Anything).Return(sampleDraws(), nil).Run(func(args mock.Arguments) {
		assert.NoError(t, args.Get(0).(context.Context).Err(), "載入時不應帶著呼叫者的取消")
	})

	store := NewStore(NewLoader(zap.NewNop(), src), zap.NewNop(), WithLoadTimeout(time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap, err := store.Current(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Draws, 2)
	src.AssertNumberOfCalls(t, "Load", 1)
}

func TestStore_RefreshDisabled(t *testing.T) {
	store := NewStore(NewLoader(zap.NewNop()), zap.NewNop())

	_, err := store.Refresh(context.Background())
	assert.ErrorIs(t, err, analysis.ErrInvalidConfiguration)
}
