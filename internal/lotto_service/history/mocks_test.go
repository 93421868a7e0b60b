package history

import (
	"context"
	"time"

	"lotto_service/internal/lotto_service/analysis"

	"github.com/stretchr/testify/mock"
)

// MockSource 模擬歷史資料來源
type MockSource struct {
	mock.Mock
	name string
}

func (m *MockSource) Name() string {
	return m.name
}

func (m *MockSource) Load(ctx context.Context) ([]analysis.Draw, error) {
	args := m.Called(ctx)
	if draws := args.Get(0); draws != nil {
		return draws.([]analysis.Draw), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockFetcher 模擬開獎抓取
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchRound(ctx context.Context, round int) (analysis.Draw, bool, error) {
	args := m.Called(ctx, round)
	return args.Get(0).(analysis.Draw), args.Bool(1), args.Error(2)
}

// MockRoundCache 模擬開獎快取
type MockRoundCache struct {
	mock.Mock
}

func (m *MockRoundCache) Get(ctx context.Context, round int) (analysis.Draw, bool, error) {
	args := m.Called(ctx, round)
	return args.Get(0).(analysis.Draw), args.Bool(1), args.Error(2)
}

func (m *MockRoundCache) Put(ctx context.Context, draw analysis.Draw) error {
	args := m.Called(ctx, draw)
	return args.Error(0)
}

// MockRepository 模擬開獎歸檔
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LoadDraws(ctx context.Context) ([]analysis.Draw, error) {
	args := m.Called(ctx)
	if draws := args.Get(0); draws != nil {
		return draws.([]analysis.Draw), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) SaveDraws(ctx context.Context, draws []analysis.Draw) error {
	args := m.Called(ctx, draws)
	return args.Error(0)
}

func (m *MockRepository) LatestRound(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockRedisManager 模擬 Redis
type MockRedisManager struct {
	mock.Mock
}

func (m *MockRedisManager) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockRedisManager) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisManager) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockRedisManager) Close() error {
	return m.Called().Error(0)
}

func (m *MockRedisManager) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func mkDraw(round int, numbers ...int) analysis.Draw {
	return analysis.Draw{Round: round, Numbers: numbers}
}
