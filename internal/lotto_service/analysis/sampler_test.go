package analysis

import (
	"testing"

	"lotto_service/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPicker 返回固定索引
type stubPicker struct {
	index int
	calls int
}

func (s *stubPicker) WeightedChoice(weights []int) int {
	s.calls++
	return s.index
}

func TestSampler_FillsSixWithFixed(t *testing.T) {
	pool := BuildPool(ascendingTable())
	rng := utils.NewRandomGenerator(42)
	sampler := NewSampler(pool, rng)

	for i := 0; i < 200; i++ {
		picked, err := sampler.Sample([]int{7, 14, 21})
		require.NoError(t, err)
		require.Len(t, picked, GameSize)

		assert.Subset(t, picked, []int{7, 14, 21})
		assert.IsIncreasing(t, picked)
		for _, n := range picked {
			if n == 7 || n == 14 || n == 21 {
				continue
			}
			assert.True(t, pool.IsSurvivor(n), "號碼 %d 不在候選號碼中", n)
		}
	}
}

func TestSampler_DroppedFixedNumberIsKept(t *testing.T) {
	pool := BuildPool(ascendingTable())
	sampler := NewSampler(pool, utils.NewRandomGenerator(7))

	picked, err := sampler.Sample([]int{45})
	require.NoError(t, err)
	assert.Contains(t, picked, 45)
	assert.Len(t, picked, GameSize)
}

func TestSampler_TinyPool(t *testing.T) {
	pool := BuildPoolWithOptions(ascendingTable(), PoolOptions{Cutoff: 6, BoostLimit: 30, BoostFactor: 2})
	sampler := NewSampler(pool, utils.NewRandomGenerator(1))

	picked, err := sampler.Sample(nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, picked)
}

func TestSampler_EmptyEligiblePool(t *testing.T) {
	pool := BuildPoolWithOptions(ascendingTable(), PoolOptions{Cutoff: 3, BoostLimit: 30, BoostFactor: 2})

	tests := []struct {
		name    string
		fixed   []int
		wantLen int
		wantErr bool
	}{
		{"NoFixed", nil, 0, true},
		{"TwoFixed", []int{10, 11}, 2, true},
		{"ThreeFixedFillsExactly", []int{10, 11, 12}, 6, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sampler := NewSampler(pool, utils.NewRandomGenerator(3))
			picked, err := sampler.Sample(tc.fixed)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrEmptyEligiblePool)
			} else {
				assert.NoError(t, err)
			}
			assert.Len(t, picked, tc.wantLen)
		})
	}
}

func TestSampler_DoesNotTrimFixed(t *testing.T) {
	pool := BuildPool(ascendingTable())
	picker := &stubPicker{index: 0}
	sampler := NewSampler(pool, picker)

	picked, err := sampler.Sample([]int{1, 2, 3, 4, 5, 6, 7})
	require.NoError(t, err)
	assert.Len(t, picked, 7)
	assert.Equal(t, 0, picker.calls, "已有足夠號碼時不應再抽")
}

func TestSampler_InvalidPickAborts(t *testing.T) {
	pool := BuildPool(ascendingTable())
	sampler := NewSampler(pool, &stubPicker{index: -1})

	picked, err := sampler.Sample([]int{9})
	assert.ErrorIs(t, err, ErrEmptyEligiblePool)
	assert.Equal(t, []int{9}, picked)
}

func TestSampler_RepeatedPickIsIgnored(t *testing.T) {
	pool := BuildPool(ascendingTable())
	picker := &sequencePicker{indices: []int{0, 0, 0, 1, 1, 2, 3, 4}}
	sampler := NewSampler(pool, picker)

	picked, err := sampler.Sample([]int{40})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 40}, picked)
	assert.Equal(t, 8, picker.pos, "重複選到的號碼不加入，需繼續抽取")
}

// sequencePicker 依序返回預先設定的索引
type sequencePicker struct {
	indices []int
	pos     int
}

func (s *sequencePicker) WeightedChoice(weights []int) int {
	if s.pos >= len(s.indices) {
		return -1
	}
	idx := s.indices[s.pos]
	s.pos++
	return idx
}
