package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedChoice(t *testing.T) {
	r := NewRandomGenerator(1)

	assert.Equal(t, -1, r.WeightedChoice(nil))
	assert.Equal(t, -1, r.WeightedChoice([]int{0, -3}))

	// 只有一個正權重時必定選中
	for i := 0; i < 20; i++ {
		assert.Equal(t, 2, r.WeightedChoice([]int{0, 0, 5, 0}))
	}
}

func TestWeightedChoice_Distribution(t *testing.T) {
	r := NewRandomGenerator(42)
	counts := make([]int, 2)
	for i := 0; i < 10000; i++ {
		counts[r.WeightedChoice([]int{1, 3})]++
	}
	// 權重 1:3，容許誤差
	assert.InDelta(t, 0.75, float64(counts[1])/10000, 0.03)
}

func TestSeedIsDeterministic(t *testing.T) {
	a, b := NewRandomGenerator(7), NewRandomGenerator(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Intn(45), b.Intn(45))
	}
}

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, VersionString(), Version)
}
