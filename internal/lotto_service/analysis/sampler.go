package analysis

import "sort"

// WeightedPicker 依權重返回索引，無法選擇時返回 -1
type WeightedPicker interface {
	WeightedChoice(weights []int) int
}

// Sampler 從候選池抽出一組號碼
type Sampler struct {
	pool *Pool
	rng  WeightedPicker
}

// NewSampler 創建抽樣器
func NewSampler(pool *Pool, rng WeightedPicker) *Sampler {
	return &Sampler{pool: pool, rng: rng}
}

// Sample 以固定號碼為起點，依權重補滿 6 個號碼
// 每次抽取可重複選到同一號碼，只有新號碼才加入；權重不因已加入的號碼重新計算
// 可抽號碼不足以補滿時放棄本次抽樣，返回不足 6 個的結果與 ErrEmptyEligiblePool
func (s *Sampler) Sample(fixed []int) ([]int, error) {
	selected := make(map[int]bool, GameSize)
	for _, n := range fixed {
		selected[n] = true
	}

	numbers, weights := s.pool.Eligible(selected)
	if len(selected)+len(numbers) < GameSize {
		return sortedKeys(selected), ErrEmptyEligiblePool
	}

	for len(selected) < GameSize {
		idx := s.rng.WeightedChoice(weights)
		if idx < 0 || idx >= len(numbers) {
			return sortedKeys(selected), ErrEmptyEligiblePool
		}
		selected[numbers[idx]] = true
	}

	return sortedKeys(selected), nil
}

func sortedKeys(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
