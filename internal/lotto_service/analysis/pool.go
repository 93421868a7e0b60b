package analysis

// PoolOptions 候選池參數
type PoolOptions struct {
	Cutoff      int     // 保留的候選號碼數
	BoostLimit  int     // 排名小於此值者加權
	BoostFactor float64 // 加權倍數
}

// DefaultPoolOptions 返回預設參數
func DefaultPoolOptions() PoolOptions {
	return PoolOptions{
		Cutoff:      Cutoff,
		BoostLimit:  BoostLimit,
		BoostFactor: BoostFactor,
	}
}

// Pool 一次分析的候選池快照，建立後不再變動
type Pool struct {
	freq      FrequencyTable
	ranked    RankedPool
	survivors []int
	dropped   []int
	maxCount  int
	opts      PoolOptions
	rankIndex map[int]int // 號碼 -> 在候選號碼中的排名
}

// BuildPool 以預設參數建立候選池
func BuildPool(ft FrequencyTable) *Pool {
	return BuildPoolWithOptions(ft, DefaultPoolOptions())
}

// BuildPoolWithOptions 依出現次數排序後切分為候選號碼與排除號碼
func BuildPoolWithOptions(ft FrequencyTable, opts PoolOptions) *Pool {
	if opts.Cutoff <= 0 || opts.Cutoff > MaxNumber {
		opts.Cutoff = Cutoff
	}
	if opts.BoostLimit < 0 {
		opts.BoostLimit = 0
	}
	if opts.BoostFactor <= 0 {
		opts.BoostFactor = 1
	}

	ranked := RankCandidates(ft)
	survivors := append([]int(nil), ranked[:opts.Cutoff]...)
	dropped := append([]int(nil), ranked[opts.Cutoff:]...)

	rankIndex := make(map[int]int, len(survivors))
	for i, n := range survivors {
		rankIndex[n] = i
	}

	return &Pool{
		freq:      ft,
		ranked:    ranked,
		survivors: survivors,
		dropped:   dropped,
		maxCount:  ft.MaxCount(),
		opts:      opts,
		rankIndex: rankIndex,
	}
}

// Frequencies 返回出現次數表
func (p *Pool) Frequencies() FrequencyTable {
	return p.freq
}

// Ranked 返回完整排序
func (p *Pool) Ranked() RankedPool {
	return append(RankedPool(nil), p.ranked...)
}

// Survivors 返回候選號碼（排名前 Cutoff 名）
func (p *Pool) Survivors() []int {
	return append([]int(nil), p.survivors...)
}

// Dropped 返回因出現過多而排除的號碼
func (p *Pool) Dropped() []int {
	return append([]int(nil), p.dropped...)
}

// DroppedPreview 返回最多 limit 個排除號碼
func (p *Pool) DroppedPreview(limit int) []int {
	if limit < 0 || limit > len(p.dropped) {
		limit = len(p.dropped)
	}
	return append([]int(nil), p.dropped[:limit]...)
}

// MaxCount 返回計算權重使用的最大出現次數
func (p *Pool) MaxCount() int {
	return p.maxCount
}

// IsSurvivor 號碼是否為候選號碼
func (p *Pool) IsSurvivor(n int) bool {
	_, ok := p.rankIndex[n]
	return ok
}

// RankIndex 返回號碼在候選號碼中的排名，非候選號碼返回 -1
func (p *Pool) RankIndex(n int) int {
	idx, ok := p.rankIndex[n]
	if !ok {
		return -1
	}
	return idx
}

// IsBoosted 號碼是否享有加權
func (p *Pool) IsBoosted(n int) bool {
	idx, ok := p.rankIndex[n]
	return ok && idx < p.opts.BoostLimit
}

// BaseWeight 返回未加權的權重 (max_count - count) + 1
func (p *Pool) BaseWeight(n int) int {
	w := p.maxCount - p.freq.Count(n) + 1
	if w < 1 {
		w = 1
	}
	return w
}

// Weight 返回號碼的抽樣權重
func (p *Pool) Weight(n int) int {
	w := p.BaseWeight(n)
	if p.IsBoosted(n) {
		w = int(float64(w) * p.opts.BoostFactor)
	}
	if w < 1 {
		w = 1
	}
	return w
}

// Eligible 返回扣除已選號碼後的候選號碼及對應權重
// 加權依據仍是完整候選號碼中的排名
func (p *Pool) Eligible(selected map[int]bool) ([]int, []int) {
	numbers := make([]int, 0, len(p.survivors))
	weights := make([]int, 0, len(p.survivors))
	for _, n := range p.survivors {
		if selected[n] {
			continue
		}
		numbers = append(numbers, n)
		weights = append(weights, p.Weight(n))
	}
	return numbers, weights
}

// Weights 返回所有候選號碼的權重，順序與 Survivors 相同
func (p *Pool) Weights() []int {
	_, weights := p.Eligible(nil)
	return weights
}
