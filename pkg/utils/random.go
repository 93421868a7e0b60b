package utils

import (
	"math/rand"
	"sync"
	"time"
)

// RandomGenerator 提供線程安全的隨機數生成
type RandomGenerator struct {
	rng  *rand.Rand
	lock sync.Mutex
}

var (
	defaultGenerator *RandomGenerator
	once             sync.Once
)

// GetRandomGenerator 返回預設的隨機數生成器實例
func GetRandomGenerator() *RandomGenerator {
	once.Do(func() {
		defaultGenerator = NewRandomGenerator(time.Now().UnixNano())
	})
	return defaultGenerator
}

// NewRandomGenerator 以指定種子建立生成器，相同種子產生相同序列
func NewRandomGenerator(seed int64) *RandomGenerator {
	return &RandomGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Intn 生成 [0,n) 範圍內的隨機整數
func (r *RandomGenerator) Intn(n int) int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.rng.Intn(n)
}

// WeightedChoice 根據權重進行隨機選擇
// weights 是權重列表，返回選中的索引；權重總和不為正時返回 -1
func (r *RandomGenerator) WeightedChoice(weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	r.lock.Lock()
	choice := r.rng.Intn(total)
	r.lock.Unlock()

	for i, w := range weights {
		if w <= 0 {
			continue
		}
		choice -= w
		if choice < 0 {
			return i
		}
	}
	return len(weights) - 1
}
