package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	MinNumber = 1  // 最小號碼
	MaxNumber = 45 // 最大號碼
	GameSize  = 6  // 每組號碼數
	DrawSize  = 7  // 開獎號碼數（6 個主號碼 + 1 個特別號）

	Cutoff          = 40   // 保留的候選號碼數
	BoostLimit      = 30   // 排名在此之前的候選號碼權重加倍
	BoostFactor     = 2.0  // 加權倍數
	DefaultMaxCount = 100  // 無資料時的最大出現次數
	MaxAttempts     = 1000 // 整批次的最大嘗試次數

	MaxFixedNumbers = 5  // 固定號碼上限
	MinGameCount    = 1  // 最少組數
	MaxGameCount    = 10 // 最多組數
	DroppedPreview  = 5  // 回報排除號碼的數量上限
)

// Draw 代表一期歷史開獎
type Draw struct {
	Round   int    `json:"round"`          // 期數，檔案來源無期數時為 0
	Numbers []int  `json:"numbers"`        // 依原順序的號碼，前 6 個為主號碼，第 7 個為特別號
	Date    string `json:"date,omitempty"` // 開獎日期 (YYYY-MM-DD)，來源未提供時為空
}

// HasMain 是否包含完整的 6 個主號碼
func (d Draw) HasMain() bool {
	return len(d.Numbers) >= GameSize
}

// Main 返回排序後的主號碼組合
func (d Draw) Main() (Combination, bool) {
	if !d.HasMain() {
		return Combination{}, false
	}
	return NewCombination(d.Numbers[:GameSize])
}

// Bonus 返回特別號
func (d Draw) Bonus() (int, bool) {
	if len(d.Numbers) < DrawSize {
		return 0, false
	}
	return d.Numbers[GameSize], true
}

// Combination 代表一組排序後的 6 個號碼
type Combination [GameSize]int

// NewCombination 從號碼建立排序後的組合，號碼數量不為 6 或有重複時返回 false
func NewCombination(numbers []int) (Combination, bool) {
	var c Combination
	if len(numbers) != GameSize {
		return c, false
	}
	sorted := append([]int(nil), numbers...)
	sort.Ints(sorted)
	for i, n := range sorted {
		if i > 0 && sorted[i-1] == n {
			return c, false
		}
		c[i] = n
	}
	return c, true
}

// Numbers 返回組合的號碼切片
func (c Combination) Numbers() []int {
	out := make([]int, GameSize)
	copy(out, c[:])
	return out
}

// Contains 檢查組合是否包含號碼
func (c Combination) Contains(n int) bool {
	for _, v := range c {
		if v == n {
			return true
		}
	}
	return false
}

// String 返回 "1-2-3-4-5-6" 格式
func (c Combination) String() string {
	parts := make([]string, GameSize)
	for i, n := range c {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}

// MarshalJSON 以陣列形式輸出
func (c Combination) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%d,%d,%d,%d,%d,%d]", c[0], c[1], c[2], c[3], c[4], c[5])), nil
}

// HistorySet 歷史一等獎組合集合
type HistorySet map[Combination]struct{}

// NewHistorySet 從歷史開獎建立集合，少於 6 個號碼的開獎略過
func NewHistorySet(draws []Draw) HistorySet {
	set := make(HistorySet, len(draws))
	for _, d := range draws {
		if c, ok := d.Main(); ok {
			set[c] = struct{}{}
		}
	}
	return set
}

// Contains 檢查組合是否曾為一等獎
func (h HistorySet) Contains(c Combination) bool {
	_, ok := h[c]
	return ok
}

// IsValidNumber 號碼是否在 1-45 之間
func IsValidNumber(n int) bool {
	return n >= MinNumber && n <= MaxNumber
}

// ValidateNumber 驗證號碼是否有效
func ValidateNumber(n int) error {
	if !IsValidNumber(n) {
		return NewLottoErrorWithFormat(ErrInvalidConfiguration, "無效的號碼: %d，號碼必須在 %d-%d 之間", n, MinNumber, MaxNumber)
	}
	return nil
}

// NormalizeFixed 忽略範圍外及重複的號碼，保留原順序並截至 5 個
func NormalizeFixed(fixed []int) []int {
	out := make([]int, 0, len(fixed))
	seen := make(map[int]bool, len(fixed))
	for _, n := range fixed {
		if !IsValidNumber(n) || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
		if len(out) == MaxFixedNumbers {
			break
		}
	}
	return out
}

// BallColor 依號碼區間返回球的顏色
func BallColor(n int) string {
	switch {
	case n >= 1 && n <= 10:
		return "yellow"
	case n >= 11 && n <= 20:
		return "blue"
	case n >= 21 && n <= 30:
		return "red"
	case n >= 31 && n <= 40:
		return "gray"
	case n >= 41 && n <= 45:
		return "green"
	default:
		return ""
	}
}
