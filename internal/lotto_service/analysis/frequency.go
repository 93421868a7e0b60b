package analysis

import "sort"

// FrequencyTable 號碼出現次數，索引即號碼，索引 0 不使用
type FrequencyTable [MaxNumber + 1]int

// CountFrequencies 統計所有開獎號碼（含特別號）的出現次數
func CountFrequencies(draws []Draw) FrequencyTable {
	var ft FrequencyTable
	for _, d := range draws {
		for _, n := range d.Numbers {
			if IsValidNumber(n) {
				ft[n]++
			}
		}
	}
	return ft
}

// Count 返回號碼的出現次數
func (ft *FrequencyTable) Count(n int) int {
	if !IsValidNumber(n) {
		return 0
	}
	return ft[n]
}

// Total 返回所有號碼的出現次數總和
func (ft *FrequencyTable) Total() int {
	total := 0
	for n := MinNumber; n <= MaxNumber; n++ {
		total += ft[n]
	}
	return total
}

// MaxCount 返回最大出現次數，沒有任何資料時返回 DefaultMaxCount
func (ft *FrequencyTable) MaxCount() int {
	max := 0
	for n := MinNumber; n <= MaxNumber; n++ {
		if ft[n] > max {
			max = ft[n]
		}
	}
	if max == 0 {
		return DefaultMaxCount
	}
	return max
}

// AsMap 轉為 號碼->次數 映射，供 JSON 輸出
func (ft *FrequencyTable) AsMap() map[int]int {
	m := make(map[int]int, MaxNumber)
	for n := MinNumber; n <= MaxNumber; n++ {
		m[n] = ft[n]
	}
	return m
}

// RankedPool 依 (出現次數, 號碼) 升冪排序的 45 個號碼
type RankedPool []int

// RankCandidates 將 1-45 依出現次數由少到多排序，次數相同時號碼小者在前
func RankCandidates(ft FrequencyTable) RankedPool {
	ranked := make(RankedPool, 0, MaxNumber)
	for n := MinNumber; n <= MaxNumber; n++ {
		ranked = append(ranked, n)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if ft[a] != ft[b] {
			return ft[a] < ft[b]
		}
		return a < b
	})
	return ranked
}
