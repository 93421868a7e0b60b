package service

import (
	"time"

	"lotto_service/internal/lotto_service/analysis"
)

// RecommendRequest 推薦請求
type RecommendRequest struct {
	GameCount    int   `json:"game_count" validate:"min=1,max=10"`
	FixedNumbers []int `json:"fixed_numbers" validate:"max=5,unique,dive,lotto_number"`
}

// Game 一組推薦號碼，Colors 與 Numbers 一一對應
type Game struct {
	Numbers analysis.Combination `json:"numbers"`
	Colors  []string             `json:"colors"`
}

// Recommendation 一次推薦的結果
type Recommendation struct {
	ID           string    `json:"id"`
	Games        []Game    `json:"games"`
	FixedNumbers []int     `json:"fixed_numbers"`
	Dropped      []int     `json:"dropped"`       // 被排除的過熱高頻號碼（最多 5 個）
	HistoryCount int       `json:"history_count"` // 歷史一等獎組合數
	Attempts     int       `json:"attempts"`
	Requested    int       `json:"requested"`
	Exhausted    bool      `json:"exhausted"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// AnalysisReport 目前歷史資料的候選池分析
type AnalysisReport struct {
	Frequencies  map[int]int `json:"frequencies"`
	Ranked       []int       `json:"ranked"`
	Survivors    []int       `json:"survivors"`
	Dropped      []int       `json:"dropped"`
	Boosted      []int       `json:"boosted"`
	Weights      map[int]int `json:"weights"`
	MaxCount     int         `json:"max_count"`
	DrawCount    int         `json:"draw_count"`
	LatestRound  int         `json:"latest_round"`
	AnalyzedFrom time.Time   `json:"analyzed_from"` // 快照載入時間
}

// HistorySummary 歷史資料摘要
type HistorySummary struct {
	DrawCount      int       `json:"draw_count"`
	DistinctTuples int       `json:"distinct_tuples"`
	LatestRound    int       `json:"latest_round"`
	LoadedAt       time.Time `json:"loaded_at"`
	Source         string    `json:"source"`
}

// toGames 為每組號碼附上顏色區間
func toGames(combos []analysis.Combination) []Game {
	games := make([]Game, 0, len(combos))
	for _, c := range combos {
		colors := make([]string, 0, analysis.GameSize)
		for _, n := range c {
			colors = append(colors, analysis.BallColor(n))
		}
		games = append(games, Game{Numbers: c, Colors: colors})
	}
	return games
}
