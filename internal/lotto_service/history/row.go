package history

import (
	"math"
	"strconv"
	"strings"

	"lotto_service/internal/lotto_service/analysis"
)

// parseNumber 解析單一儲存格，接受 "7" 與試算表匯出的 "7.0"
func parseNumber(cell string) (int, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(cell); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// CleanRow 將一列儲存格轉為開獎資料
// 只保留 1~45 的整數，保持原順序，最多 7 個（6 個主號碼 + 特別號）
func CleanRow(values []string) analysis.Draw {
	numbers := make([]int, 0, analysis.DrawSize)
	for _, v := range values {
		n, ok := parseNumber(v)
		if !ok || !analysis.IsValidNumber(n) {
			continue
		}
		numbers = append(numbers, n)
		if len(numbers) == analysis.DrawSize {
			break
		}
	}
	return analysis.Draw{Numbers: numbers}
}

// rowsToDraws 跳過表頭後逐列清理，roundColumn >= 0 時該欄視為期數
func rowsToDraws(rows [][]string, headerRows, roundColumn int) []analysis.Draw {
	if headerRows < 0 {
		headerRows = 0
	}
	if headerRows >= len(rows) {
		return nil
	}

	draws := make([]analysis.Draw, 0, len(rows)-headerRows)
	for _, row := range rows[headerRows:] {
		round := 0
		cells := row
		if roundColumn >= 0 && roundColumn < len(row) {
			if n, ok := parseNumber(row[roundColumn]); ok && n > 0 {
				round = n
			}
			cells = make([]string, 0, len(row)-1)
			cells = append(cells, row[:roundColumn]...)
			cells = append(cells, row[roundColumn+1:]...)
		}

		draw := CleanRow(cells)
		if len(draw.Numbers) == 0 {
			continue
		}
		draw.Round = round
		draws = append(draws, draw)
	}
	return draws
}
