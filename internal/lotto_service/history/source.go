package history

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"lotto_service/internal/lotto_service/analysis"

	"github.com/xuri/excelize/v2"
)

// DefaultHeaderRows 標題列 + 欄位名稱列
const DefaultHeaderRows = 2

// Source 歷史開獎資料來源
type Source interface {
	Name() string
	Load(ctx context.Context) ([]analysis.Draw, error)
}

// unavailable 將找不到檔案等情況轉為 ErrDataUnavailable
func unavailable(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", analysis.ErrDataUnavailable, path, err)
}

// ExcelSource 從 .xlsx 讀取歷史開獎
type ExcelSource struct {
	Path        string
	Sheet       string // 空字串表示第一個工作表
	HeaderRows  int
	RoundColumn int // -1 表示沒有期數欄
}

// NewExcelSource 以預設表頭列數建立 ExcelSource
func NewExcelSource(path string) *ExcelSource {
	return &ExcelSource{Path: path, HeaderRows: DefaultHeaderRows, RoundColumn: -1}
}

func (s *ExcelSource) Name() string {
	return "excel:" + filepath.Base(s.Path)
}

func (s *ExcelSource) Load(ctx context.Context) ([]analysis.Draw, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, unavailable(s.Path, err)
		}
		return nil, fmt.Errorf("開啟 %s 失敗: %w", s.Path, err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("讀取工作表 %s 失敗: %w", sheet, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return rowsToDraws(rows, s.HeaderRows, s.RoundColumn), nil
}

// CSVSource 從 .csv 讀取歷史開獎，格式同試算表
type CSVSource struct {
	Path        string
	HeaderRows  int
	RoundColumn int
}

// NewCSVSource 以預設表頭列數建立 CSVSource
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path, HeaderRows: DefaultHeaderRows, RoundColumn: -1}
}

func (s *CSVSource) Name() string {
	return "csv:" + filepath.Base(s.Path)
}

func (s *CSVSource) Load(ctx context.Context) ([]analysis.Draw, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, unavailable(s.Path, err)
		}
		return nil, fmt.Errorf("開啟 %s 失敗: %w", s.Path, err)
	}
	defer f.Close()

	return readCSV(ctx, f, s.HeaderRows, s.RoundColumn)
}

func readCSV(ctx context.Context, r io.Reader, headerRows, roundColumn int) ([]analysis.Draw, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("解析 CSV 失敗: %w", err)
		}
		rows = append(rows, record)
		if len(rows)%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
	return rowsToDraws(rows, headerRows, roundColumn), nil
}

// NewFileSource 依副檔名選擇試算表或 CSV 來源
func NewFileSource(path, sheet string, headerRows, roundColumn int) Source {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return &CSVSource{Path: path, HeaderRows: headerRows, RoundColumn: roundColumn}
	}
	return &ExcelSource{Path: path, Sheet: sheet, HeaderRows: headerRows, RoundColumn: roundColumn}
}

// MemorySource 保存線上抓取到的開獎，依期數去重
type MemorySource struct {
	mu    sync.RWMutex
	draws map[int]analysis.Draw
}

// NewMemorySource 創建空的記憶體來源
func NewMemorySource() *MemorySource {
	return &MemorySource{draws: make(map[int]analysis.Draw)}
}

func (s *MemorySource) Name() string {
	return "live"
}

// Add 加入開獎資料，期數為 0 的資料會被忽略
func (s *MemorySource) Add(draws ...analysis.Draw) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range draws {
		if d.Round <= 0 {
			continue
		}
		s.draws[d.Round] = d
	}
}

// Len 返回目前保存的期數
func (s *MemorySource) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.draws)
}

// Load 尚未抓到任何資料時返回 ErrDataUnavailable
func (s *MemorySource) Load(ctx context.Context) ([]analysis.Draw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.draws) == 0 {
		return nil, analysis.NewLottoErrorWithFormat(analysis.ErrDataUnavailable, "尚未抓取到任何開獎")
	}

	draws := make([]analysis.Draw, 0, len(s.draws))
	for _, d := range s.draws {
		draws = append(draws, d)
	}
	sortByRound(draws)
	return draws, nil
}
