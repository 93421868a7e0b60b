package history

import (
	"context"
	"fmt"
	"strconv"

	"lotto_service/internal/lotto_service/analysis"
	"lotto_service/pkg/httpClient"

	"go.uber.org/zap"
)

// DrawServiceName 開獎查詢服務在 httpClient 中的端點名稱
const DrawServiceName = "lotto-draws"

// DrawFetcher 抓取單期開獎
type DrawFetcher interface {
	// FetchRound 返回 (開獎, 是否已開獎, 錯誤)
	FetchRound(ctx context.Context, round int) (analysis.Draw, bool, error)
}

// drawResponse 開獎查詢 API 的響應
type drawResponse struct {
	ReturnValue string `json:"returnValue"`
	DrwNo       int    `json:"drwNo"`
	DrwNoDate   string `json:"drwNoDate"`
	DrwtNo1     int    `json:"drwtNo1"`
	DrwtNo2     int    `json:"drwtNo2"`
	DrwtNo3     int    `json:"drwtNo3"`
	DrwtNo4     int    `json:"drwtNo4"`
	DrwtNo5     int    `json:"drwtNo5"`
	DrwtNo6     int    `json:"drwtNo6"`
	BnusNo      int    `json:"bnusNo"`
}

func (r drawResponse) toDraw() (analysis.Draw, error) {
	numbers := []int{r.DrwtNo1, r.DrwtNo2, r.DrwtNo3, r.DrwtNo4, r.DrwtNo5, r.DrwtNo6, r.BnusNo}
	for _, n := range numbers {
		if err := analysis.ValidateNumber(n); err != nil {
			return analysis.Draw{}, fmt.Errorf("第 %d 期資料異常: %w", r.DrwNo, err)
		}
	}
	if _, ok := analysis.NewCombination(numbers[:analysis.GameSize]); !ok {
		return analysis.Draw{}, fmt.Errorf("第 %d 期主號碼重複", r.DrwNo)
	}
	return analysis.Draw{Round: r.DrwNo, Numbers: numbers, Date: r.DrwNoDate}, nil
}

// HTTPDrawFetcher 透過 httpClient 查詢開獎
type HTTPDrawFetcher struct {
	client httpClient.HTTPClient
	logger *zap.Logger
}

// NewHTTPDrawFetcher 創建 HTTPDrawFetcher，baseURL 會註冊為 DrawServiceName 端點
func NewHTTPDrawFetcher(client httpClient.HTTPClient, baseURL string, logger *zap.Logger) *HTTPDrawFetcher {
	client.SetServiceEndpoint(httpClient.ServiceEndpoint{Name: DrawServiceName, BaseURL: baseURL})
	return &HTTPDrawFetcher{
		client: client,
		logger: logger.With(zap.String("component", "draw_fetcher")),
	}
}

func (f *HTTPDrawFetcher) FetchRound(ctx context.Context, round int) (analysis.Draw, bool, error) {
	var resp drawResponse
	err := f.client.GetJSON(ctx, DrawServiceName, "/common.do", map[string]string{
		"method": "getLottoNumber",
		"drwNo":  strconv.Itoa(round),
	}, nil, &resp)
	if err != nil {
		return analysis.Draw{}, false, fmt.Errorf("fetch round %d: %w", round, err)
	}

	if resp.ReturnValue != "success" {
		f.logger.Debug("尚未開獎", zap.Int("round", round), zap.String("returnValue", resp.ReturnValue))
		return analysis.Draw{}, false, nil
	}

	draw, err := resp.toDraw()
	if err != nil {
		return analysis.Draw{}, false, err
	}
	return draw, true, nil
}
