package api

import (
	"context"
	"errors"
	"net/http"

	"lotto_service/internal/lotto_service/analysis"
	"lotto_service/internal/lotto_service/history"
	"lotto_service/internal/lotto_service/service"
	"lotto_service/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recommender 推薦服務的接口，便於在測試中替換
type Recommender interface {
	Recommend(ctx context.Context, req service.RecommendRequest) (*service.Recommendation, error)
	Analysis(ctx context.Context) (*service.AnalysisReport, error)
	HistorySummary(ctx context.Context) (*service.HistorySummary, error)
	RefreshHistory(ctx context.Context) (history.RefreshReport, error)
}

// LottoHandler 處理號碼推薦相關請求
type LottoHandler struct {
	svc    Recommender
	logger *zap.Logger
}

// NewLottoHandler 創建處理器
func NewLottoHandler(svc Recommender, logger *zap.Logger) *LottoHandler {
	return &LottoHandler{
		svc:    svc,
		logger: logger.With(zap.String("component", "lotto_handler")),
	}
}

// Recommend 產生推薦號碼
// @Summary 產生推薦號碼
// @Description 依歷史開獎頻率加權抽樣，產生不與歷史一等獎重複的組合
// @Tags recommendation
// @Accept json
// @Produce json
// @Param data body service.RecommendRequest true "組數與固定號碼"
// @Success 200 {object} utils.Response{data=service.Recommendation} "推薦結果"
// @Failure 400 {object} utils.Response "參數錯誤"
// @Failure 503 {object} utils.Response "無法取得歷史資料"
// @Router /api/v1/recommendations [post]
func (h *LottoHandler) Recommend(c *gin.Context) {
	var req service.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, analysis.ErrInvalidConfiguration.Code, "請求格式錯誤: "+err.Error())
		return
	}

	rec, err := h.svc.Recommend(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, rec)
}

// Analysis 候選池分析
// @Summary 候選池分析
// @Description 返回出現次數、排序、候選號碼、排除號碼與抽樣權重
// @Tags analysis
// @Produce json
// @Success 200 {object} utils.Response{data=service.AnalysisReport} "分析結果"
// @Failure 503 {object} utils.Response "無法取得歷史資料"
// @Router /api/v1/analysis [get]
func (h *LottoHandler) Analysis(c *gin.Context) {
	report, err := h.svc.Analysis(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, report)
}

// History 歷史資料摘要
// @Summary 歷史資料摘要
// @Tags history
// @Produce json
// @Success 200 {object} utils.Response{data=service.HistorySummary} "摘要"
// @Failure 503 {object} utils.Response "無法取得歷史資料"
// @Router /api/v1/history [get]
func (h *LottoHandler) History(c *gin.Context) {
	summary, err := h.svc.HistorySummary(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, summary)
}

// RefreshHistory 線上抓取新開獎
// @Summary 線上抓取新開獎
// @Description 從最新期數的下一期開始抓取，抓取錯誤記錄在報告中
// @Tags history
// @Produce json
// @Success 200 {object} utils.Response{data=history.RefreshReport} "抓取報告"
// @Failure 400 {object} utils.Response "未啟用線上抓取"
// @Router /api/v1/history/refresh [post]
func (h *LottoHandler) RefreshHistory(c *gin.Context) {
	report, err := h.svc.RefreshHistory(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, report)
}

// Version 取得應用版本資訊
// @Summary 取得應用版本資訊
// @Tags system
// @Produce json
// @Success 200 {object} utils.BuildInfo
// @Router /version [get]
func (h *LottoHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetBuildInfo())
}

// respondError 依錯誤類型返回對應的狀態碼
func (h *LottoHandler) respondError(c *gin.Context, err error) {
	var verrs utils.ValidationErrors
	if errors.As(err, &verrs) {
		utils.ValidationFailed(c, verrs)
		return
	}

	switch {
	case errors.Is(err, analysis.ErrInvalidConfiguration):
		utils.Error(c, http.StatusBadRequest, analysis.ErrInvalidConfiguration.Code, messageOf(err))
	case errors.Is(err, analysis.ErrDataUnavailable):
		utils.Error(c, http.StatusServiceUnavailable, analysis.ErrDataUnavailable.Code, messageOf(err))
	default:
		h.logger.Error("處理請求失敗", zap.String("path", c.FullPath()), zap.Error(err))
		utils.ServerError(c, err)
	}
}

// messageOf 優先使用領域錯誤的訊息
func messageOf(err error) string {
	var target *analysis.LottoError
	if errors.As(err, &target) {
		return target.Message
	}
	return err.Error()
}
