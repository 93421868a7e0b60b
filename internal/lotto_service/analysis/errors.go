package analysis

import (
	"fmt"
)

// LottoError 代表推薦流程錯誤
type LottoError struct {
	Code    string
	Message string
}

// Error 實現error接口
func (e *LottoError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is 實現errors.Is接口，用於錯誤比較
func (e *LottoError) Is(target error) bool {
	t, ok := target.(*LottoError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// 預定義錯誤
var (
	// 歷史資料完全無法取得，本次分析不可進行
	ErrDataUnavailable = &LottoError{
		Code:    "DATA_UNAVAILABLE",
		Message: "無法取得歷史開獎資料",
	}

	// 嘗試次數用盡，只回傳部分結果
	ErrRetryBudgetExhausted = &LottoError{
		Code:    "RETRY_BUDGET_EXHAUSTED",
		Message: "已達最大嘗試次數",
	}

	// 單次抽樣無可用號碼
	ErrEmptyEligiblePool = &LottoError{
		Code:    "EMPTY_ELIGIBLE_POOL",
		Message: "可抽號碼不足",
	}

	// 參數錯誤
	ErrInvalidConfiguration = &LottoError{
		Code:    "INVALID_CONFIGURATION",
		Message: "無效的參數",
	}
)

// NewLottoErrorWithFormat 使用格式化字串創建新的錯誤，保留原錯誤代碼
func NewLottoErrorWithFormat(base *LottoError, format string, args ...interface{}) *LottoError {
	return &LottoError{
		Code:    base.Code,
		Message: fmt.Sprintf(format, args...),
	}
}
