package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

// Error 返回錯誤響應，errorCode 為業務錯誤代碼
func Error(c *gin.Context, code int, errorCode, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Error:   errorCode,
	})
}

// ValidationFailed 返回欄位驗證錯誤，Data 為錯誤明細
func ValidationFailed(c *gin.Context, errs []ValidationError) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    http.StatusBadRequest,
		Message: "validation error",
		Error:   "INVALID_CONFIGURATION",
		Data:    errs,
	})
}

func ServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, Response{
		Code:    http.StatusInternalServerError,
		Message: "internal server error",
		Error:   err.Error(),
	})
}
