package httpClient

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GinTraceMiddleware 確保每個請求都有一個追蹤ID
// 如果請求頭中已經包含追蹤ID，則沿用；否則創建新的，並同時寫回響應頭
func GinTraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(HeaderTraceID)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Set("traceID", traceID)
		c.Header(HeaderTraceID, traceID)
		c.Request = c.Request.WithContext(WithTraceID(c.Request.Context(), traceID))

		c.Next()
	}
}
