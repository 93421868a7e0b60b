package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger 以 zap 記錄請求信息的中間件
func Logger(logger *zap.Logger) gin.HandlerFunc {
	log := logger.With(zap.String("component", "http"))
	return func(c *gin.Context) {
		// 開始時間
		startTime := time.Now()

		// 處理請求
		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(startTime)),
			zap.String("clientIP", c.ClientIP()),
			zap.String("method", c.Request.Method),
			zap.String("uri", c.Request.RequestURI),
		}
		if traceID := c.GetString("traceID"); traceID != "" {
			fields = append(fields, zap.String("traceID", traceID))
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Warn("請求失敗", fields...)
			return
		}
		log.Info("請求完成", fields...)
	}
}

// Cors 處理跨域請求
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-Trace-ID, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Recovery 從 panic 恢復，並以 zap 記錄
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	log := logger.With(zap.String("component", "http"))
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("處理請求時發生 panic",
			zap.Any("error", recovered),
			zap.String("uri", c.Request.RequestURI))
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}
