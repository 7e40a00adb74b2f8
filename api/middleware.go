package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"lawproxy/model"
)

// 请求ID相关
const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// 所有响应共用的跨域响应头
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "authorization, x-client-info, apikey, content-type",
	"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
}

// CORSMiddleware 跨域中间件，预检请求直接返回空响应
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		for k, v := range corsHeaders {
			c.Writer.Header().Set(k, v)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// RequestIDMiddleware 为每个请求分配ID，沿用调用方传入的X-Request-ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestID 获取当前请求的ID
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// LoggerMiddleware 日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		logger.Info("request",
			zap.String("request_id", RequestID(c)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(startTime)))
	}
}

// RecoveryMiddleware 捕获处理器panic并返回INTERNAL_ERROR信封
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		logger.Error("处理请求时发生panic",
			zap.String("request_id", RequestID(c)),
			zap.Any("panic", recovered))
		writeJSON(c, http.StatusInternalServerError, model.NewInternalErrorResponse("internal server error", time.Now()))
		c.Abort()
	})
}
