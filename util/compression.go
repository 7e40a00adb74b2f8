package util

import (
	"bytes"
	"compress/gzip"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// GzipOptions 压缩中间件参数
type GzipOptions struct {
	Enabled           bool
	MinSizeToCompress int // 最小压缩大小（字节）
}

// bufferedWriter 缓存响应体，待处理器执行完成后再决定是否压缩
type bufferedWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write 实现ResponseWriter接口
func (w *bufferedWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

// WriteString 实现ResponseWriter接口
func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

// Written 只要有缓存内容即视为已写入
func (w *bufferedWriter) Written() bool {
	return w.body.Len() > 0 || w.ResponseWriter.Written()
}

// Size 返回缓存的响应体大小
func (w *bufferedWriter) Size() int {
	return w.body.Len()
}

// GzipMiddleware 返回一个Gin中间件，用于压缩HTTP响应
func GzipMiddleware(opts GzipOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 如果未启用压缩，直接跳过
		if !opts.Enabled {
			c.Next()
			return
		}

		// 检查客户端是否支持gzip
		if !strings.Contains(c.Request.Header.Get("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		original := c.Writer
		buffer := &bytes.Buffer{}
		c.Writer = &bufferedWriter{ResponseWriter: original, body: buffer}

		// 处理请求
		c.Next()

		c.Writer = original
		responseData := buffer.Bytes()
		if len(responseData) == 0 {
			return
		}

		// 已被处理器自行编码，或小于最小压缩大小时，直接返回原始内容
		if c.Writer.Header().Get("Content-Encoding") != "" || len(responseData) < opts.MinSizeToCompress {
			c.Writer.Write(responseData)
			return
		}

		compressed, err := CompressData(responseData)
		if err != nil {
			c.Writer.Write(responseData)
			return
		}

		// 设置gzip响应头
		c.Header("Content-Encoding", "gzip")
		c.Header("Vary", "Accept-Encoding")
		c.Header("Content-Length", strconv.Itoa(len(compressed)))
		c.Writer.Write(compressed)
	}
}

// CompressData 压缩数据
func CompressData(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	// 创建gzip写入器
	gz, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
	if err != nil {
		return nil, err
	}

	// 写入数据
	if _, err := gz.Write(data); err != nil {
		return nil, err
	}

	// 关闭写入器
	if err := gz.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
