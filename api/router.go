package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"lawproxy/util"
)

// RouterOptions 路由依赖
type RouterOptions struct {
	Logger   *zap.Logger
	Gzip     util.GzipOptions
	Upstream string // 上游接口地址，用于健康检查输出
}

// SetupRouter 设置路由
func SetupRouter(handler *LawSearchHandler, opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// 设置为生产模式
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// 添加中间件，CORS需在请求ID之前，保证预检响应只带跨域头
	r.Use(RecoveryMiddleware(logger))
	r.Use(CORSMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger))
	r.Use(util.GzipMiddleware(opts.Gzip))

	// 检索代理接口，只读取查询参数，接受任意方法
	r.Any("/law-search", handler.Handle)

	api := r.Group("/api")
	{
		api.Any("/law-search", handler.Handle)

		// 健康检查接口
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":   "ok",
				"upstream": opts.Upstream,
			})
		})
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
