package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"lawproxy/api"
	"lawproxy/config"
	"lawproxy/service"
	"lawproxy/util"
	"lawproxy/util/logger"
)

func main() {
	// 初始化配置，缺少必需配置时直接退出
	if err := config.Init(); err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	cfg := config.AppConfig

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zl.Sync()

	startServer(cfg, zl)
}

// startServer 启动Web服务器
func startServer(cfg *config.Config, zl *zap.Logger) {
	client := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:  cfg.UpstreamTimeout,
		ProxyURL: cfg.ProxyURL,
	})

	searchService := service.NewLawSearchService(service.Options{
		Endpoint:  cfg.LawAPIURL,
		OC:        cfg.LawOC,
		UserAgent: cfg.UserAgent,
		Client:    client,
		Logger:    zl.Named("service"),
	})

	handler := api.NewLawSearchHandler(searchService, zl.Named("api"))
	router := api.SetupRouter(handler, api.RouterOptions{
		Logger: zl.Named("http"),
		Gzip: util.GzipOptions{
			Enabled:           cfg.EnableCompression,
			MinSizeToCompress: cfg.MinSizeToCompress,
		},
		Upstream: upstreamHost(cfg.LawAPIURL),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	printServiceInfo(cfg)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("正在关闭服务器")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("服务器关闭失败", zap.Error(err))
	}
}

// printServiceInfo 打印服务信息
func printServiceInfo(cfg *config.Config) {
	fmt.Printf("服务器启动在 http://localhost:%s\n", cfg.Port)
	fmt.Printf("上游接口: %s\n", cfg.LawAPIURL)

	// 输出代理信息
	if cfg.UseProxy {
		fmt.Printf("使用代理: %s\n", util.RedactUserInfo(cfg.ProxyURL))
	} else {
		fmt.Println("未使用代理")
	}

	// 输出压缩信息
	if cfg.EnableCompression {
		fmt.Printf("响应压缩已启用: 最小压缩大小=%d字节\n", cfg.MinSizeToCompress)
	} else {
		fmt.Println("响应压缩已禁用")
	}
}

func upstreamHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
