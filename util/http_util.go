package util

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

// HTTPClientOptions HTTP客户端参数
type HTTPClientOptions struct {
	Timeout  time.Duration
	ProxyURL string // 为空时直连，支持socks5://与http(s)://
}

// NewHTTPClient 创建带连接池优化与代理支持的HTTP客户端
func NewHTTPClient(opts HTTPClientOptions) *http.Client {
	// 创建传输配置
	transport := &http.Transport{
		// 启用HTTP/2
		ForceAttemptHTTP2: true,

		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},

		// 连接池优化
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		// TCP连接优化
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	// 如果配置了代理，设置代理
	if opts.ProxyURL != "" {
		if proxyURL, err := url.Parse(opts.ProxyURL); err == nil {
			// 根据代理类型设置不同的处理方式
			if proxyURL.Scheme == "socks5" || proxyURL.Scheme == "socks5h" {
				if dialer, err := proxy.FromURL(proxyURL, proxy.Direct); err == nil {
					transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
						if cd, ok := dialer.(proxy.ContextDialer); ok {
							return cd.DialContext(ctx, network, addr)
						}
						return dialer.Dial(network, addr)
					}
				}
			} else {
				// HTTP/HTTPS代理
				transport.Proxy = http.ProxyURL(proxyURL)
			}
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// RedactQueryParam 返回隐藏了指定查询参数值的URL，用于日志输出
func RedactQueryParam(rawURL, key string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if _, ok := q[key]; !ok {
		return rawURL
	}
	q.Set(key, "***")
	u.RawQuery = q.Encode()
	return u.String()
}

// RedactUserInfo 隐藏URL中的用户名密码
func RedactUserInfo(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.User == nil {
		return rawURL
	}
	return u.Redacted()
}
