package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"lawproxy/util"
)

// 默认的法制处检索接口地址
const DefaultLawAPIURL = "https://www.law.go.kr/DRF/lawSearch.do"

// 默认的上游请求标识
const DefaultUserAgent = "Mozilla/5.0 (compatible; PropertyTaxHelper/1.0)"

// ErrMissingLawOC 未配置上游认证键
var ErrMissingLawOC = errors.New("LAW_OC 未设置: 必须提供法制处API认证键")

// Config 应用配置结构
type Config struct {
	Port string
	// 上游接口相关配置
	LawOC           string        // 上游认证键(OC)
	LawAPIURL       string        // 上游检索接口地址
	UserAgent       string        // 上游请求的User-Agent
	UpstreamTimeout time.Duration // 上游请求超时
	ProxyURL        string
	UseProxy        bool
	// 压缩相关配置
	EnableCompression bool
	MinSizeToCompress int // 最小压缩大小（字节）
	// 日志相关配置
	LogLevel  string
	LogFormat string
	// HTTP服务器配置
	HTTPReadTimeout  time.Duration // 读取超时
	HTTPWriteTimeout time.Duration // 写入超时
	HTTPIdleTimeout  time.Duration // 空闲超时
}

// 全局配置实例
var AppConfig *Config

// Init 初始化全局配置
func Init() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Load 从.env文件和环境变量读取配置
func Load() (*Config, error) {
	loadEnvFile(".env")

	v := viper.New()
	v.AutomaticEnv()

	proxyURL := getProxyURL(v)
	cfg := &Config{
		Port:            getPort(v),
		LawOC:           strings.TrimSpace(v.GetString("LAW_OC")),
		LawAPIURL:       getLawAPIURL(v),
		UserAgent:       getUserAgent(v),
		UpstreamTimeout: getSeconds(v, "UPSTREAM_TIMEOUT", 60),
		ProxyURL:        proxyURL,
		UseProxy:        proxyURL != "",
		// 压缩相关配置
		EnableCompression: getEnableCompression(v),
		MinSizeToCompress: getPositiveInt(v, "MIN_SIZE_TO_COMPRESS", 1024),
		// 日志相关配置
		LogLevel:  getLogLevel(v),
		LogFormat: getLogFormat(v),
		// HTTP服务器配置
		HTTPReadTimeout:  getSeconds(v, "HTTP_READ_TIMEOUT", 30),
		HTTPWriteTimeout: getHTTPWriteTimeout(v),
		HTTPIdleTimeout:  getSeconds(v, "HTTP_IDLE_TIMEOUT", 120),
	}

	if cfg.LawOC == "" {
		return nil, ErrMissingLawOC
	}
	return cfg, nil
}

// 加载.env文件，已存在的环境变量不会被覆盖
func loadEnvFile(path string) {
	if !util.FileExists(path) {
		return
	}
	_ = godotenv.Load(path)
}

// 从环境变量获取服务端口，如果未设置则使用默认值
func getPort(v *viper.Viper) string {
	port := v.GetString("PORT")
	if port == "" {
		return "8888"
	}
	return port
}

// 从环境变量获取上游接口地址
func getLawAPIURL(v *viper.Viper) string {
	u := strings.TrimSpace(v.GetString("LAW_API_URL"))
	if u == "" {
		return DefaultLawAPIURL
	}
	return u
}

func getUserAgent(v *viper.Viper) string {
	ua := v.GetString("USER_AGENT")
	if ua == "" {
		return DefaultUserAgent
	}
	return ua
}

// 从环境变量获取SOCKS5/HTTP代理URL，如果未设置则返回空字符串
func getProxyURL(v *viper.Viper) string {
	return v.GetString("PROXY")
}

// 从环境变量获取是否启用压缩，如果未设置则默认禁用
func getEnableCompression(v *viper.Viper) bool {
	enabled := v.GetString("ENABLE_COMPRESSION")
	if enabled == "" {
		return false // 默认禁用，因为通常由Nginx等处理
	}
	return enabled == "true" || enabled == "1"
}

func getLogLevel(v *viper.Viper) string {
	level := strings.ToLower(v.GetString("LOG_LEVEL"))
	switch level {
	case "debug", "info", "warn", "error":
		return level
	}
	return "info"
}

func getLogFormat(v *viper.Viper) string {
	if strings.ToLower(v.GetString("LOG_FORMAT")) == "console" {
		return "console"
	}
	return "json"
}

// 获取正整数配置，未设置或无效时使用默认值
func getPositiveInt(v *viper.Viper, key string, def int) int {
	if v.GetString(key) == "" {
		return def
	}
	n := v.GetInt(key)
	if n <= 0 {
		return def
	}
	return n
}

// 获取以秒为单位的时长配置
func getSeconds(v *viper.Viper, key string, def int) time.Duration {
	return time.Duration(getPositiveInt(v, key, def)) * time.Second
}

// 从环境变量获取HTTP写入超时，如果未设置则根据上游超时计算
func getHTTPWriteTimeout(v *viper.Viper) time.Duration {
	if v.GetString("HTTP_WRITE_TIMEOUT") != "" {
		return getSeconds(v, "HTTP_WRITE_TIMEOUT", 90)
	}

	// 写入超时至少为上游超时的1.5倍，保证上游慢响应时仍能写回错误信封
	timeout := 90 * time.Second
	upstream := getSeconds(v, "UPSTREAM_TIMEOUT", 60)
	if extended := upstream * 3 / 2; extended > timeout {
		timeout = extended
	}
	return timeout
}
