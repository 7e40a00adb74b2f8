package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"lawproxy/model"
	"lawproxy/util"
	"lawproxy/util/logger"
	"lawproxy/util/metrics"
)

const (
	// 上游响应类型固定请求JSON
	upstreamResponseType = "JSON"
	acceptHeader         = "application/json, application/xml, text/xml, */*"
	// 调试日志中记录的响应体最大长度
	logBodyPreview = 1000
)

// UpstreamStatusError 上游返回非2xx状态码
type UpstreamStatusError struct {
	StatusCode int
	Status     string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("법제처 API 응답 오류: %d", e.StatusCode)
}

// Options 检索服务参数
type Options struct {
	Endpoint   string
	OC         string // 上游认证键
	UserAgent  string
	Client     *http.Client
	Normalizer *Normalizer
	Logger     *zap.Logger
}

// LawSearchService 法令检索服务：构造上游查询、调用上游并规范化响应
type LawSearchService struct {
	endpoint   string
	oc         string
	userAgent  string
	client     *http.Client
	normalizer *Normalizer
	logger     *zap.Logger
}

// NewLawSearchService 创建检索服务实例
func NewLawSearchService(opts Options) *LawSearchService {
	s := &LawSearchService{
		endpoint:   opts.Endpoint,
		oc:         opts.OC,
		userAgent:  opts.UserAgent,
		client:     opts.Client,
		normalizer: opts.Normalizer,
		logger:     opts.Logger,
	}
	if s.client == nil {
		s.client = http.DefaultClient
	}
	if s.normalizer == nil {
		s.normalizer = NewNormalizer()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Endpoint 返回上游接口地址
func (s *LawSearchService) Endpoint() string {
	return s.endpoint
}

// Search 执行检索，返回规范化后的上游文档
//
// 解析失败时返回*ParseError，上游非2xx时返回*UpstreamStatusError。
func (s *LawSearchService) Search(ctx context.Context, req model.LawSearchRequest) (interface{}, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	apiURL := s.buildURL(req)
	s.logger.Info("调用法制处API",
		zap.String("url", util.RedactQueryParam(apiURL, "OC")),
		zap.String("target", req.Target),
		zap.Int("page", req.Page),
		zap.Int("display", req.Display))

	body, err := s.fetch(ctx, apiURL)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("收到API响应",
		zap.Int("length", len(body)),
		zap.String("preview", logger.Truncate(string(body), logBodyPreview)))

	data, format, err := s.normalizer.Normalize(body)
	metrics.ResponseFormats.WithLabelValues(string(format)).Inc()
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *LawSearchService) fetch(ctx context.Context, apiURL string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", s.userAgent)
	httpReq.Header.Set("Accept", acceptHeader)
	httpReq.Header.Set("Accept-Charset", "utf-8")

	start := time.Now()
	resp, err := s.client.Do(httpReq)
	if err != nil {
		metrics.UpstreamDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("법제처 API 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamDuration.WithLabelValues("status_error").Observe(time.Since(start).Seconds())
		io.Copy(io.Discard, resp.Body)
		return nil, &UpstreamStatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	metrics.UpstreamDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("법제처 API 응답 읽기 실패: %w", err)
	}
	return body, nil
}

func (s *LawSearchService) buildURL(req model.LawSearchRequest) string {
	sep := "?"
	if strings.Contains(s.endpoint, "?") {
		sep = "&"
	}
	return s.endpoint + sep + BuildUpstreamQuery(s.oc, req)
}

// BuildUpstreamQuery 按固定顺序构造上游查询串，空的可选过滤条件不出现在查询串中
func BuildUpstreamQuery(oc string, req model.LawSearchRequest) string {
	var q queryBuilder
	q.add("OC", oc)
	q.add("target", req.Target)
	q.add("type", upstreamResponseType)
	q.add("query", req.TrimmedQuery())
	q.add("display", strconv.Itoa(req.Display))
	q.add("page", strconv.Itoa(req.Page))
	q.add("search", req.Search)

	// 高级检索参数
	q.addIfNotEmpty("sort", req.Sort)
	q.addIfNotEmpty("order", req.Order)
	q.addIfNotEmpty("ancYd", req.DateFrom)
	q.addIfNotEmpty("ancYdEnd", req.DateTo)
	q.addIfNotEmpty("department", req.Department)
	return q.String()
}

// queryBuilder 保持参数顺序的查询串构造器
type queryBuilder struct {
	parts []string
}

func (b *queryBuilder) add(key, value string) {
	b.parts = append(b.parts, url.QueryEscape(key)+"="+url.QueryEscape(value))
}

func (b *queryBuilder) addIfNotEmpty(key, value string) {
	if value != "" {
		b.add(key, value)
	}
}

func (b *queryBuilder) String() string {
	return strings.Join(b.parts, "&")
}
