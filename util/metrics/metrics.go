package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Requests 按结果码统计的检索请求数
	Requests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "law_search_requests_total",
			Help: "Total number of law search proxy requests by result code",
		},
		[]string{"code"},
	)

	// UpstreamDuration 上游接口耗时
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "law_search_upstream_duration_seconds",
			Help:    "Duration of upstream law API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	// ResponseFormats 上游响应格式统计
	ResponseFormats = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "law_search_response_format_total",
			Help: "Upstream response bodies by detected format",
		},
		[]string{"format"},
	)
)
