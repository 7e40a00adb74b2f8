package model

import (
	"net/url"
	"strings"

	"lawproxy/util"
)

// 检索参数默认值
const (
	DefaultTarget     = "law"
	DefaultPage       = 1
	DefaultDisplay    = 20
	MaxDisplay        = 100
	DefaultSearchMode = "0"
	// 上游未收到sort/order时自身使用的默认值
	DefaultSort  = "date"
	DefaultOrder = "desc"
)

// LawSearchRequest 法令检索请求参数
type LawSearchRequest struct {
	Query      string // 检索词，原样保留，发送上游前去除首尾空白
	Target     string // law, prec, lawview, precview
	Page       int
	Display    int    // 每页条数，限制在[1,100]
	Search     string // 0:全部, 1:标题, 2:正文
	Sort       string // date, score；为空表示未指定
	Order      string // asc, desc；为空表示未指定
	DateFrom   string // ancYd 公布日期起
	DateTo     string // ancYdEnd 公布日期止
	Department string // 所管部处
}

// ParseLawSearchRequest 从URL查询参数解析检索请求并填充默认值
func ParseLawSearchRequest(values url.Values) LawSearchRequest {
	query := values.Get("q")
	if query == "" {
		query = values.Get("query")
	}

	display := util.StringToIntDefault(values.Get("display"), DefaultDisplay)
	page := util.StringToIntDefault(values.Get("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	return LawSearchRequest{
		Query:      query,
		Target:     valueOrDefault(values.Get("target"), DefaultTarget),
		Page:       page,
		Display:    util.ClampInt(display, 1, MaxDisplay),
		Search:     valueOrDefault(values.Get("search"), DefaultSearchMode),
		Sort:       values.Get("sort"),
		Order:      values.Get("order"),
		DateFrom:   values.Get("ancYd"),
		DateTo:     values.Get("ancYdEnd"),
		Department: values.Get("department"),
	}
}

// TrimmedQuery 去除首尾空白后的检索词
func (r LawSearchRequest) TrimmedQuery() string {
	return strings.TrimSpace(r.Query)
}

// Validate 检查请求是否可以发往上游
func (r LawSearchRequest) Validate() error {
	if r.TrimmedQuery() == "" {
		return ErrMissingQuery
	}
	return nil
}

func valueOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
