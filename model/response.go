package model

import (
	"errors"
	"time"
)

// 错误码
const (
	CodeMissingQuery  = "MISSING_QUERY"
	CodeParseError    = "PARSE_ERROR"
	CodeInternalError = "INTERNAL_ERROR"
)

// 返回给调用方的本地化提示
const (
	MsgMissingQuery  = "검색어를 입력해주세요"
	MsgParseError    = "법제처 API 응답 파싱 실패"
	MsgInternalError = "법제처 검색 중 오류가 발생했습니다"
)

// ErrMissingQuery 检索词为空
var ErrMissingQuery = errors.New("missing search query")

// Meta 成功响应的元信息
type Meta struct {
	Query     string `json:"query" sonic:"query"`
	Target    string `json:"target" sonic:"target"`
	Page      int    `json:"page" sonic:"page"`
	Display   int    `json:"display" sonic:"display"`
	Timestamp string `json:"timestamp" sonic:"timestamp"`
}

// SuccessResponse 成功响应信封，Data为上游文档原样透传
type SuccessResponse struct {
	Success bool        `json:"success" sonic:"success"`
	Data    interface{} `json:"data" sonic:"data"`
	Meta    Meta        `json:"meta" sonic:"meta"`
}

// ErrorResponse 错误响应信封
type ErrorResponse struct {
	Success   bool   `json:"success" sonic:"success"`
	Error     string `json:"error" sonic:"error"`
	Code      string `json:"code" sonic:"code"`
	Details   string `json:"details,omitempty" sonic:"details,omitempty"`
	Message   string `json:"message,omitempty" sonic:"message,omitempty"`
	Timestamp string `json:"timestamp,omitempty" sonic:"timestamp,omitempty"`
}

// Timestamp 返回ISO-8601格式(UTC，毫秒精度)的时间
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(req LawSearchRequest, data interface{}, now time.Time) SuccessResponse {
	return SuccessResponse{
		Success: true,
		Data:    data,
		Meta: Meta{
			Query:     req.Query,
			Target:    req.Target,
			Page:      req.Page,
			Display:   req.Display,
			Timestamp: Timestamp(now),
		},
	}
}

// NewMissingQueryResponse 创建检索词缺失响应
func NewMissingQueryResponse() ErrorResponse {
	return ErrorResponse{
		Error: MsgMissingQuery,
		Code:  CodeMissingQuery,
	}
}

// NewParseErrorResponse 创建上游响应解析失败响应
func NewParseErrorResponse(details string) ErrorResponse {
	return ErrorResponse{
		Error:   MsgParseError,
		Code:    CodeParseError,
		Details: details,
	}
}

// NewInternalErrorResponse 创建内部错误响应
func NewInternalErrorResponse(message string, now time.Time) ErrorResponse {
	return ErrorResponse{
		Error:     MsgInternalError,
		Code:      CodeInternalError,
		Message:   message,
		Timestamp: Timestamp(now),
	}
}
