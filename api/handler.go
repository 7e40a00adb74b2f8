package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lawproxy/model"
	"lawproxy/service"
	jsonutil "lawproxy/util/json"
	"lawproxy/util/metrics"
)

const contentTypeJSON = "application/json; charset=utf-8"

// 成功请求在指标中的结果码
const codeOK = "OK"

// Searcher 执行上游检索
type Searcher interface {
	Search(ctx context.Context, req model.LawSearchRequest) (interface{}, error)
}

// LawSearchHandler 法令检索代理处理器
type LawSearchHandler struct {
	searcher Searcher
	logger   *zap.Logger
	now      func() time.Time
}

// NewLawSearchHandler 创建处理器
func NewLawSearchHandler(searcher Searcher, logger *zap.Logger) *LawSearchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LawSearchHandler{
		searcher: searcher,
		logger:   logger,
		now:      time.Now,
	}
}

// Handle 解析参数、调用上游并返回统一信封
func (h *LawSearchHandler) Handle(c *gin.Context) {
	req := model.ParseLawSearchRequest(c.Request.URL.Query())
	log := h.logger.With(zap.String("request_id", RequestID(c)))

	log.Info("检索参数",
		zap.String("query", req.Query),
		zap.String("target", req.Target),
		zap.Int("page", req.Page),
		zap.Int("display", req.Display),
		zap.String("search", req.Search))

	if err := req.Validate(); err != nil {
		log.Warn("缺少检索词")
		metrics.Requests.WithLabelValues(model.CodeMissingQuery).Inc()
		writeJSON(c, http.StatusBadRequest, model.NewMissingQueryResponse())
		return
	}

	data, err := h.searcher.Search(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, log, err)
		return
	}

	metrics.Requests.WithLabelValues(codeOK).Inc()
	writeJSON(c, http.StatusOK, model.NewSuccessResponse(req, data, h.now()))
}

// writeError 将检索错误转换为对应的错误信封
func (h *LawSearchHandler) writeError(c *gin.Context, log *zap.Logger, err error) {
	var parseErr *service.ParseError
	if errors.As(err, &parseErr) {
		log.Error("上游响应解析失败", zap.String("format", string(parseErr.Format)), zap.Error(err))
		metrics.Requests.WithLabelValues(model.CodeParseError).Inc()
		writeJSON(c, http.StatusInternalServerError, model.NewParseErrorResponse(err.Error()))
		return
	}

	log.Error("法制处API代理错误", zap.Error(err))
	metrics.Requests.WithLabelValues(model.CodeInternalError).Inc()
	writeJSON(c, http.StatusInternalServerError, model.NewInternalErrorResponse(err.Error(), h.now()))
}

// writeJSON 使用sonic序列化并写出UTF-8 JSON响应
func writeJSON(c *gin.Context, status int, v interface{}) {
	data, err := jsonutil.Marshal(v)
	if err != nil {
		fallback, _ := jsonutil.Marshal(model.NewInternalErrorResponse(err.Error(), time.Now()))
		c.Data(http.StatusInternalServerError, contentTypeJSON, fallback)
		return
	}
	c.Data(status, contentTypeJSON, data)
}
