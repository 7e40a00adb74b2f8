package service

import (
	"bytes"
	"unicode"

	jsonutil "lawproxy/util/json"
	"lawproxy/util/xmlconv"
)

// Format 上游响应体格式
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Detector 判断响应体格式
type Detector interface {
	Detect(body []byte) Format
}

// DetectorFunc 函数形式的Detector
type DetectorFunc func(body []byte) Format

// Detect 实现Detector接口
func (f DetectorFunc) Detect(body []byte) Format {
	return f(body)
}

// LeadingAngleDetector 首个非空白字符为'<'时视为XML，否则视为JSON
var LeadingAngleDetector Detector = DetectorFunc(func(body []byte) Format {
	trimmed := bytes.TrimLeftFunc(stripBOM(body), unicode.IsSpace)
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return FormatXML
	}
	return FormatJSON
})

// Parser 将响应体解析为无类型文档
type Parser interface {
	Parse(body []byte) (interface{}, error)
}

// ParserFunc 函数形式的Parser
type ParserFunc func(body []byte) (interface{}, error)

// Parse 实现Parser接口
func (f ParserFunc) Parse(body []byte) (interface{}, error) {
	return f(body)
}

// JSONParser 严格JSON解析
var JSONParser Parser = ParserFunc(func(body []byte) (interface{}, error) {
	return jsonutil.DecodeValue(body)
})

// NewXMLParser 基于xmlconv的XML解析
func NewXMLParser(opts xmlconv.Options) Parser {
	conv := xmlconv.NewConverter(opts)
	return ParserFunc(func(body []byte) (interface{}, error) {
		return conv.Convert(bytes.NewReader(body))
	})
}

// ParseError 响应体无法按检测到的格式解析
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Normalizer 按检测结果选择解析策略
type Normalizer struct {
	Detector Detector
	Parsers  map[Format]Parser
}

// NewNormalizer 创建默认的XML/JSON双策略Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{
		Detector: LeadingAngleDetector,
		Parsers: map[Format]Parser{
			FormatXML:  NewXMLParser(xmlconv.DefaultOptions()),
			FormatJSON: JSONParser,
		},
	}
}

// Normalize 检测格式并解析响应体，失败时返回*ParseError
func (n *Normalizer) Normalize(body []byte) (interface{}, Format, error) {
	body = stripBOM(body)
	format := n.Detector.Detect(body)

	parser, ok := n.Parsers[format]
	if !ok {
		return nil, format, &ParseError{Format: format, Err: errUnsupportedFormat(format)}
	}

	data, err := parser.Parse(body)
	if err != nil {
		return nil, format, &ParseError{Format: format, Err: err}
	}
	return data, format, nil
}

type errUnsupportedFormat Format

func (e errUnsupportedFormat) Error() string {
	return "unsupported response format: " + string(e)
}

func stripBOM(body []byte) []byte {
	return bytes.TrimPrefix(body, utf8BOM)
}
