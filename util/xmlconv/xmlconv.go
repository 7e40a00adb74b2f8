// Package xmlconv 将XML文档转换为与JSON等价的嵌套对象结构
//
// 转换规则：
//   - 元素名作为键，同名兄弟元素合并为数组
//   - 属性以AttributePrefix为前缀的键保存，避免与子元素重名
//   - 只有文本的元素直接取文本值；同时带有属性或子元素时文本存入TextKey
//   - 像数字的文本与属性值转换为数字
//   - XML声明以"?xml"键保存其伪属性
package xmlconv

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// Options 转换参数
type Options struct {
	AttributePrefix string // 属性键前缀
	TextKey         string // 文本内容键
	ParseNumbers    bool   // 是否将数字文本转换为数字
	KeepDeclaration bool   // 是否保留XML声明
}

// DefaultOptions 默认转换参数
func DefaultOptions() Options {
	return Options{
		AttributePrefix: "@_",
		TextKey:         "#text",
		ParseNumbers:    true,
		KeepDeclaration: true,
	}
}

// ErrNoRootElement 文档中没有任何元素
var ErrNoRootElement = errors.New("xml: document has no root element")

var (
	numberPattern   = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)
	procInstPattern = regexp.MustCompile(`([A-Za-z_][-A-Za-z0-9_.:]*)\s*=\s*("[^"]*"|'[^']*')`)
)

// Converter XML转换器，可并发使用
type Converter struct {
	opts Options
}

// NewConverter 创建转换器
func NewConverter(opts Options) *Converter {
	return &Converter{opts: opts}
}

// Convert 使用默认参数转换XML字节
func Convert(data []byte) (map[string]interface{}, error) {
	return NewConverter(DefaultOptions()).Convert(bytes.NewReader(data))
}

// frame 正在解析中的元素
type frame struct {
	name     string
	fields   map[string]interface{}
	text     strings.Builder
	hasNodes bool
}

// Convert 读取并转换整个XML文档
func (c *Converter) Convert(r io.Reader) (map[string]interface{}, error) {
	d := xml.NewDecoder(r)
	d.Strict = true
	d.Entity = xml.HTMLEntity
	d.CharsetReader = charset.NewReaderLabel

	root := make(map[string]interface{})
	var stack []*frame
	seenElement := false

	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			f := &frame{name: qualifiedName(t.Name), fields: make(map[string]interface{})}
			for _, attr := range t.Attr {
				f.fields[c.opts.AttributePrefix+qualifiedName(attr.Name)] = c.scalar(attr.Value)
				f.hasNodes = true
			}
			if len(stack) > 0 {
				stack[len(stack)-1].hasNodes = true
			}
			stack = append(stack, f)
			seenElement = true

		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(stack) == 0 {
				return nil, fmt.Errorf("xml: unexpected end element </%s>", name)
			}
			top := stack[len(stack)-1]
			if top.name != name {
				return nil, fmt.Errorf("xml: element <%s> closed by </%s>", top.name, name)
			}
			stack = stack[:len(stack)-1]

			parent := root
			if len(stack) > 0 {
				parent = stack[len(stack)-1].fields
			}
			appendChild(parent, name, c.value(top))

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}

		case xml.ProcInst:
			if t.Target == "xml" && len(stack) == 0 && c.opts.KeepDeclaration {
				root["?xml"] = c.declaration(string(t.Inst))
			}
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("xml: unexpected EOF, element <%s> not closed", stack[len(stack)-1].name)
	}
	if !seenElement {
		return nil, ErrNoRootElement
	}
	return root, nil
}

// value 计算元素的最终值
func (c *Converter) value(f *frame) interface{} {
	text := strings.TrimSpace(f.text.String())
	if !f.hasNodes {
		return c.scalar(text)
	}
	if text != "" {
		f.fields[c.opts.TextKey] = c.scalar(text)
	}
	return f.fields
}

func (c *Converter) declaration(inst string) map[string]interface{} {
	attrs := make(map[string]interface{})
	for _, m := range procInstPattern.FindAllStringSubmatch(inst, -1) {
		attrs[c.opts.AttributePrefix+m[1]] = c.scalar(m[2][1 : len(m[2])-1])
	}
	return attrs
}

// scalar 去除首尾空白，必要时转换为数字
func (c *Converter) scalar(s string) interface{} {
	s = strings.TrimSpace(s)
	if !c.opts.ParseNumbers {
		return s
	}
	return ParseNumber(s)
}

// ParseNumber 将像数字的字符串转换为int64或float64，其余原样返回
//
// 带前导零的整数（如"000123"）保持为字符串，超出int64范围的整数同样保持为字符串。
func ParseNumber(s string) interface{} {
	if !numberPattern.MatchString(s) {
		return s
	}
	if !strings.ContainsAny(s, ".eE") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// appendChild 加入子元素，同名元素合并为数组
func appendChild(parent map[string]interface{}, name string, v interface{}) {
	existing, ok := parent[name]
	if !ok {
		parent[name] = v
		return
	}
	if list, ok := existing.([]interface{}); ok {
		parent[name] = append(list, v)
		return
	}
	parent[name] = []interface{}{existing, v}
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
