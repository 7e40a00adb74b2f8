package json

import (
	"bytes"
	stdjson "encoding/json"
	"errors"

	"github.com/bytedance/sonic"
)

// API是sonic的全局配置实例
var API = sonic.ConfigDefault

// 初始化sonic配置
func init() {
	API = sonic.Config{
		UseNumber:   true, // 保留上游数字的原始精度
		EscapeHTML:  true,
		SortMapKeys: false, // 生产环境设为false提高性能
	}.Froze()
}

// ErrEmptyDocument 输入内容为空
var ErrEmptyDocument = errors.New("unexpected end of JSON input")

// Number 透传时保留的JSON数字类型
type Number = stdjson.Number

// Marshal 使用sonic序列化对象到JSON
func Marshal(v interface{}) ([]byte, error) {
	return API.Marshal(v)
}

// Unmarshal 使用sonic反序列化JSON到对象
func Unmarshal(data []byte, v interface{}) error {
	return API.Unmarshal(data, v)
}

// DecodeValue 将JSON严格解析为无类型文档(map/slice/string/Number/bool/nil)
func DecodeValue(data []byte) (interface{}, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	var v interface{}
	if err := API.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
