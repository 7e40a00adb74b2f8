package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsonutil "lawproxy/util/json"
)

func TestLeadingAngleDetector(t *testing.T) {
	cases := []struct {
		body string
		want Format
	}{
		{`<root/>`, FormatXML},
		{"  \n\t<?xml version=\"1.0\"?><r/>", FormatXML},
		{"\xef\xbb\xbf<r/>", FormatXML},
		{`{"a":1}`, FormatJSON},
		{`[1,2]`, FormatJSON},
		{`{invalid json`, FormatJSON},
		{``, FormatJSON},
		{`   `, FormatJSON},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, LeadingAngleDetector.Detect([]byte(tc.body)), "body %q", tc.body)
	}
}

func TestNormalizer_JSON(t *testing.T) {
	data, format, err := NewNormalizer().Normalize([]byte(`{"a":1}`))
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, format)
	assert.Equal(t, map[string]interface{}{"a": jsonutil.Number("1")}, data)
}

func TestNormalizer_XML(t *testing.T) {
	data, format, err := NewNormalizer().Normalize([]byte("\n  <root><a>1</a></root>"))
	require.NoError(t, err)

	assert.Equal(t, FormatXML, format)
	assert.Equal(t, map[string]interface{}{
		"root": map[string]interface{}{"a": int64(1)},
	}, data)
}

func TestNormalizer_ParseErrors(t *testing.T) {
	for _, body := range []string{`{invalid json`, ``, `<root><a>1</root>`} {
		_, _, err := NewNormalizer().Normalize([]byte(body))

		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr), "body %q should fail with ParseError, got %v", body, err)
		assert.NotEmpty(t, parseErr.Error())
	}
}

func TestNormalizer_CustomDetector(t *testing.T) {
	n := NewNormalizer()
	n.Detector = DetectorFunc(func([]byte) Format { return FormatXML })

	// 自定义检测器直接决定解析策略
	data, format, err := n.Normalize([]byte(` <r>x</r>`))
	require.NoError(t, err)
	assert.Equal(t, FormatXML, format)
	assert.Equal(t, map[string]interface{}{"r": "x"}, data)

	_, _, err = n.Normalize([]byte(`{"a":1}`))
	assert.Error(t, err)
}

func TestNormalizer_UnknownFormat(t *testing.T) {
	n := NewNormalizer()
	n.Detector = DetectorFunc(func([]byte) Format { return Format("yaml") })

	_, format, err := n.Normalize([]byte(`a: 1`))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, Format("yaml"), format)
	assert.Contains(t, err.Error(), "unsupported response format")
}
