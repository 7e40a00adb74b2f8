package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValue(t *testing.T) {
	v, err := DecodeValue([]byte(`{"a":1,"b":[true,null,"x"],"c":1.25}`))
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"a": Number("1"),
		"b": []interface{}{true, nil, "x"},
		"c": Number("1.25"),
	}, v)
}

func TestDecodeValue_Errors(t *testing.T) {
	for _, in := range []string{``, "  \n", `{invalid json`, `{"a":`} {
		_, err := DecodeValue([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestMarshal_NumbersRoundTrip(t *testing.T) {
	v, err := DecodeValue([]byte(`{"id":12345678901234567890}`))
	require.NoError(t, err)

	out, err := Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":12345678901234567890}`, string(out))
}
