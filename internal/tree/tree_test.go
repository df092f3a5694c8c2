package tree

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePreservesOrderAndNumbers(t *testing.T) {
	input := `{"version":"2.1.0","$schema":"x","runs":[{"results":[],"tool":{"driver":{"name":"t"}}}],"big":12345678901234567890,"f":1.50}`

	v, err := Decode([]byte(input))
	require.NoError(t, err)

	root, ok := AsObject(v)
	require.True(t, ok)
	assert.Equal(t, []string{"version", "$schema", "runs", "big", "f"}, Keys(root))
	assert.Equal(t, json.Number("12345678901234567890"), root.Value("big"))

	runs, ok := AsArray(root.Value("runs"))
	require.True(t, ok)
	require.Len(t, runs, 1)
	run, ok := AsObject(runs[0])
	require.True(t, ok)
	assert.Equal(t, []string{"results", "tool"}, Keys(run))

	out, err := Encode(v, 0)
	require.NoError(t, err)
	assert.Equal(t, input+"\n", string(out))
}

func TestEncodeIndentAndNoHTMLEscape(t *testing.T) {
	obj := NewObject()
	obj.Set("text", "a < b && c > d")
	obj.Set("list", []any{json.Number("1"), true, nil})

	out, err := Encode(obj, 2)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"text\": \"a < b && c > d\",\n  \"list\": [\n    1,\n    true,\n    null\n  ]\n}\n", string(out))
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "truncated object", input: `{"runs": [`},
		{name: "bad token", input: `{"runs": nope}`},
		{name: "trailing data", input: `{} {}`},
		{name: "trailing comma", input: `{"a":1,}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			require.Error(t, err)
			var decodeErr *DecodeError
			assert.True(t, errors.As(err, &decodeErr))
		})
	}
}

func TestDecodeNestingLimit(t *testing.T) {
	nested := func(n int) string {
		return strings.Repeat("[", n) + strings.Repeat("]", n)
	}

	_, err := Decode([]byte(nested(MaxDepth)))
	require.NoError(t, err)

	_, err = Decode([]byte(nested(MaxDepth + 1)))
	require.Error(t, err)
	assert.ErrorContains(t, err, "exceeded max depth")

	_, err = Decode([]byte(`{"runs":` + nested(3000000) + `}`))
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Greater(t, decodeErr.Offset, int64(MaxDepth))
}

func TestDecodeEmptyInputIsUnexpectedEOF(t *testing.T) {
	_, err := Decode(nil)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestDecodeScalarsAndArrays(t *testing.T) {
	v, err := Decode([]byte(`[1, "two", false, null, {}]`))
	require.NoError(t, err)

	arr, ok := AsArray(v)
	require.True(t, ok)
	require.Len(t, arr, 5)
	assert.Equal(t, json.Number("1"), arr[0])
	assert.Equal(t, "two", arr[1])
	assert.Equal(t, false, arr[2])
	assert.Nil(t, arr[3])
	obj, ok := AsObject(arr[4])
	require.True(t, ok)
	assert.Equal(t, 0, obj.Len())
}

func TestInt(t *testing.T) {
	tests := []struct {
		in   any
		want int64
		ok   bool
	}{
		{json.Number("2"), 2, true},
		{json.Number("-1"), -1, true},
		{json.Number("3.0"), 3, true},
		{json.Number("2.5"), 0, false},
		{json.Number("1e40"), 0, false},
		{float64(4), 4, true},
		{7, 7, true},
		{"2", 0, false},
		{true, 0, false},
		{nil, 0, false},
	}

	for _, tt := range tests {
		got, ok := Int(tt.in)
		assert.Equal(t, tt.ok, ok, "input %#v", tt.in)
		assert.Equal(t, tt.want, got, "input %#v", tt.in)
	}
}
