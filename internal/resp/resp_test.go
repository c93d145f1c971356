package resp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_SimpleString(t *testing.T) {
	status, v, n := Decode([]byte("+OK\r\n"), nil)
	require.Equal(t, Ok, status)
	assert.Equal(t, SimpleString, v.Type)
	assert.Equal(t, "OK", string(v.Bytes()))
	assert.Equal(t, 5, n)
}

func TestDecode_Error(t *testing.T) {
	status, v, n := Decode([]byte("-ERR bad\r\n"), nil)
	require.Equal(t, Ok, status)
	assert.Equal(t, Error, v.Type)
	assert.Equal(t, "ERR bad", string(v.Bytes()))
	assert.Equal(t, 10, n)
}

func TestDecode_Integer(t *testing.T) {
	status, v, n := Decode([]byte(":-42\r\n"), nil)
	require.Equal(t, Ok, status)
	assert.Equal(t, Integer, v.Type)
	assert.EqualValues(t, -42, v.Int)
	assert.Equal(t, 6, n)
}

func TestDecode_BulkString(t *testing.T) {
	status, v, n := Decode([]byte("$5\r\nhello\r\n"), nil)
	require.Equal(t, Ok, status)
	assert.Equal(t, BulkString, v.Type)
	assert.Equal(t, "hello", string(v.Bytes()))
	assert.Equal(t, 11, n)
}

func TestDecode_BulkStringNull(t *testing.T) {
	status, v, n := Decode([]byte("$-1\r\n"), nil)
	require.Equal(t, Ok, status)
	assert.Equal(t, Null, v.Type)
	assert.Equal(t, 5, n)
}

func TestDecode_BulkStringIncomplete(t *testing.T) {
	status, _, _ := Decode([]byte("$5\r\nhel"), nil)
	assert.Equal(t, Incomplete, status)
}

func TestDecode_ArrayOfBulkStrings(t *testing.T) {
	status, v, n := Decode([]byte("*2\r\n$3\r\nSET\r\n$1\r\nx\r\n"), nil)
	require.Equal(t, Ok, status)
	require.Equal(t, Array, v.Type)
	require.Len(t, v.Array, 2)
	assert.Equal(t, "SET", string(v.Array[0].Bytes()))
	assert.Equal(t, "x", string(v.Array[1].Bytes()))
	assert.Equal(t, 20, n)
}

func TestDecode_NestedArray(t *testing.T) {
	status, v, _ := Decode([]byte("*1\r\n*1\r\n:1\r\n"), nil)
	require.Equal(t, Ok, status)
	require.Len(t, v.Array, 1)
	inner := v.Array[0]
	require.Equal(t, Array, inner.Type)
	require.Len(t, inner.Array, 1)
	assert.EqualValues(t, 1, inner.Array[0].Int)
}

func TestDecode_RecursionDepthExceeded(t *testing.T) {
	data := make([]byte, 0)
	for i := 0; i < maxRecursionDepth+2; i++ {
		data = append(data, []byte("*1\r\n")...)
	}
	data = append(data, []byte(":1\r\n")...)

	status, _, _ := Decode(data, nil)
	assert.Equal(t, Invalid, status)
}

func TestDecode_Boolean(t *testing.T) {
	status, v, _ := Decode([]byte("#t\r\n"), nil)
	require.Equal(t, Ok, status)
	assert.True(t, v.Bool)
}

func TestDecode_Map(t *testing.T) {
	status, v, _ := Decode([]byte("%1\r\n$3\r\nfoo\r\n:1\r\n"), nil)
	require.Equal(t, Ok, status)
	require.Equal(t, Map, v.Type)
	require.Len(t, v.Map, 1)
	assert.Equal(t, "foo", string(v.Map[0].Key.Bytes()))
	assert.EqualValues(t, 1, v.Map[0].Value.Int)
}

func TestDecodeInline_LegacyPing(t *testing.T) {
	status, v, n := DecodeInline([]byte("PING\r\n"))
	require.Equal(t, Ok, status)
	require.Len(t, v.Array, 1)
	assert.Equal(t, "PING", string(v.Array[0].Bytes()))
	assert.Equal(t, 6, n)
}

func TestDecodeInline_MultipleArgs(t *testing.T) {
	status, v, _ := DecodeInline([]byte("SET foo bar\r\n"))
	require.Equal(t, Ok, status)
	require.Len(t, v.Array, 3)
	assert.Equal(t, "foo", string(v.Array[1].Bytes()))
}

func TestEncode_SimpleString(t *testing.T) {
	out := Encode(nil, NewSimpleString("OK"))
	assert.Equal(t, "+OK\r\n", string(out))
}

func TestEncode_BulkString(t *testing.T) {
	out := Encode(nil, NewBulkString([]byte("hello")))
	assert.Equal(t, "$5\r\nhello\r\n", string(out))
}

func TestEncode_Null(t *testing.T) {
	out := Encode(nil, NewNull())
	assert.Equal(t, "$-1\r\n", string(out))
}

func TestEncode_Array(t *testing.T) {
	out := Encode(nil, NewArray([]Value{NewInteger(1), NewInteger(2)}))
	assert.Equal(t, "*2\r\n:1\r\n:2\r\n", string(out))
}

func TestEncode_RoundTrip(t *testing.T) {
	original := []byte("*2\r\n$3\r\nfoo\r\n$3\r\nbar\r\n")
	status, v, n := Decode(original, nil)
	require.Equal(t, Ok, status)
	require.Equal(t, len(original), n)

	out := Encode(nil, v)
	assert.Equal(t, string(original), string(out))
}
