package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAndAs_MatchOwnType(t *testing.T) {
	cases := []struct {
		name string
		err  error
		is   func(error) bool
		code ErrorCode
	}{
		{"validation", NewRequiredFieldError("dir"), IsValidationError, ErrorCodeInvalidInput},
		{"storage", NewStorageError(nil, ErrorCodeIO, "disk full").WithPath("/data/redcask.aof"), IsStorageError, ErrorCodeIO},
		{"keyspace", NewKeyspaceError(nil, ErrorCodeIndexKeyNotFound, "no such key").WithKey("missing"), IsKeyspaceError, ErrorCodeIndexKeyNotFound},
		{"protocol", NewMalformedFrameError("$", 0), IsProtocolError, ErrorCodeProtocolInvalid},
		{"arity", NewArityError("GET", 0, "1"), IsArityError, ErrorCodeWrongArity},
		{"type", NewTypeError("k", "list", "string"), IsTypeError, ErrorCodeWrongType},
		{"value", NewNotAnIntegerError("abc"), IsValueError, ErrorCodeNotAnInteger},
		{"resource", NewResourceError(nil, ErrorCodeIO, "bind failed").WithResource("socket"), IsResourceError, ErrorCodeIO},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.is(tc.err))
			assert.Equal(t, tc.code, GetErrorCode(tc.err))
		})
	}
}

func TestIs_RejectsOtherTypes(t *testing.T) {
	ve := NewRequiredFieldError("dir")
	assert.False(t, IsStorageError(ve))
	assert.False(t, IsProtocolError(ve))
	assert.False(t, IsArityError(ve))
}

func TestAsValidationError_RecoversFields(t *testing.T) {
	err := NewFieldRangeError("port", "0", 1, 65535)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "port", ve.Field())
	assert.Equal(t, "range", ve.Rule())
	assert.Equal(t, "0", ve.Provided())
}

func TestAsArityError_RecoversFields(t *testing.T) {
	err := NewArityError("SET", 1, "3")
	ae, ok := AsArityError(err)
	require.True(t, ok)
	assert.Equal(t, "SET", ae.Command())
	assert.Equal(t, 1, ae.Got())
	assert.Equal(t, "3", ae.Expected())
}

func TestAsProtocolError_DistinguishesRecursionFromMalformedTag(t *testing.T) {
	overflow := NewRecursionOverflowError(33)
	pe, ok := AsProtocolError(overflow)
	require.True(t, ok)
	assert.Equal(t, ErrorCodeRecursionOverflow, pe.Code())
	assert.Equal(t, 33, pe.Depth())

	malformed := NewMalformedFrameError("$", 12)
	pe, ok = AsProtocolError(malformed)
	require.True(t, ok)
	assert.Equal(t, ErrorCodeProtocolInvalid, pe.Code())
	assert.Equal(t, "$", pe.Tag())
	assert.Equal(t, 12, pe.Offset())
}

func TestGetErrorCode_UnknownErrorFallsBackToInternal(t *testing.T) {
	assert.Equal(t, ErrorCodeInternal, GetErrorCode(fmt.Errorf("plain error")))
}

func TestGetErrorDetails_ReturnsEmptyMapForUntypedError(t *testing.T) {
	details := GetErrorDetails(fmt.Errorf("plain error"))
	assert.NotNil(t, details)
	assert.Empty(t, details)
}

func TestAs_UnwrapsThroughFmtErrorf(t *testing.T) {
	wrapped := fmt.Errorf("opening append-only log: %w", NewStorageError(nil, ErrorCodeIO, "disk full"))
	se, ok := AsStorageError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrorCodeIO, se.Code())
}
