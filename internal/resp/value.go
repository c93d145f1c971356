// Package resp implements the wire codec: decoding RESP2 requests (plus the
// RESP3 Map/Set/Boolean/BigNumber tags) off a connection's inbound buffer,
// and encoding command replies back onto its outbound buffer. Bulk strings
// decoded from a buffer.Buffer reference that buffer's memory directly
// through a buffer.View rather than copying, so a pipeline of GETs over
// large values doesn't pay an extra copy per value.
package resp

import "github.com/iamNilotpal/redcask/internal/buffer"

// Type tags a Value's concrding representation.
type Type int

const (
	// None is the zero Value; never produced by a successful decode.
	None Type = iota
	SimpleString
	Error
	Integer
	BulkString
	Array
	Null
	Map
	Set
	Boolean
	BigNumber
)

// Status reports how a Decode call resolved.
type Status int

const (
	// Ok means a complete Value was decoded.
	Ok Status = iota
	// Incomplete means not enough bytes are buffered yet; the caller
	// should wait for more data and retry with the same offset.
	Incomplete
	// Invalid means the bytes presented cannot be a well-formed RESP
	// value; the connection must be closed.
	Invalid
)

// bytesOrView holds a Value's string payload either as an owned copy or as
// a zero-copy view into a buffer.Anchor. Exactly one of the two is set.
type bytesOrView struct {
	owned  []byte
	view   buffer.View
	isView bool
}

// Bytes returns the payload regardless of which representation backs it.
func (b bytesOrView) Bytes() []byte {
	if b.isView {
		return b.view.Bytes()
	}
	return b.owned
}

// Release drops the View's hold on its Anchor, if this payload is backed by
// one. Safe to call on an owned payload (a no-op).
func (b bytesOrView) Release() {
	if b.isView {
		b.view.Release()
	}
}

// Value is a decoded (or to-be-encoded) RESP value. Which fields are
// meaningful depends on Type.
type Value struct {
	Type Type

	str  bytesOrView
	Int  int64
	Bool bool

	Array []Value
	Set   []Value
	Map   []MapEntry
}

// MapEntry is one key/value pair of a RESP3 Map value.
type MapEntry struct {
	Key   Value
	Value Value
}

// Bytes returns the string payload of a SimpleString, Error, BulkString, or
// BigNumber value. Its result is only valid until Release is called.
func (v Value) Bytes() []byte {
	return v.str.Bytes()
}

// Release drops any zero-copy buffer reference this value (or its
// descendants) holds. Callers that keep a decoded command's arguments past
// the current event loop iteration should either copy Bytes() out first, or
// retain the originating buffer.Anchor themselves; Release is meant for the
// common case of decode-dispatch-respond within one iteration.
func (v Value) Release() {
	v.str.Release()
	for _, e := range v.Array {
		e.Release()
	}
	for _, e := range v.Set {
		e.Release()
	}
	for _, e := range v.Map {
		e.Key.Release()
		e.Value.Release()
	}
}

// NewSimpleString builds an owned SimpleString value.
func NewSimpleString(s string) Value {
	return Value{Type: SimpleString, str: bytesOrView{owned: []byte(s)}}
}

// NewError builds an owned Error value.
func NewError(msg string) Value {
	return Value{Type: Error, str: bytesOrView{owned: []byte(msg)}}
}

// NewInteger builds an Integer value.
func NewInteger(n int64) Value {
	return Value{Type: Integer, Int: n}
}

// NewBulkString builds an owned BulkString value.
func NewBulkString(b []byte) Value {
	return Value{Type: BulkString, str: bytesOrView{owned: b}}
}

// NewBulkStringView builds a zero-copy BulkString value backed by a
// buffer.View.
func NewBulkStringView(v buffer.View) Value {
	return Value{Type: BulkString, str: bytesOrView{view: v, isView: true}}
}

// NewNull builds the RESP2 null value (encodes as "$-1\r\n").
func NewNull() Value {
	return Value{Type: Null}
}

// NewArray builds an Array value.
func NewArray(items []Value) Value {
	return Value{Type: Array, Array: items}
}

// NewBoolean builds a RESP3 Boolean value.
func NewBoolean(b bool) Value {
	return Value{Type: Boolean, Bool: b}
}

// NewBigNumber builds a RESP3 BigNumber value from its decimal digits.
func NewBigNumber(digits string) Value {
	return Value{Type: BigNumber, str: bytesOrView{owned: []byte(digits)}}
}
