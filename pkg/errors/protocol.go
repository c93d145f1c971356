package errors

// ProtocolError covers malformed wire framing discovered by the RESP
// decoder. Unlike command-layer errors, a ProtocolError is always fatal to
// the connection: the byte stream can no longer be trusted to be
// self-delimiting, so there is no safe way to keep reading from it.
type ProtocolError struct {
	*baseError

	// Byte offset within the current read buffer where decoding failed.
	offset int

	// The leading tag byte that triggered the failure, rendered as a string
	// for readability ("$", "*", "%", ...).
	tag string

	// Nesting depth reached when the failure occurred, relevant only for
	// ErrorCodeRecursionOverflow.
	depth int
}

// NewProtocolError creates a new protocol-specific error.
func NewProtocolError(err error, code ErrorCode, msg string) *ProtocolError {
	return &ProtocolError{baseError: NewBaseError(err, code, msg)}
}

// WithOffset records where in the buffer the decode failure occurred.
func (pe *ProtocolError) WithOffset(offset int) *ProtocolError {
	pe.offset = offset
	return pe
}

// WithTag records the leading tag byte that could not be decoded.
func (pe *ProtocolError) WithTag(tag string) *ProtocolError {
	pe.tag = tag
	return pe
}

// WithDepth records the nesting depth reached when the failure occurred.
func (pe *ProtocolError) WithDepth(depth int) *ProtocolError {
	pe.depth = depth
	return pe
}

// Offset returns the byte offset where decoding failed.
func (pe *ProtocolError) Offset() int {
	return pe.offset
}

// Tag returns the leading tag byte that triggered the failure.
func (pe *ProtocolError) Tag() string {
	return pe.tag
}

// Depth returns the nesting depth reached when the failure occurred.
func (pe *ProtocolError) Depth() int {
	return pe.depth
}

// NewRecursionOverflowError creates an error for an Array or Map nested
// beyond the decoder's fixed depth bound.
func NewRecursionOverflowError(depth int) *ProtocolError {
	return NewProtocolError(nil, ErrorCodeRecursionOverflow, "nested aggregate exceeds maximum recursion depth").
		WithDepth(depth)
}

// NewMalformedFrameError creates an error for a leading tag or length field
// the decoder could not interpret at all.
func NewMalformedFrameError(tag string, offset int) *ProtocolError {
	return NewProtocolError(nil, ErrorCodeProtocolInvalid, "malformed RESP frame").
		WithTag(tag).
		WithOffset(offset)
}
