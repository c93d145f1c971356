package errors

// ValueError indicates an argument could not be parsed as the numeric type a
// command requires: an integer counter for INCRBY, a floating point score
// for a sorted-set command, and so on.
type ValueError struct {
	*baseError

	argument string
	kind     string // "integer" or "float"
}

// NewValueError creates a new value-parsing error.
func NewValueError(code ErrorCode, argument, kind string) *ValueError {
	return &ValueError{
		baseError: NewBaseError(nil, code, "value is not a valid "+kind),
		argument:  argument,
		kind:      kind,
	}
}

// Argument returns the raw argument text that failed to parse.
func (ve *ValueError) Argument() string {
	return ve.argument
}

// Kind returns the numeric kind the argument was expected to parse as.
func (ve *ValueError) Kind() string {
	return ve.kind
}

// NewNotAnIntegerError creates an error for an argument that failed to
// parse as a signed 64-bit integer.
func NewNotAnIntegerError(argument string) *ValueError {
	return NewValueError(ErrorCodeNotAnInteger, argument, "integer")
}

// NewNotAFloatError creates an error for an argument that failed to parse
// as a floating point score.
func NewNotAFloatError(argument string) *ValueError {
	return NewValueError(ErrorCodeNotAFloat, argument, "float")
}
