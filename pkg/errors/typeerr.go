package errors

// TypeError indicates a command addressed a key whose existing payload is
// not of the type the command requires, mirroring RESP's WRONGTYPE reply.
type TypeError struct {
	*baseError

	key          string
	actualType   string
	expectedType string
}

// NewTypeError creates a new type-mismatch error.
func NewTypeError(key, actualType, expectedType string) *TypeError {
	return &TypeError{
		baseError:    NewBaseError(nil, ErrorCodeWrongType, "operation against a key holding the wrong kind of value"),
		key:          key,
		actualType:   actualType,
		expectedType: expectedType,
	}
}

// Key returns the key whose payload type did not match.
func (te *TypeError) Key() string {
	return te.key
}

// ActualType returns the type the key's payload actually holds.
func (te *TypeError) ActualType() string {
	return te.actualType
}

// ExpectedType returns the type the command required.
func (te *TypeError) ExpectedType() string {
	return te.expectedType
}
