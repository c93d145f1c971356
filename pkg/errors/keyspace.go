package errors

// KeyspaceError provides specialized error handling for the in-memory
// keyspace's own bookkeeping: the intrusive hash table that maps keys to
// entries and the order-statistic structures layered on top of it. It embeds
// baseError to inherit chaining and structured details, then adds context
// specific to a single key/bucket lookup.
type KeyspaceError struct {
	*baseError

	// Identifies which key was being processed when the error occurred.
	key string

	// Which hash bucket the key mapped to, if the error happened during a
	// table-level operation (lookup, insert, progressive rehash step).
	bucket uint64

	// Describes what keyspace operation was being performed when the error
	// occurred (e.g. "Get", "Insert", "Rehash", "RankOf").
	operation string

	// Number of live entries in the keyspace at the time of the error.
	entryCount int
}

// NewKeyspaceError creates a new keyspace-specific error with the provided
// context.
func NewKeyspaceError(err error, code ErrorCode, msg string) *KeyspaceError {
	return &KeyspaceError{
		baseError: NewBaseError(err, code, msg),
	}
}

// Override base error methods to return *KeyspaceError instead of *baseError.

// WithMessage updates the error message while maintaining the KeyspaceError type.
func (ke *KeyspaceError) WithMessage(msg string) *KeyspaceError {
	ke.baseError.WithMessage(msg)
	return ke
}

// WithCode sets the error code while preserving the KeyspaceError type.
func (ke *KeyspaceError) WithCode(code ErrorCode) *KeyspaceError {
	ke.baseError.WithCode(code)
	return ke
}

// WithDetail adds contextual information while maintaining the KeyspaceError type.
func (ke *KeyspaceError) WithDetail(key string, value any) *KeyspaceError {
	ke.baseError.WithDetail(key, value)
	return ke
}

// WithKey records which key was being processed when the error occurred.
func (ke *KeyspaceError) WithKey(key string) *KeyspaceError {
	ke.key = key
	return ke
}

// WithBucket records which hash bucket was involved in the error.
func (ke *KeyspaceError) WithBucket(bucket uint64) *KeyspaceError {
	ke.bucket = bucket
	return ke
}

// WithOperation records what keyspace operation was being performed.
func (ke *KeyspaceError) WithOperation(operation string) *KeyspaceError {
	ke.operation = operation
	return ke
}

// WithEntryCount captures the number of live entries when the error occurred.
func (ke *KeyspaceError) WithEntryCount(count int) *KeyspaceError {
	ke.entryCount = count
	return ke
}

// Key returns the key that was being processed when the error occurred.
func (ke *KeyspaceError) Key() string {
	return ke.key
}

// Bucket returns the hash bucket associated with the error.
func (ke *KeyspaceError) Bucket() uint64 {
	return ke.bucket
}

// Operation returns the name of the operation that was being performed.
func (ke *KeyspaceError) Operation() string {
	return ke.operation
}

// EntryCount returns the number of live entries when the error occurred.
func (ke *KeyspaceError) EntryCount() int {
	return ke.entryCount
}

// NewKeyNotFoundError creates a specialized error for missing keys.
func NewKeyNotFoundError(key string) *KeyspaceError {
	return NewKeyspaceError(nil, ErrorCodeIndexKeyNotFound, "key not found in keyspace").
		WithKey(key).
		WithOperation("Get")
}

// NewKeyspaceCorruptionError creates an error for keyspace structure
// invariant violations: a hash table bucket chain that loops, an
// order-statistic subtree size that doesn't match its children, or similar.
func NewKeyspaceCorruptionError(operation string, entryCount int, cause error) *KeyspaceError {
	return NewKeyspaceError(cause, ErrorCodeIndexCorrupted, "keyspace data structure corrupted").
		WithOperation(operation).
		WithEntryCount(entryCount).
		WithDetail("corruption_detected", true).
		WithDetail("recovery_required", true)
}
