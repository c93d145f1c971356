package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes represent the fundamental categories of failures that can
// occur across any software system. These codes provide the foundation layer
// of error classification.
const (
	// ErrorCodeIO represents failures in input/output operations across any
	// system boundary: appending to or fsyncing the append-only log, renaming
	// the rewritten log into place, or reading the configuration file.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput represents client-side errors where the provided
	// data doesn't meet the system's requirements or constraints.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected system failures that don't fit
	// into other categories.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Storage-specific error codes extend the base taxonomy to the durability
// engine's on-disk log and its background rewrite.
const (
	// ErrorCodeSegmentCorrupted indicates the append-only log contains a
	// record that cannot be decoded as a well-formed RESP array.
	ErrorCodeSegmentCorrupted ErrorCode = "SEGMENT_CORRUPTED"

	// ErrorCodeHeaderReadFailure occurs when the system cannot read the
	// length header of a RESP value while replaying the log.
	ErrorCodeHeaderReadFailure ErrorCode = "HEADER_READ_FAILURE"

	// ErrorCodePayloadReadFailure indicates problems reading the body of a
	// log record after successfully reading its header.
	ErrorCodePayloadReadFailure ErrorCode = "PAYLOAD_READ_FAILURE"

	// ErrorCodeRecoveryFailed indicates replay from the append-only log
	// stopped before reaching the end of the file.
	ErrorCodeRecoveryFailed ErrorCode = "STORAGE_RECOVERY_FAILED"

	// ErrorCodePermissionDenied indicates insufficient permissions to access
	// the data directory or log file.
	ErrorCodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// ErrorCodeDiskFull indicates the storage device has run out of space.
	ErrorCodeDiskFull ErrorCode = "DISK_FULL"

	// ErrorCodeFilesystemReadonly indicates the filesystem is mounted
	// read-only.
	ErrorCodeFilesystemReadonly ErrorCode = "FILESYSTEM_READONLY"

	// ErrorCodeRewriteInProgress indicates a BGREWRITEAOF was requested while
	// the durability engine was already rewriting the log.
	ErrorCodeRewriteInProgress ErrorCode = "REWRITE_IN_PROGRESS"

	// ErrorCodeRenameFailed indicates the atomic rename of the rewritten log
	// over the live log failed; the previous log remains authoritative.
	ErrorCodeRenameFailed ErrorCode = "RENAME_FAILED"
)

// Protocol-layer error codes cover malformed wire framing. A protocol error
// always closes the connection; it is never surfaced as a RESP error reply.
const (
	// ErrorCodeProtocolInvalid indicates the decoder could not parse a RESP
	// value from the bytes presented: a length or integer field that is not
	// a number, a bulk string not followed by CRLF, or a malformed boolean,
	// null or big number. Any negative bulk string or array length decodes
	// as Null, and a first byte that is not a type tag is read as an inline
	// command.
	ErrorCodeProtocolInvalid ErrorCode = "PROTOCOL_INVALID"

	// ErrorCodeRecursionOverflow indicates an Array or Map nested beyond the
	// fixed depth bound (32).
	ErrorCodeRecursionOverflow ErrorCode = "PROTOCOL_RECURSION_OVERFLOW"
)

// Command-layer error codes, surfaced to the client as RESP error replies;
// the connection stays open.
const (
	// ErrorCodeWrongArity indicates a command was invoked with the wrong
	// number of arguments.
	ErrorCodeWrongArity ErrorCode = "WRONG_ARITY"

	// ErrorCodeWrongType indicates a command addressed a key whose existing
	// payload is not of the type the command requires.
	ErrorCodeWrongType ErrorCode = "WRONG_TYPE"

	// ErrorCodeNotAnInteger indicates an argument expected to parse as a
	// signed 64-bit integer did not.
	ErrorCodeNotAnInteger ErrorCode = "NOT_AN_INTEGER"

	// ErrorCodeNotAFloat indicates an argument expected to parse as a
	// floating point score did not.
	ErrorCodeNotAFloat ErrorCode = "NOT_A_FLOAT"

	// ErrorCodeUnknownCommand indicates the dispatcher has no entry for the
	// requested command name.
	ErrorCodeUnknownCommand ErrorCode = "UNKNOWN_COMMAND"
)

// Resource-layer error codes cover allocation and capacity failures local to
// a single command; the command fails but the connection stays open.
const (
	// ErrorCodeSegmentExhausted indicates the buffer pool could not satisfy a
	// segment acquisition request.
	ErrorCodeSegmentExhausted ErrorCode = "SEGMENT_EXHAUSTED"

	// ErrorCodeAllocationFailed is a catch-all for allocation failure local
	// to a command's execution.
	ErrorCodeAllocationFailed ErrorCode = "ALLOCATION_FAILED"
)

// Index-taxonomy codes cover the in-memory keyspace's own bookkeeping
// (distinct from the on-disk StorageError codes above).
const (
	// ErrorCodeIndexKeyNotFound indicates a lookup against the keyspace's
	// hash index found no entry for the given key.
	ErrorCodeIndexKeyNotFound ErrorCode = "INDEX_KEY_NOT_FOUND"

	// ErrorCodeIndexCorrupted indicates an invariant of the intrusive hash
	// table or order-statistic tree was found violated.
	ErrorCodeIndexCorrupted ErrorCode = "INDEX_CORRUPTED"
)
