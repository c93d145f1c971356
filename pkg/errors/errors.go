// This package addresses the fundamental challenge that generic error handling presents in complex
// systems: when an error occurs, developers and operators need much more than just "something went wrong."
// They need to understand exactly what failed, why it failed, where it failed, and most importantly,
// what they can do about it. This package transforms error handling from reactive debugging into
// proactive problem resolution.
//
// Architecture and Design Philosophy:
//
// The error system is built around a hierarchical structure that starts with a foundational baseError
// and extends into domain-specific error types. This design provides several key advantages:
// it maintains consistency across all error types while allowing specialized context for different
// domains, enables rich error chaining that preserves the complete failure context, supports
// programmatic error handling through standardized error codes, and facilitates comprehensive
// logging and monitoring through structured error details.
//
// The system recognizes that different layers of a RESP-compatible store fail in fundamentally
// different ways and require different types of contextual information for effective diagnosis and
// recovery. A protocol error needs to know which byte offset and tag broke framing. A command error
// needs to know which command and argument were involved. A keyspace error needs to know which key
// and operation were being processed. A storage error needs to know which log file and byte offset
// were involved. By capturing this domain-specific context at the point of failure, the system
// enables much more intelligent error handling throughout the application stack.
//
// Error Classification and Codes:
//
// Central to this system is a comprehensive error code taxonomy that provides standardized
// categorization of failures. These codes serve multiple purposes: they enable programmatic
// error handling that doesn't rely on parsing error messages, they provide consistent
// categorization for monitoring and alerting systems, they facilitate error recovery logic
// by identifying specific failure modes, and they support internationalization by separating
// error identification from error presentation.
//
// The error codes are organized into several categories. Base codes cover fundamental failure
// types that can occur in any system: IO_ERROR for input/output failures, INVALID_INPUT for
// client-side validation problems, and INTERNAL_ERROR for unexpected system failures. Protocol
// codes cover malformed wire framing, always fatal to the connection. Command-layer codes
// (WRONG_ARITY, WRONG_TYPE, NOT_AN_INTEGER, NOT_A_FLOAT, UNKNOWN_COMMAND) are surfaced to the
// client as RESP error replies without closing the connection. Storage-specific codes handle the
// unique failure modes of the append-only log: SEGMENT_CORRUPTED for data integrity issues,
// PERMISSION_DENIED for access control problems, DISK_FULL for capacity issues, and
// REWRITE_IN_PROGRESS / RENAME_FAILED for the background compaction path. Index-taxonomy codes
// address the in-memory keyspace's own bookkeeping: INDEX_KEY_NOT_FOUND for missing keys and
// INDEX_CORRUPTED for structural integrity issues in the hash table or order-statistic tree.
//
// Usage Patterns and Best Practices:
//
// This error handling system is designed to support several key usage patterns that improve
// both developer experience and operational visibility.
//
// For error creation, the package encourages building errors with comprehensive context at
// the point of failure. This means capturing not just what went wrong, but where it went
// wrong, what was being attempted, and what conditions led to the failure. The fluent
// interface pattern makes this context capture both readable and maintainable.
//
// For error handling, the package supports both programmatic error handling (using error
// codes and type detection) and human-readable error reporting (using structured messages
// and details). This dual approach enables both robust automated error recovery and
// effective human troubleshooting.
//
// For error propagation, the package encourages preserving error context as errors flow
// through system layers while adding layer-specific context when appropriate. This creates
// a comprehensive audit trail of what happened during a failure, making root cause analysis
// much more effective.
//
// Operational Benefits:
//
// The structured approach to error handling provides significant operational benefits.
// Monitoring and alerting systems can categorize and group errors based on error codes
// rather than parsing error messages. Log analysis becomes more effective because errors
// include structured context that can be easily indexed and searched. Error recovery
// logic becomes more sophisticated because it can make decisions based on specific error
// types and context rather than generic failure notifications.
//
// The system also improves the development experience by making errors more debuggable
// and providing clear patterns for error creation and handling. Developers can quickly
// understand what went wrong and why, rather than spending time deciphering generic
// error messages or trying to reproduce failure conditions
package errors

import (
	stdErrors "errors"
	"os"
	"syscall"
)

// IsValidationError checks if the given error is a ValidationError or contains one in its error chain.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stdErrors.As(err, &ve)
}

// IsStorageError determines if an error is related to the append-only log: file I/O,
// disk space issues, or segment corruption. Storage errors often require different
// handling strategies than other error types because they may indicate hardware issues,
// capacity problems, or data integrity concerns that need immediate attention.
func IsStorageError(err error) bool {
	var se *StorageError
	return stdErrors.As(err, &se)
}

// IsKeyspaceError identifies errors that occurred in the in-memory keyspace itself: key
// lookups, hash table bucket operations, or order-statistic tree bookkeeping. Keyspace
// errors provide crucial context about which keys were involved and what operations were
// being performed.
func IsKeyspaceError(err error) bool {
	var ke *KeyspaceError
	return stdErrors.As(err, &ke)
}

// IsProtocolError identifies malformed wire framing. A protocol error is always fatal to
// the connection it occurred on.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return stdErrors.As(err, &pe)
}

// IsArityError identifies a command invoked with the wrong number of arguments.
func IsArityError(err error) bool {
	var ae *ArityError
	return stdErrors.As(err, &ae)
}

// IsTypeError identifies a command addressed at a key holding the wrong payload type.
func IsTypeError(err error) bool {
	var te *TypeError
	return stdErrors.As(err, &te)
}

// IsValueError identifies an argument that failed to parse as the numeric type a command
// required.
func IsValueError(err error) bool {
	var ve *ValueError
	return stdErrors.As(err, &ve)
}

// IsResourceError identifies failures to set up or use an operating-system resource such as a socket.
func IsResourceError(err error) bool {
	var re *ResourceError
	return stdErrors.As(err, &re)
}

// AsValidationError safely extracts a ValidationError from an error chain, providing access
// to validation-specific context such as which field failed, what rule was violated, and
// what values were provided versus expected.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stdErrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsStorageError extracts StorageError context from an error chain, providing access to
// storage-specific information such as segment IDs, file offsets, file names, and paths.
func AsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	if stdErrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsKeyspaceError extracts KeyspaceError context, providing access to the key being
// processed, the operation being performed, and bucket/entry-count statistics.
func AsKeyspaceError(err error) (*KeyspaceError, bool) {
	var ke *KeyspaceError
	if stdErrors.As(err, &ke) {
		return ke, true
	}
	return nil, false
}

// AsProtocolError extracts ProtocolError context: the byte offset, tag, and nesting depth
// at which decoding failed.
func AsProtocolError(err error) (*ProtocolError, bool) {
	var pe *ProtocolError
	if stdErrors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// AsArityError extracts ArityError context: the command name and observed/expected arity.
func AsArityError(err error) (*ArityError, bool) {
	var ae *ArityError
	if stdErrors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// AsTypeError extracts TypeError context: the key and its actual vs. expected type.
func AsTypeError(err error) (*TypeError, bool) {
	var te *TypeError
	if stdErrors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// AsValueError extracts ValueError context: the offending argument and the numeric kind
// it failed to parse as.
func AsValueError(err error) (*ValueError, bool) {
	var ve *ValueError
	if stdErrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsResourceError extracts ResourceError context: the exhausted resource and the
// requested/available counts.
func AsResourceError(err error) (*ResourceError, bool) {
	var re *ResourceError
	if stdErrors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from any error that supports it, or returns
// ErrorCodeInternal for errors that don't have specific codes. This function provides
// a consistent way to categorize errors for monitoring and handling purposes.
func GetErrorCode(err error) ErrorCode {
	if ve, ok := AsValidationError(err); ok {
		return ve.Code()
	}
	if se, ok := AsStorageError(err); ok {
		return se.Code()
	}
	if ke, ok := AsKeyspaceError(err); ok {
		return ke.Code()
	}
	if pe, ok := AsProtocolError(err); ok {
		return pe.Code()
	}
	if ae, ok := AsArityError(err); ok {
		return ae.Code()
	}
	if te, ok := AsTypeError(err); ok {
		return te.Code()
	}
	if ve, ok := AsValueError(err); ok {
		return ve.Code()
	}
	if re, ok := AsResourceError(err); ok {
		return re.Code()
	}
	return ErrorCodeInternal
}

// GetErrorDetails extracts structured details from a ValidationError,
// StorageError, KeyspaceError or ProtocolError in err's chain, returning an
// empty map for errors without details. Details attached to any other error
// kind are not returned.
func GetErrorDetails(err error) map[string]any {
	if ve, ok := AsValidationError(err); ok {
		if details := ve.Details(); details != nil {
			return details
		}
	}
	if se, ok := AsStorageError(err); ok {
		if details := se.Details(); details != nil {
			return details
		}
	}
	if ke, ok := AsKeyspaceError(err); ok {
		if details := ke.Details(); details != nil {
			return details
		}
	}
	if pe, ok := AsProtocolError(err); ok {
		if details := pe.Details(); details != nil {
			return details
		}
	}
	return make(map[string]any)
}

// ClassifyDirectoryCreationError analyzes directory creation failures and returns
// appropriate error codes based on the underlying system error. This helps clients
// understand exactly what went wrong and how they might fix it.
func ClassifyDirectoryCreationError(err error, path string) error {
	if os.IsPermission(err) {
		return NewStorageError(
			err, ErrorCodePermissionDenied,
			"insufficient permissions to create data directory",
		).WithPath(path).
			WithDetail("operation", "directory_creation").
			WithDetail("required_permission", "write").
			WithDetail("suggestion", "check directory permissions or run with elevated privileges")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(
					err, ErrorCodeDiskFull,
					"insufficient disk space to create data directory",
				).WithPath(path).
					WithDetail("operation", "directory_creation").
					WithDetail("suggestion", "free up disk space or choose a different location")
			case syscall.EROFS:
				return NewStorageError(
					err, ErrorCodeFilesystemReadonly,
					"cannot create directory on read-only filesystem",
				).WithPath(path).
					WithDetail("operation", "directory_creation").
					WithDetail("suggestion", "remount filesystem with write permissions")
			}
		}
	}

	return NewStorageError(
		err, ErrorCodeIO, "failed to create data directory",
	).WithPath(path).WithDetail("operation", "directory_creation")
}

// ClassifyFileOpenError analyzes file opening failures and returns appropriate error codes
// based on the underlying system error. This provides much more specific information than
// a generic I/O error.
func ClassifyFileOpenError(err error, filePath, fileName string) error {
	if os.IsPermission(err) {
		return NewStorageError(
			err, ErrorCodePermissionDenied,
			"insufficient permissions to open log file",
		).WithPath(filePath).
			WithFileName(fileName).
			WithDetail("operation", "file_open").
			WithDetail("required_permission", "read_write").
			WithDetail("suggestion", "check file permissions or run with elevated privileges")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(
					err, ErrorCodeDiskFull,
					"insufficient disk space to create log file",
				).WithPath(filePath).
					WithFileName(fileName).
					WithDetail("operation", "file_open").
					WithDetail("suggestion", "free up disk space")
			case syscall.EROFS:
				return NewStorageError(
					err, ErrorCodeFilesystemReadonly,
					"cannot create file on read-only filesystem",
				).WithPath(filePath).
					WithFileName(fileName).
					WithDetail("operation", "file_open").
					WithDetail("suggestion", "remount filesystem with write permissions")
			}
		}
	}

	return NewStorageError(err, ErrorCodeIO, "failed to open log file").
		WithPath(filePath).
		WithFileName(fileName).
		WithDetail("operation", "file_open").
		WithDetail("flags", []string{"O_CREATE", "O_RDWR", "O_APPEND"})
}

// ClassifySyncError analyzes fsync failures and returns appropriate error codes. Sync
// failures can indicate various underlying issues from disk space problems to filesystem
// corruption.
func ClassifySyncError(err error, fileName, filePath string, offset int) error {
	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(
					err, ErrorCodeDiskFull,
					"cannot sync log file: insufficient disk space",
				).WithFileName(fileName).
					WithPath(filePath).
					WithOffset(offset).
					WithDetail("operation", "file_sync").
					WithDetail("suggestion", "free up disk space before continuing")
			case syscall.EROFS:
				return NewStorageError(
					err, ErrorCodeFilesystemReadonly,
					"cannot sync log file: filesystem is read-only",
				).WithFileName(fileName).
					WithPath(filePath).
					WithOffset(offset).
					WithDetail("operation", "file_sync").
					WithDetail("suggestion", "remount filesystem with write permissions")
			case syscall.EIO:
				return NewStorageError(
					err, ErrorCodeIO,
					"I/O error during log sync - possible hardware or corruption issue",
				).WithFileName(fileName).
					WithPath(filePath).
					WithOffset(offset).
					WithDetail("operation", "file_sync").
					WithDetail("severity", "high").
					WithDetail("suggestion", "check filesystem integrity and hardware health")
			}
		}
	}

	return NewStorageError(
		err, ErrorCodeIO, "failed to sync log file to disk",
	).WithFileName(fileName).WithPath(filePath).WithOffset(offset).
		WithDetail("operation", "file_sync").
		WithDetail("currentSize", offset)
}
