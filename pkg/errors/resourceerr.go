package errors

// ResourceError covers failures to set up or use an operating-system
// resource the server depends on. The connection runtime raises it when
// creating, configuring, binding, listening on, polling or closing its
// sockets fails.
type ResourceError struct {
	*baseError

	resource  string // e.g. "segment-pool", "small-tier", "large-tier"
	requested int
	available int
}

// NewResourceError creates a new resource-exhaustion error.
func NewResourceError(err error, code ErrorCode, msg string) *ResourceError {
	return &ResourceError{baseError: NewBaseError(err, code, msg)}
}

// WithResource records which resource pool was exhausted.
func (re *ResourceError) WithResource(resource string) *ResourceError {
	re.resource = resource
	return re
}

// WithRequested records how many units were requested.
func (re *ResourceError) WithRequested(requested int) *ResourceError {
	re.requested = requested
	return re
}

// WithAvailable records how many units were actually available.
func (re *ResourceError) WithAvailable(available int) *ResourceError {
	re.available = available
	return re
}

// Resource returns the name of the exhausted resource pool.
func (re *ResourceError) Resource() string {
	return re.resource
}

// Requested returns how many units were requested.
func (re *ResourceError) Requested() int {
	return re.requested
}

// Available returns how many units were actually available.
func (re *ResourceError) Available() int {
	return re.available
}
