package aof

import stderrors "errors"

// errNotACommandArray reports that a decoded append-only log record was not
// a RESP array of bulk strings, the only shape Append ever writes.
var errNotACommandArray = stderrors.New("append-only log record is not a command array")
