package aof

import (
	"time"

	"github.com/iamNilotpal/redcask/internal/resp"
	"github.com/iamNilotpal/redcask/pkg/errors"
	"github.com/iamNilotpal/redcask/pkg/options"
)

// Append encodes args as a RESP array of bulk strings (the same shape the
// client sent it in) and appends it to the in-memory buffer, flushing
// immediately under the `always` fsync policy. While a rewrite is in
// progress the command is also mirrored into the rewrite buffer, so it
// survives the rewrite's snapshot-to-rename handoff.
func (e *Engine) Append(args [][]byte) error {
	encoded := encodeCommand(args)

	e.mu.Lock()
	e.pending = append(e.pending, encoded...)
	var err error
	if e.fsync == options.AppendFsyncAlways {
		err = e.flushLocked()
	}
	e.mu.Unlock()

	if State(e.state.Load()) == Rewriting {
		e.bufferForRewrite(args)
	}
	return err
}

func encodeCommand(args [][]byte) []byte {
	vals := make([]resp.Value, len(args))
	for i, a := range args {
		vals[i] = resp.NewBulkString(a)
	}
	return resp.Encode(nil, resp.NewArray(vals))
}

// Flush writes the in-memory buffer to disk and, outside of `no` policy,
// fsyncs it.
func (e *Engine) Flush() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flushLocked()
}

func (e *Engine) flushLocked() error {
	if len(e.pending) == 0 {
		return nil
	}

	if _, err := e.file.Write(e.pending); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to write append-only log").WithPath(e.path)
	}
	e.pending = e.pending[:0]

	if e.fsync != options.AppendFsyncNo {
		if err := e.file.Sync(); err != nil {
			return errors.ClassifySyncError(err, e.path, e.path, 0)
		}
	}
	e.lastFlush = time.Now()
	return nil
}

// Tick checks whether the `everysec` flush interval has elapsed and
// flushes if so. Meant to be called once per event-loop iteration, the way
// the original's Persistence::Tick is driven from the server's poll loop.
func (e *Engine) Tick() {
	e.mu.Lock()
	due := e.fsync == options.AppendFsyncEverysec && time.Since(e.lastFlush) >= e.fsyncInterval
	e.mu.Unlock()

	if !due {
		return
	}
	if err := e.Flush(); err != nil {
		e.log.Errorw("periodic append-only flush failed", "error", err)
	}
}
