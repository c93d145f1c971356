package aof

import (
	"os"

	"github.com/iamNilotpal/redcask/internal/resp"
	"github.com/iamNilotpal/redcask/pkg/errors"
)

// Load reads the entire append-only log and replays each decoded command
// array through replay, in file order, rebuilding the keyspace the log
// describes. Per the pinned open question, any decode-Invalid — including
// a mid-record tear from a previous unclean shutdown — stops replay
// immediately with a diagnostic; it never truncates-and-continues.
func (e *Engine) Load(replay Replayer) error {
	data, err := os.ReadFile(e.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.ClassifyFileOpenError(err, e.path, e.path)
	}

	offset := 0
	for offset < len(data) {
		status, value, consumed := resp.Decode(data[offset:], nil)
		if status != resp.Ok {
			return errors.NewStorageError(nil, errors.ErrorCodeSegmentCorrupted,
				"append-only log contains a malformed or truncated record").
				WithPath(e.path).WithOffset(offset)
		}

		args, err := commandArgs(value)
		value.Release()
		if err != nil {
			return errors.NewStorageError(err, errors.ErrorCodeSegmentCorrupted,
				"append-only log record is not a command array").
				WithPath(e.path).WithOffset(offset)
		}

		if err := replay(args); err != nil {
			return errors.NewStorageError(err, errors.ErrorCodeRecoveryFailed,
				"replaying append-only log command failed").WithPath(e.path).WithOffset(offset)
		}

		offset += consumed
	}
	return nil
}

func commandArgs(value resp.Value) ([][]byte, error) {
	if value.Type != resp.Array {
		return nil, errNotACommandArray
	}
	args := make([][]byte, len(value.Array))
	for i, v := range value.Array {
		if v.Type != resp.BulkString {
			return nil, errNotACommandArray
		}
		args[i] = append([]byte(nil), v.Bytes()...)
	}
	return args, nil
}
