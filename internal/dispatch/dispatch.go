// Package dispatch identifies decoded commands, validates their arity, and
// routes them to the keyspace, mirroring the original's Command.h table but
// built as a static map instead of an if/else chain — the same explicit,
// constructor-wired style engine.New uses for its own subsystems.
package dispatch

import (
	"strconv"
	"strings"

	"github.com/iamNilotpal/redcask/internal/keyspace"
	"github.com/iamNilotpal/redcask/internal/resp"
	"github.com/iamNilotpal/redcask/pkg/errors"
	"go.uber.org/zap"
)

// Journal is the durability engine's write path, as seen by dispatch: every
// successful write command's raw arguments are appended for replay. Kept as
// an interface here so dispatch does not import internal/aof; aof.Engine
// satisfies it, and the server binary wires the two together.
type Journal interface {
	Append(args [][]byte) error
}

// commandSpec describes one command's identity, arity, and handler.
// Arity follows the original's convention: a positive value is the exact
// required argument count (including the command name itself); a negative
// value is a minimum, for variadic commands.
type commandSpec struct {
	name    string
	arity   int
	isWrite bool
	handler func(d *Dispatcher, args [][]byte) resp.Value
}

// Config holds the dependencies a Dispatcher routes commands against.
type Config struct {
	Keyspace *keyspace.Keyspace
	Runtime  *keyspace.RuntimeConfig
	Journal  Journal
	// Rewrite triggers the durability engine's background compaction for
	// BGREWRITEAOF. Optional; if nil, BGREWRITEAOF reports an error.
	Rewrite func() error
	Logger  *zap.SugaredLogger
}

// Dispatcher matches a decoded command array against the command table and
// executes it against a Keyspace, journalling write commands as it goes.
type Dispatcher struct {
	ks      *keyspace.Keyspace
	runtime *keyspace.RuntimeConfig
	journal Journal
	rewrite func() error
	log     *zap.SugaredLogger
}

// New constructs a Dispatcher.
func New(config *Config) *Dispatcher {
	return &Dispatcher{
		ks:      config.Keyspace,
		runtime: config.Runtime,
		journal: config.Journal,
		rewrite: config.Rewrite,
		log:     config.Logger,
	}
}

// Replay re-executes one already-journalled command's raw arguments against
// the keyspace, without appending it back onto the journal. It is
// internal/aof.Engine.Load's Replayer, rebuilding the keyspace from the
// append-only log at startup the same way Execute would handle a live
// client request, minus the write-back.
func (d *Dispatcher) Replay(args [][]byte) error {
	if len(args) == 0 {
		return errors.NewValidationError(nil, errors.ErrorCodeInvalidInput, "empty replayed command")
	}

	name := strings.ToUpper(string(args[0]))
	spec, ok := commandTable[name]
	if !ok {
		return errors.NewValidationError(nil, errors.ErrorCodeInvalidInput, "unknown replayed command").WithField(name)
	}
	if !arityOk(spec.arity, len(args)) {
		return errors.NewArityError(name, len(args), arityDescription(spec.arity))
	}

	reply := spec.handler(d, args)
	if reply.Type == resp.Error {
		return errors.NewValidationError(nil, errors.ErrorCodeInvalidInput, "replayed command failed: "+string(reply.Bytes())).WithField(name)
	}
	return nil
}

// Execute decodes a command name from cmd (expected to be a resp.Array of
// BulkString arguments, per the RESP request grammar) and runs it,
// returning the reply to encode back onto the connection's outgoing
// buffer. A malformed request shape, an unknown command, or a wrong
// argument count all produce a resp.Error reply rather than a Go error:
// per spec.md §7, these keep the connection open.
func (d *Dispatcher) Execute(cmd resp.Value) resp.Value {
	if cmd.Type != resp.Array || len(cmd.Array) == 0 {
		return resp.NewError("ERR invalid request")
	}

	args := make([][]byte, len(cmd.Array))
	for i, v := range cmd.Array {
		if v.Type != resp.BulkString {
			return resp.NewError("ERR invalid request")
		}
		args[i] = append([]byte(nil), v.Bytes()...)
	}

	name := strings.ToUpper(string(args[0]))
	spec, ok := commandTable[name]
	if !ok {
		return resp.NewError("ERR unknown command '" + string(args[0]) + "'")
	}

	if !arityOk(spec.arity, len(args)) {
		return errorReply(errors.NewArityError(name, len(args), arityDescription(spec.arity)))
	}

	reply := spec.handler(d, args)
	if spec.isWrite && reply.Type != resp.Error {
		if err := d.journal.Append(copyArgs(args)); err != nil {
			d.log.Errorw("journal append failed", "command", name, "error", err)
		}
	}
	return reply
}

func arityOk(arity, got int) bool {
	if arity >= 0 {
		return got == arity
	}
	return got >= -arity
}

func arityDescription(arity int) string {
	if arity >= 0 {
		return strconv.Itoa(arity)
	}
	return strconv.Itoa(-arity) + "+"
}

func copyArgs(args [][]byte) [][]byte {
	out := make([][]byte, len(args))
	for i, a := range args {
		out[i] = append([]byte(nil), a...)
	}
	return out
}

func errorReply(err error) resp.Value {
	return resp.NewError(errorMessage(err))
}

// errorMessage renders a pkg/errors domain error as a RESP error reply
// string, with the wire-level prefix ("WRONGTYPE", "ERR") spec.md §7
// requires for each error kind.
func errorMessage(err error) string {
	switch {
	case errors.IsTypeError(err):
		return "WRONGTYPE " + err.Error()
	case errors.IsArityError(err), errors.IsValueError(err):
		return "ERR " + err.Error()
	default:
		return "ERR " + err.Error()
	}
}
