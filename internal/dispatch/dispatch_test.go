package dispatch

import (
	"testing"

	"github.com/iamNilotpal/redcask/internal/keyspace"
	"github.com/iamNilotpal/redcask/internal/resp"
	"github.com/iamNilotpal/redcask/pkg/logger"
	"github.com/iamNilotpal/redcask/pkg/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJournal struct {
	appended [][][]byte
}

func (f *fakeJournal) Append(args [][]byte) error {
	f.appended = append(f.appended, args)
	return nil
}

func newTestDispatcher() (*Dispatcher, *fakeJournal) {
	ks := keyspace.New(&keyspace.Config{Logger: logger.NewNop()})
	fsync := options.AppendFsyncEverysec
	j := &fakeJournal{}
	d := New(&Config{
		Keyspace: ks,
		Runtime:  &keyspace.RuntimeConfig{AppendFsync: &fsync},
		Journal:  j,
		Logger:   logger.NewNop(),
	})
	return d, j
}

func cmd(parts ...string) resp.Value {
	vals := make([]resp.Value, len(parts))
	for i, p := range parts {
		vals[i] = resp.NewBulkString([]byte(p))
	}
	return resp.NewArray(vals)
}

func TestExecute_SetGet(t *testing.T) {
	d, j := newTestDispatcher()

	reply := d.Execute(cmd("SET", "a", "1"))
	assert.Equal(t, resp.SimpleString, reply.Type)
	require.Len(t, j.appended, 1)

	reply = d.Execute(cmd("GET", "a"))
	require.Equal(t, resp.BulkString, reply.Type)
	assert.Equal(t, "1", string(reply.Bytes()))
}

func TestExecute_IncrSequence(t *testing.T) {
	d, _ := newTestDispatcher()
	d.Execute(cmd("SET", "a", "1"))
	d.Execute(cmd("INCR", "a"))
	reply := d.Execute(cmd("INCR", "a"))
	assert.EqualValues(t, 3, reply.Int)
}

func TestExecute_UnknownCommand(t *testing.T) {
	d, _ := newTestDispatcher()
	reply := d.Execute(cmd("NOTACOMMAND"))
	assert.Equal(t, resp.Error, reply.Type)
}

func TestExecute_ArityError(t *testing.T) {
	d, _ := newTestDispatcher()
	reply := d.Execute(cmd("GET"))
	assert.Equal(t, resp.Error, reply.Type)
}

func TestExecute_WrongTypeDoesNotJournal(t *testing.T) {
	d, j := newTestDispatcher()
	d.Execute(cmd("RPUSH", "l", "x"))
	before := len(j.appended)

	reply := d.Execute(cmd("INCR", "l"))
	assert.Equal(t, resp.Error, reply.Type)
	assert.Contains(t, string(reply.Bytes()), "WRONGTYPE")
	assert.Equal(t, before, len(j.appended))
}

func TestExecute_ListAndRangeEndToEnd(t *testing.T) {
	d, _ := newTestDispatcher()
	d.Execute(cmd("LPUSH", "l", "x"))
	d.Execute(cmd("LPUSH", "l", "y"))
	d.Execute(cmd("RPUSH", "l", "z"))

	reply := d.Execute(cmd("LRANGE", "l", "0", "-1"))
	require.Equal(t, resp.Array, reply.Type)
	require.Len(t, reply.Array, 3)
	assert.Equal(t, "y", string(reply.Array[0].Bytes()))
	assert.Equal(t, "x", string(reply.Array[1].Bytes()))
	assert.Equal(t, "z", string(reply.Array[2].Bytes()))
}

func TestExecute_ZAddRangeWithScores(t *testing.T) {
	d, _ := newTestDispatcher()
	d.Execute(cmd("ZADD", "z", "10", "a"))
	d.Execute(cmd("ZADD", "z", "20", "b"))
	d.Execute(cmd("ZADD", "z", "15", "a"))

	reply := d.Execute(cmd("ZRANGE", "z", "0", "-1", "WITHSCORES"))
	require.Equal(t, resp.Array, reply.Type)
	require.Len(t, reply.Array, 4)
	assert.Equal(t, "a", string(reply.Array[0].Bytes()))
	assert.Equal(t, "15", string(reply.Array[1].Bytes()))
	assert.Equal(t, "b", string(reply.Array[2].Bytes()))
}

func TestExecute_PingEcho(t *testing.T) {
	d, _ := newTestDispatcher()
	reply := d.Execute(cmd("PING"))
	assert.Equal(t, "PONG", string(reply.Bytes()))

	reply = d.Execute(cmd("PING", "hello"))
	assert.Equal(t, "hello", string(reply.Bytes()))
}
