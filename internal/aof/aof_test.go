package aof

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iamNilotpal/redcask/pkg/logger"
	"github.com/iamNilotpal/redcask/pkg/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, fsync options.AppendFsyncPolicy) *Engine {
	t.Helper()
	dir := t.TempDir()
	opts := options.NewDefaultOptions()
	opts.DataDir = dir
	opts.AppendFilename = "redcask.aof"
	opts.AppendFsync = fsync
	opts.AppendFsyncInterval = time.Second
	opts.RewriteBufferOptions.Directory = dir
	opts.RewriteBufferOptions.Prefix = "rewrite"

	e, err := New(&Config{Options: &opts, Logger: logger.NewNop()})
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func TestAppendAndLoad_RoundTrip(t *testing.T) {
	e := newTestEngine(t, options.AppendFsyncAlways)

	require.NoError(t, e.Append([][]byte{[]byte("SET"), []byte("a"), []byte("1")}))
	require.NoError(t, e.Append([][]byte{[]byte("INCR"), []byte("a")}))

	var replayed [][][]byte
	require.NoError(t, e.Load(func(args [][]byte) error {
		replayed = append(replayed, args)
		return nil
	}))

	require.Len(t, replayed, 2)
	assert.Equal(t, "SET", string(replayed[0][0]))
	assert.Equal(t, "a", string(replayed[0][1]))
	assert.Equal(t, "1", string(replayed[0][2]))
	assert.Equal(t, "INCR", string(replayed[1][0]))
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	opts := options.NewDefaultOptions()
	opts.DataDir = dir
	opts.AppendFilename = "missing.aof"
	opts.RewriteBufferOptions.Directory = dir
	e, err := New(&Config{Options: &opts, Logger: logger.NewNop()})
	require.NoError(t, err)
	defer e.Close()

	var called bool
	err = e.Load(func(args [][]byte) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestLoad_StopsOnCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "redcask.aof")

	good := encodeCommand([][]byte{[]byte("SET"), []byte("a"), []byte("1")})
	corrupt := append([]byte(nil), good...)
	corrupt = append(corrupt, []byte("*bad\r\n")...)
	require.NoError(t, os.WriteFile(path, corrupt, 0o644))

	opts := options.NewDefaultOptions()
	opts.DataDir = dir
	opts.AppendFilename = "redcask.aof"
	opts.RewriteBufferOptions.Directory = dir
	e, err := New(&Config{Options: &opts, Logger: logger.NewNop()})
	require.NoError(t, err)
	defer e.Close()

	var replayed int
	err = e.Load(func(args [][]byte) error {
		replayed++
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, 1, replayed)
}

type fakeSnapshotter struct {
	commands [][][]byte
}

func (f *fakeSnapshotter) Snapshot() [][][]byte {
	return f.commands
}

func TestStartRewrite_ProducesReplayableLog(t *testing.T) {
	e := newTestEngine(t, options.AppendFsyncEverysec)
	require.NoError(t, e.Append([][]byte{[]byte("SET"), []byte("old"), []byte("1")}))

	snap := &fakeSnapshotter{commands: [][][]byte{
		{[]byte("SET"), []byte("a"), []byte("1")},
		{[]byte("SADD"), []byte("s"), []byte("x"), []byte("y")},
	}}
	require.NoError(t, e.StartRewrite(snap))

	require.NoError(t, e.Append([][]byte{[]byte("SET"), []byte("b"), []byte("2")}))

	require.Eventually(t, func() bool {
		return e.State() == Idle
	}, time.Second, 5*time.Millisecond)

	var replayed [][][]byte
	require.NoError(t, e.Load(func(args [][]byte) error {
		replayed = append(replayed, args)
		return nil
	}))

	require.Len(t, replayed, 3)
	assert.Equal(t, "a", string(replayed[0][1]))
	assert.Equal(t, "s", string(replayed[1][1]))
	assert.Equal(t, "b", string(replayed[2][1]))
}

func TestStartRewrite_RefusesConcurrent(t *testing.T) {
	e := newTestEngine(t, options.AppendFsyncEverysec)
	snap := &fakeSnapshotter{}
	require.NoError(t, e.StartRewrite(snap))
	err := e.StartRewrite(snap)
	assert.Error(t, err)
}
