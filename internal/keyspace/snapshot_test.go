package keyspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_EmitsOneCommandPerPayload(t *testing.T) {
	k := newTestKeyspace(t)
	k.Set([]byte("str"), []byte("1"), NoExpiry)
	k.RPush([]byte("list"), []byte("a"), []byte("b"))
	_, err := k.SAdd([]byte("set"), []byte("x"), []byte("y"))
	require.NoError(t, err)
	require.NoError(t, k.HMSet([]byte("hash"), [][2][]byte{{[]byte("f"), []byte("v")}}))
	_, err = k.ZAdd([]byte("zset"), []byte("m1"), 1)
	require.NoError(t, err)
	_, err = k.ZAdd([]byte("zset"), []byte("m2"), 2)
	require.NoError(t, err)

	commands := k.Snapshot()

	byName := make(map[string][][][]byte)
	for _, cmd := range commands {
		byName[string(cmd[0])] = append(byName[string(cmd[0])], cmd)
	}

	require.Len(t, byName["SET"], 1)
	assert.Equal(t, "str", string(byName["SET"][0][1]))

	require.Len(t, byName["RPUSH"], 1)
	assert.Equal(t, "list", string(byName["RPUSH"][0][1]))
	assert.Len(t, byName["RPUSH"][0], 4) // RPUSH list a b

	require.Len(t, byName["SADD"], 1)
	assert.Equal(t, "set", string(byName["SADD"][0][1]))

	require.Len(t, byName["HMSET"], 1)
	assert.Equal(t, "hash", string(byName["HMSET"][0][1]))

	// ZADD has fixed arity: one command per member, never batched.
	require.Len(t, byName["ZADD"], 2)
	for _, cmd := range byName["ZADD"] {
		assert.Len(t, cmd, 4)
		assert.Equal(t, "zset", string(cmd[1]))
	}
}

func TestSnapshot_TrailingExpireCommand(t *testing.T) {
	k := newTestKeyspace(t)
	k.Set([]byte("k"), []byte("v"), NoExpiry)
	k.PExpire([]byte("k"), 60_000)

	commands := k.Snapshot()
	require.Len(t, commands, 2)
	assert.Equal(t, "SET", string(commands[0][0]))
	assert.Equal(t, "PEXPIREAT", string(commands[1][0]))
	assert.Equal(t, "k", string(commands[1][1]))
}

func TestSnapshot_SkipsExpiredEntries(t *testing.T) {
	k := newTestKeyspace(t)
	k.Set([]byte("gone"), []byte("v"), NoExpiry)
	k.PExpire([]byte("gone"), -1)

	commands := k.Snapshot()
	for _, cmd := range commands {
		assert.NotEqual(t, "gone", string(cmd[1]))
	}
}
