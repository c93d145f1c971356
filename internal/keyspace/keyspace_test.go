package keyspace

import (
	"testing"
	"time"

	"github.com/iamNilotpal/redcask/pkg/errors"
	"github.com/iamNilotpal/redcask/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeyspace(t *testing.T) *Keyspace {
	t.Helper()
	return New(&Config{Logger: logger.NewNop()})
}

func TestString_SetGetIncr(t *testing.T) {
	k := newTestKeyspace(t)
	k.Set([]byte("a"), []byte("1"), NoExpiry)

	n, err := k.IncrBy([]byte("a"), 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = k.IncrBy([]byte("a"), 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	v, ok, err := k.Get([]byte("a"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "3", string(v))
}

func TestString_WrongType(t *testing.T) {
	k := newTestKeyspace(t)
	k.RPush([]byte("l"), []byte("x"))

	_, _, err := k.Get([]byte("l"))
	require.Error(t, err)
	assert.True(t, errors.IsTypeError(err))
}

func TestList_PushRange(t *testing.T) {
	k := newTestKeyspace(t)
	k.LPush([]byte("l"), []byte("x"))
	k.LPush([]byte("l"), []byte("y"))
	n, err := k.RPush([]byte("l"), []byte("z"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	items, err := k.LRange([]byte("l"), 0, -1)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "y", string(items[0]))
	assert.Equal(t, "x", string(items[1]))
	assert.Equal(t, "z", string(items[2]))
}

func TestList_PopDestroysEmptyEntry(t *testing.T) {
	k := newTestKeyspace(t)
	k.RPush([]byte("l"), []byte("only"))
	v, ok, err := k.RPop([]byte("l"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "only", string(v))
	assert.False(t, k.Exists([]byte("l")))
}

func TestZSet_AddScoreRankRange(t *testing.T) {
	k := newTestKeyspace(t)
	k.ZAdd([]byte("z"), []byte("a"), 10)
	k.ZAdd([]byte("z"), []byte("b"), 20)
	k.ZAdd([]byte("z"), []byte("a"), 15)

	score, ok, err := k.ZScore([]byte("z"), []byte("a"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, float64(15), score)

	rank, ok, err := k.ZRank([]byte("z"), []byte("b"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, rank)

	entries, err := k.ZRange([]byte("z"), 0, -1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", string(entries[0].Member))
	assert.Equal(t, "b", string(entries[1].Member))
}

func TestHash_SetGetDel(t *testing.T) {
	k := newTestKeyspace(t)
	created, err := k.HSet([]byte("h"), []byte("f1"), []byte("v1"))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = k.HSet([]byte("h"), []byte("f1"), []byte("v1'"))
	require.NoError(t, err)
	assert.False(t, created)

	length, err := k.HLen([]byte("h"))
	require.NoError(t, err)
	assert.Equal(t, 1, length)

	v, ok, err := k.HGet([]byte("h"), []byte("f1"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v1'", string(v))
}

func TestSet_AddRemCard(t *testing.T) {
	k := newTestKeyspace(t)
	added, err := k.SAdd([]byte("s"), []byte("a"), []byte("b"), []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	card, err := k.SCard([]byte("s"))
	require.NoError(t, err)
	assert.Equal(t, 2, card)

	removed, err := k.SRem([]byte("s"), []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func TestExpiry_LazyRemoval(t *testing.T) {
	k := newTestKeyspace(t)
	k.Set([]byte("t"), []byte("data"), 20)
	v, ok, err := k.Get([]byte("t"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "data", string(v))

	time.Sleep(40 * time.Millisecond)

	_, ok, err = k.Get([]byte("t"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(-2), k.PTTL([]byte("t")))
}

func TestKeys_GlobMatch(t *testing.T) {
	k := newTestKeyspace(t)
	k.Set([]byte("foo"), []byte("1"), NoExpiry)
	k.Set([]byte("foobar"), []byte("1"), NoExpiry)
	k.Set([]byte("baz"), []byte("1"), NoExpiry)

	matched := k.Keys("foo*")
	assert.Len(t, matched, 2)
}

func TestRename_OverwritesDestination(t *testing.T) {
	k := newTestKeyspace(t)
	k.Set([]byte("src"), []byte("v"), NoExpiry)
	k.Set([]byte("dst"), []byte("old"), NoExpiry)

	ok := k.Rename([]byte("src"), []byte("dst"))
	assert.True(t, ok)
	assert.False(t, k.Exists([]byte("src")))

	v, ok, err := k.Get([]byte("dst"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", string(v))
}
