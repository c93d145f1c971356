package zset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_InsertAndScore(t *testing.T) {
	s := New()
	assert.True(t, s.Insert([]byte("alice"), 10))
	assert.True(t, s.Insert([]byte("bob"), 20))
	assert.False(t, s.Insert([]byte("alice"), 15))

	score, ok := s.Score([]byte("alice"))
	require.True(t, ok)
	assert.Equal(t, float64(15), score)

	assert.Equal(t, 2, s.Len())
}

func TestSet_RemoveMissingIsNoop(t *testing.T) {
	s := New()
	s.Insert([]byte("alice"), 1)
	assert.False(t, s.Remove([]byte("ghost")))
	assert.True(t, s.Remove([]byte("alice")))
	assert.Equal(t, 0, s.Len())
}

func TestSet_RankOrdersByScoreThenMember(t *testing.T) {
	s := New()
	s.Insert([]byte("c"), 5)
	s.Insert([]byte("a"), 1)
	s.Insert([]byte("b"), 1)

	rankA, ok := s.Rank([]byte("a"))
	require.True(t, ok)
	rankB, _ := s.Rank([]byte("b"))
	rankC, _ := s.Rank([]byte("c"))

	assert.Equal(t, 0, rankA)
	assert.Equal(t, 1, rankB)
	assert.Equal(t, 2, rankC)
}

func TestSet_RangeByIndex(t *testing.T) {
	s := New()
	members := []string{"a", "b", "c", "d", "e"}
	for i, m := range members {
		s.Insert([]byte(m), float64(i))
	}

	entries := s.Range(1, 2)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", string(entries[0].Member))
	assert.Equal(t, "c", string(entries[1].Member))
}

func TestSet_RangeByScore(t *testing.T) {
	s := New()
	s.Insert([]byte("a"), 1)
	s.Insert([]byte("b"), 2)
	s.Insert([]byte("c"), 3)
	s.Insert([]byte("d"), 4)

	entries := s.RangeByScore(2, 3)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", string(entries[0].Member))
	assert.Equal(t, "c", string(entries[1].Member))
}

func TestSet_SeekGEFindsFirstAtOrAfter(t *testing.T) {
	s := New()
	s.Insert([]byte("a"), 1)
	s.Insert([]byte("b"), 3)
	s.Insert([]byte("c"), 5)

	member, score, ok := s.SeekGE(2, nil)
	require.True(t, ok)
	assert.Equal(t, "b", string(member))
	assert.Equal(t, float64(3), score)

	_, _, ok = s.SeekGE(100, nil)
	assert.False(t, ok)
}
