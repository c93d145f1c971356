package keyspace

import "github.com/iamNilotpal/redcask/internal/zset"

// ZAdd sets member's score in key's ZSET, creating it if absent, and
// reports whether member was newly added (true) versus updated (false).
func (k *Keyspace) ZAdd(key, member []byte, score float64) (bool, error) {
	e, err := requireType(k.lookup(key), ZSet)
	if err != nil {
		return false, err
	}
	if e == nil {
		e = k.insert(key, ZSet, zset.New())
	}
	return e.Payload.(*zset.Set).Insert(member, score), nil
}

// ZRem removes member from key's ZSET, reporting whether it was present.
// Removing the last member destroys the entry.
func (k *Keyspace) ZRem(key, member []byte) (bool, error) {
	e, err := requireType(k.lookup(key), ZSet)
	if err != nil || e == nil {
		return false, err
	}

	s := e.Payload.(*zset.Set)
	removed := s.Remove(member)
	k.removeIfEmpty(e, s.Len() == 0)
	return removed, nil
}

// ZScore returns member's score in key's ZSET and whether it is present.
func (k *Keyspace) ZScore(key, member []byte) (float64, bool, error) {
	e, err := requireType(k.lookup(key), ZSet)
	if err != nil || e == nil {
		return 0, false, err
	}
	score, ok := e.Payload.(*zset.Set).Score(member)
	return score, ok, nil
}

// ZRank returns member's 0-based rank in key's ZSET and whether it is
// present.
func (k *Keyspace) ZRank(key, member []byte) (int, bool, error) {
	e, err := requireType(k.lookup(key), ZSet)
	if err != nil || e == nil {
		return 0, false, err
	}
	rank, ok := e.Payload.(*zset.Set).Rank(member)
	return rank, ok, nil
}

// ZCard returns the number of members in key's ZSET, or 0 if absent.
func (k *Keyspace) ZCard(key []byte) (int, error) {
	e, err := requireType(k.lookup(key), ZSet)
	if err != nil || e == nil {
		return 0, err
	}
	return e.Payload.(*zset.Set).Len(), nil
}

// ZRange returns the members of key's ZSET between the 0-based ranks start
// and stop inclusive, using the same negative/clamping index semantics as
// LRange.
func (k *Keyspace) ZRange(key []byte, start, stop int) ([]zset.RangeEntry, error) {
	e, err := requireType(k.lookup(key), ZSet)
	if err != nil || e == nil {
		return nil, err
	}

	s := e.Payload.(*zset.Set)
	n := s.Len()
	start = clampIndex(start, n)
	stop = clampIndex(stop, n)
	if start > stop || start >= n || n == 0 {
		return nil, nil
	}
	return s.Range(start, stop-start+1), nil
}

// ZRangeByScore returns every member of key's ZSET with minScore <= score
// <= maxScore, in ascending order.
func (k *Keyspace) ZRangeByScore(key []byte, minScore, maxScore float64) ([]zset.RangeEntry, error) {
	e, err := requireType(k.lookup(key), ZSet)
	if err != nil || e == nil {
		return nil, err
	}
	return e.Payload.(*zset.Set).RangeByScore(minScore, maxScore), nil
}
