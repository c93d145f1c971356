// Package zset implements the sorted-set composite structure backing the
// ZADD/ZSCORE/ZRANK/ZRANGE command family: an order-statistic AVL tree
// ordered by (score, member) for rank and range queries, and a hash map
// keyed by member for O(1) ZSCORE lookups, both sharing the same Node per
// member so there is exactly one allocation per set entry.
package zset

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
	"github.com/iamNilotpal/redcask/internal/avltree"
	"github.com/iamNilotpal/redcask/internal/hashtable"
)

// Node is one member of a sorted set. It embeds both an avltree.Node and a
// hashtable.Node so a single allocation participates in both indexes.
type Node struct {
	tree   avltree.Node
	hash   hashtable.Node
	Score  float64
	Member []byte
}

func newNode(member []byte, score float64) *Node {
	n := &Node{Score: score, Member: member}
	n.hash.Code = xxhash.Sum64(member)
	n.tree.Self = n
	n.hash.Self = n
	return n
}

func fromTree(n *avltree.Node) *Node {
	if n == nil {
		return nil
	}
	return n.Self.(*Node)
}

func fromHash(n *hashtable.Node) *Node {
	if n == nil {
		return nil
	}
	return n.Self.(*Node)
}

// less orders two zset Nodes by (score, member), matching the original's
// ZNode::less tie-break on the raw member bytes.
func less(a, b *avltree.Node) bool {
	na, nb := fromTree(a), fromTree(b)
	if na.Score != nb.Score {
		return na.Score < nb.Score
	}
	return bytes.Compare(na.Member, nb.Member) < 0
}

func memberEqual(a, b *hashtable.Node) bool {
	return bytes.Equal(fromHash(a).Member, fromHash(b).Member)
}

// Set is one sorted set: an order-statistic tree keyed by (score, member)
// plus a hash index keyed by member for O(1) score lookups.
type Set struct {
	root     *avltree.Node
	byMember *hashtable.Map
}

// New returns an empty sorted set.
func New() *Set {
	return &Set{byMember: hashtable.New()}
}

// Len returns the number of members in the set.
func (s *Set) Len() int {
	return s.byMember.Len()
}

func (s *Set) lookupNode(member []byte) *Node {
	key := &hashtable.Node{Code: xxhash.Sum64(member)}
	self := &Node{Member: member}
	key.Self = self
	found := s.byMember.Lookup(key, memberEqual)
	return fromHash(found)
}

// Score returns the member's score and whether it is present.
func (s *Set) Score(member []byte) (float64, bool) {
	n := s.lookupNode(member)
	if n == nil {
		return 0, false
	}
	return n.Score, true
}

// Insert adds member with score if absent, or updates its score if already
// present. It reports whether a new member was added (true) versus an
// existing one updated (false), matching ZADD's return-value contract.
func (s *Set) Insert(member []byte, score float64) bool {
	if existing := s.lookupNode(member); existing != nil {
		if existing.Score != score {
			s.root = avltree.Delete(&existing.tree)
			existing.Score = score
			avltree.Insert(&s.root, &existing.tree, less)
		}
		return false
	}

	node := newNode(member, score)
	s.byMember.Insert(&node.hash)
	avltree.Insert(&s.root, &node.tree, less)
	return true
}

// Remove deletes member from the set, reporting whether it was present.
func (s *Set) Remove(member []byte) bool {
	n := s.lookupNode(member)
	if n == nil {
		return false
	}

	key := &hashtable.Node{Code: n.hash.Code}
	key.Self = &Node{Member: member}
	s.byMember.Remove(key, memberEqual)
	s.root = avltree.Delete(&n.tree)
	return true
}

// Rank returns member's 0-based position in ascending (score, member) order
// and whether it is present.
func (s *Set) Rank(member []byte) (int, bool) {
	n := s.lookupNode(member)
	if n == nil {
		return 0, false
	}
	return avltree.Rank(&n.tree), true
}

// SeekGE returns the first member whose (score, member) is >= the given
// pair, or nil if none qualifies. Used as the entry point for ZRANGEBYSCORE.
func (s *Set) SeekGE(score float64, member []byte) (resultMember []byte, resultScore float64, ok bool) {
	seek := &Node{Score: score, Member: member}
	seek.tree.Self = seek

	found := avltree.LowerBound(s.root, less, &seek.tree)
	if found == nil {
		return nil, 0, false
	}
	n := fromTree(found)
	return n.Member, n.Score, true
}

// RangeEntry is one (member, score) pair returned from a range query.
type RangeEntry struct {
	Member []byte
	Score  float64
}

// Range returns up to count entries in ascending order, starting at the
// 0-based rank `start` (negative values count from the end, Redis-style,
// after resolution by the caller in internal/keyspace).
func (s *Set) Range(start, count int) []RangeEntry {
	if count <= 0 || s.Len() == 0 {
		return nil
	}
	first := avltree.OffsetBy(avltree.Min(s.root), start)
	if first == nil {
		return nil
	}

	out := make([]RangeEntry, 0, count)
	cur := first
	for i := 0; i < count && cur != nil; i++ {
		n := fromTree(cur)
		out = append(out, RangeEntry{Member: n.Member, Score: n.Score})
		cur = avltree.Successor(cur)
	}
	return out
}

// RangeByScore returns every member with minScore <= score <= maxScore, in
// ascending order.
func (s *Set) RangeByScore(minScore, maxScore float64) []RangeEntry {
	var out []RangeEntry
	member, score, ok := s.SeekGE(minScore, nil)
	if !ok {
		return nil
	}

	cur := s.nodeAt(member, score)
	for cur != nil {
		n := fromTree(cur)
		if n.Score > maxScore {
			break
		}
		out = append(out, RangeEntry{Member: n.Member, Score: n.Score})
		cur = avltree.Successor(cur)
	}
	return out
}

func (s *Set) nodeAt(member []byte, score float64) *avltree.Node {
	n := s.lookupNode(member)
	if n == nil || n.Score != score {
		return nil
	}
	return &n.tree
}
