package keyspace

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
	"github.com/iamNilotpal/redcask/internal/hashtable"
)

// memberNode is one element of a SET payload: a hashtable.Node carrying
// just the member bytes, mirroring zset.Node's Self back-link pattern but
// without a tree side, since SET membership needs no ordering.
type memberNode struct {
	hashtable.Node
	Member []byte
}

func newMemberNode(member []byte) *memberNode {
	n := &memberNode{Member: member}
	n.Code = xxhash.Sum64(member)
	n.Self = n
	return n
}

func memberFromNode(n *hashtable.Node) *memberNode {
	if n == nil {
		return nil
	}
	return n.Self.(*memberNode)
}

func memberLookupKey(member []byte) *hashtable.Node {
	n := &hashtable.Node{Code: xxhash.Sum64(member)}
	n.Self = &memberNode{Member: member}
	return n
}

func memberEqual(a, b *hashtable.Node) bool {
	return bytes.Equal(memberFromNode(a).Member, memberFromNode(b).Member)
}

// SAdd adds each of members to key's SET, creating it if absent, and
// returns the number newly added (members already present don't count).
func (k *Keyspace) SAdd(key []byte, members ...[]byte) (int, error) {
	e, err := requireType(k.lookup(key), Set)
	if err != nil {
		return 0, err
	}
	if e == nil {
		e = k.insert(key, Set, hashtable.New())
	}

	m := e.Payload.(*hashtable.Map)
	added := 0
	for _, member := range members {
		if m.Lookup(memberLookupKey(member), memberEqual) != nil {
			continue
		}
		m.Insert(&newMemberNode(member).Node)
		added++
	}
	return added, nil
}

// SRem removes each of members from key's SET and returns the number
// actually removed. Removing the last member destroys the entry.
func (k *Keyspace) SRem(key []byte, members ...[]byte) (int, error) {
	e, err := requireType(k.lookup(key), Set)
	if err != nil || e == nil {
		return 0, err
	}

	m := e.Payload.(*hashtable.Map)
	removed := 0
	for _, member := range members {
		if m.Remove(memberLookupKey(member), memberEqual) != nil {
			removed++
		}
	}
	k.removeIfEmpty(e, m.Len() == 0)
	return removed, nil
}

// SIsMember reports whether member belongs to key's SET.
func (k *Keyspace) SIsMember(key, member []byte) (bool, error) {
	e, err := requireType(k.lookup(key), Set)
	if err != nil || e == nil {
		return false, err
	}
	return e.Payload.(*hashtable.Map).Lookup(memberLookupKey(member), memberEqual) != nil, nil
}

// SMembers returns every member of key's SET, in no particular order.
func (k *Keyspace) SMembers(key []byte) ([][]byte, error) {
	e, err := requireType(k.lookup(key), Set)
	if err != nil || e == nil {
		return nil, err
	}

	var out [][]byte
	e.Payload.(*hashtable.Map).ForEach(func(n *hashtable.Node) {
		out = append(out, memberFromNode(n).Member)
	})
	return out, nil
}

// SCard returns the number of members in key's SET, or 0 if absent.
func (k *Keyspace) SCard(key []byte) (int, error) {
	e, err := requireType(k.lookup(key), Set)
	if err != nil || e == nil {
		return 0, err
	}
	return e.Payload.(*hashtable.Map).Len(), nil
}
