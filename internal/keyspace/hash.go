package keyspace

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
	"github.com/iamNilotpal/redcask/internal/hashtable"
)

// fieldNode is one field/value pair of a HASH payload.
type fieldNode struct {
	hashtable.Node
	Field []byte
	Value []byte
}

func newFieldNode(field, value []byte) *fieldNode {
	n := &fieldNode{Field: field, Value: value}
	n.Code = xxhash.Sum64(field)
	n.Self = n
	return n
}

func fieldFromNode(n *hashtable.Node) *fieldNode {
	if n == nil {
		return nil
	}
	return n.Self.(*fieldNode)
}

func fieldLookupKey(field []byte) *hashtable.Node {
	n := &hashtable.Node{Code: xxhash.Sum64(field)}
	n.Self = &fieldNode{Field: field}
	return n
}

func fieldEqual(a, b *hashtable.Node) bool {
	return bytes.Equal(fieldFromNode(a).Field, fieldFromNode(b).Field)
}

// HSet sets field to value in key's HASH, creating the hash if absent, and
// reports whether field was newly created (true) versus updated (false).
func (k *Keyspace) HSet(key, field, value []byte) (bool, error) {
	e, err := requireType(k.lookup(key), Hash)
	if err != nil {
		return false, err
	}
	if e == nil {
		e = k.insert(key, Hash, hashtable.New())
	}

	m := e.Payload.(*hashtable.Map)
	if existing := fieldFromNode(m.Lookup(fieldLookupKey(field), fieldEqual)); existing != nil {
		existing.Value = value
		return false, nil
	}
	m.Insert(&newFieldNode(field, value).Node)
	return true, nil
}

// HMSet sets multiple field/value pairs in key's HASH in one call,
// creating the hash if absent.
func (k *Keyspace) HMSet(key []byte, pairs [][2][]byte) error {
	for _, pair := range pairs {
		if _, err := k.HSet(key, pair[0], pair[1]); err != nil {
			return err
		}
	}
	return nil
}

// HGet returns field's value from key's HASH and whether it was present.
func (k *Keyspace) HGet(key, field []byte) ([]byte, bool, error) {
	e, err := requireType(k.lookup(key), Hash)
	if err != nil || e == nil {
		return nil, false, err
	}
	found := fieldFromNode(e.Payload.(*hashtable.Map).Lookup(fieldLookupKey(field), fieldEqual))
	if found == nil {
		return nil, false, nil
	}
	return found.Value, true, nil
}

// HMGet returns the value (or nil for a missing field) for each requested
// field of key's HASH, preserving the caller's field order.
func (k *Keyspace) HMGet(key []byte, fields [][]byte) ([][]byte, error) {
	out := make([][]byte, len(fields))
	for i, field := range fields {
		v, ok, err := k.HGet(key, field)
		if err != nil {
			return nil, err
		}
		if ok {
			out[i] = v
		}
	}
	return out, nil
}

// HDel removes each of fields from key's HASH and returns the number
// actually removed. Removing the last field destroys the entry.
func (k *Keyspace) HDel(key []byte, fields ...[]byte) (int, error) {
	e, err := requireType(k.lookup(key), Hash)
	if err != nil || e == nil {
		return 0, err
	}

	m := e.Payload.(*hashtable.Map)
	removed := 0
	for _, field := range fields {
		if m.Remove(fieldLookupKey(field), fieldEqual) != nil {
			removed++
		}
	}
	k.removeIfEmpty(e, m.Len() == 0)
	return removed, nil
}

// HGetAll returns every field and value of key's HASH as [field, value]
// pairs.
func (k *Keyspace) HGetAll(key []byte) ([][2][]byte, error) {
	e, err := requireType(k.lookup(key), Hash)
	if err != nil || e == nil {
		return nil, err
	}

	var out [][2][]byte
	e.Payload.(*hashtable.Map).ForEach(func(n *hashtable.Node) {
		f := fieldFromNode(n)
		out = append(out, [2][]byte{f.Field, f.Value})
	})
	return out, nil
}

// HLen returns the number of fields in key's HASH, or 0 if absent.
func (k *Keyspace) HLen(key []byte) (int, error) {
	e, err := requireType(k.lookup(key), Hash)
	if err != nil || e == nil {
		return 0, err
	}
	return e.Payload.(*hashtable.Map).Len(), nil
}
