package keyspace

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
	"github.com/iamNilotpal/redcask/internal/hashtable"
	"github.com/iamNilotpal/redcask/pkg/errors"
)

func keyEqual(a, b *hashtable.Node) bool {
	return bytes.Equal(entryFromNode(a).Key, entryFromNode(b).Key)
}

func keyLookup(key []byte) *hashtable.Node {
	n := &hashtable.Node{Code: xxhash.Sum64(key)}
	n.Self = &Entry{Key: key}
	return n
}

// lookup returns the live entry for key, applying lazy expiry: an entry
// whose deadline has passed is removed and reported as absent, exactly as
// spec.md §4.6's Expiry family requires of every access.
func (k *Keyspace) lookup(key []byte) *Entry {
	found := entryFromNode(k.entries.Lookup(keyLookup(key), keyEqual))
	if found == nil {
		return nil
	}
	if found.expired(nowMillis()) {
		k.entries.Remove(keyLookup(key), keyEqual)
		return nil
	}
	return found
}

// insert adds or replaces the entry for key with a freshly built one,
// discarding any previous entry's payload. Used by commands (SET, LPUSH on
// an absent key, ...) that unconditionally (re)create the entry.
func (k *Keyspace) insert(key []byte, typ Type, payload any) *Entry {
	k.entries.Remove(keyLookup(key), keyEqual)

	e := &Entry{Key: key, Type: typ, ExpireAt: NoExpiry, Payload: payload}
	e.Code = xxhash.Sum64(key)
	e.Self = e
	k.entries.Insert(&e.Node)
	return e
}

// remove deletes key's entry unconditionally, reporting whether it existed.
func (k *Keyspace) remove(key []byte) bool {
	removed := k.entries.Remove(keyLookup(key), keyEqual)
	return removed != nil
}

// removeIfEmpty deletes e's entry when its payload has become empty,
// matching the "empty collection destroys the entry" rule shared by LIST,
// SET, HASH and ZSET in spec.md §4.6.
func (k *Keyspace) removeIfEmpty(e *Entry, empty bool) {
	if empty {
		k.entries.Remove(keyLookup(e.Key), keyEqual)
	}
}

// requireType returns e itself if e exists and matches want, a
// *errors.TypeError (WRONGTYPE) if it exists with a different type, or nil,
// nil if the key is absent.
func requireType(e *Entry, want Type) (*Entry, error) {
	if e == nil {
		return nil, nil
	}
	if e.Type != want {
		return nil, errors.NewTypeError(string(e.Key), e.Type.String(), want.String())
	}
	return e, nil
}

// Exists reports whether key currently holds a live (non-expired) entry.
func (k *Keyspace) Exists(key []byte) bool {
	return k.lookup(key) != nil
}

// Type returns the type name of key's entry, or "none" if absent.
func (k *Keyspace) Type(key []byte) string {
	e := k.lookup(key)
	if e == nil {
		return "none"
	}
	return e.Type.String()
}

// Del removes key unconditionally, reporting whether it existed and was
// live (an already-expired entry counts as already gone).
func (k *Keyspace) Del(key []byte) bool {
	if k.lookup(key) == nil {
		return false
	}
	return k.remove(key)
}

// Rename moves the entry at src to dst, overwriting any existing dst entry
// (including one of a different type), and reports whether src existed.
func (k *Keyspace) Rename(src, dst []byte) bool {
	e := k.lookup(src)
	if e == nil {
		return false
	}
	k.remove(src)
	k.entries.Remove(keyLookup(dst), keyEqual)

	e.Key = dst
	e.Code = xxhash.Sum64(dst)
	k.entries.Insert(&e.Node)
	return true
}

// FlushAll discards every entry in the keyspace.
func (k *Keyspace) FlushAll() {
	k.entries.Clear()
}

// Keys returns every live key matching a Redis-style glob pattern
// (`*`, `?`, `[abc]`, `[a-z]`, `[^...]`). Expired entries encountered during
// the scan are evicted as a side effect, consistent with lazy expiry.
func (k *Keyspace) Keys(pattern string) [][]byte {
	now := nowMillis()
	var matched [][]byte
	var expiredKeys [][]byte

	k.entries.ForEach(func(n *hashtable.Node) {
		e := entryFromNode(n)
		if e.expired(now) {
			expiredKeys = append(expiredKeys, e.Key)
			return
		}
		if globMatch(pattern, string(e.Key)) {
			matched = append(matched, e.Key)
		}
	})

	for _, key := range expiredKeys {
		k.remove(key)
	}
	return matched
}
