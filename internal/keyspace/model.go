// Package keyspace implements the typed entry store: the STRING/LIST/SET/
// HASH/ZSET payload variants, lazy TTL expiry, and the command families that
// operate on them. It is built directly on internal/hashtable for both the
// top-level key lookup and the SET/HASH payload indices, and on internal/zset
// for ZSET payloads — one lookup structure, three call sites, the same way
// the teacher's index.Index is the one structure the storage layer shares.
package keyspace

import (
	"sync/atomic"
	"time"

	"github.com/iamNilotpal/redcask/internal/hashtable"
	"go.uber.org/zap"
)

// Type tags an Entry's payload.
type Type int

const (
	String Type = iota
	List
	Set
	Hash
	ZSet
)

// String implements fmt.Stringer for the RESP TYPE command's reply.
func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case List:
		return "list"
	case Set:
		return "set"
	case Hash:
		return "hash"
	case ZSet:
		return "zset"
	default:
		return "none"
	}
}

// NoExpiry is the ExpireAt sentinel meaning the entry never expires.
const NoExpiry int64 = -1

// Entry is one keyspace record: a key, its type, its payload, and an
// absolute millisecond expiry deadline. It embeds hashtable.Node so the
// keyspace's top-level map can index it directly, and carries a Self
// back-link so Lookup/Remove results recover the *Entry (see hashtable's
// Node.Self doc).
type Entry struct {
	hashtable.Node
	Key      []byte
	Type     Type
	ExpireAt int64
	Payload  any
}

func entryFromNode(n *hashtable.Node) *Entry {
	if n == nil {
		return nil
	}
	return n.Self.(*Entry)
}

// expired reports whether the entry's deadline has passed as of now (ms
// since epoch).
func (e *Entry) expired(nowMs int64) bool {
	return e.ExpireAt != NoExpiry && e.ExpireAt <= nowMs
}

// Config holds the dependencies required to construct a Keyspace.
type Config struct {
	Logger *zap.SugaredLogger
}

// Keyspace is the mapping from key to Entry, backed by the progressive-
// rehash hash map. It is driven exclusively from the single dispatcher
// goroutine, so unlike index.Index it carries no mutex: the concurrency
// model (spec.md §5) gives the keyspace no concurrent callers to guard
// against.
type Keyspace struct {
	log     *zap.SugaredLogger
	entries *hashtable.Map
	closed  atomic.Bool
}

// New constructs an empty Keyspace.
func New(config *Config) *Keyspace {
	return &Keyspace{log: config.Logger, entries: hashtable.New()}
}

// Close drops every entry; a second Close is a no-op. The other methods do
// not check whether the Keyspace has been closed.
func (k *Keyspace) Close() {
	if !k.closed.CompareAndSwap(false, true) {
		return
	}
	k.entries.Clear()
	k.log.Infow("keyspace closed")
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
