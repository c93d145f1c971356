package keyspace

import (
	"container/list"
	"strconv"

	"github.com/iamNilotpal/redcask/internal/hashtable"
	"github.com/iamNilotpal/redcask/internal/zset"
)

// snapshotBatchSize bounds how many arguments accumulate in a single
// RPUSH/SADD/HMSET/ZADD rewrite command before it is flushed and a fresh one
// started, so one huge collection doesn't produce one huge command.
const snapshotBatchSize = 1000

// Snapshot walks every live entry and returns the minimal sequence of
// commands that reconstructs the keyspace: one SET/RPUSH/SADD/HMSET/ZADD
// per entry (batched at snapshotBatchSize), followed by a PEXPIREAT for any
// entry carrying a TTL. It implements aof.Snapshotter for BGREWRITEAOF.
func (k *Keyspace) Snapshot() [][][]byte {
	now := nowMillis()
	var out [][][]byte

	k.entries.ForEach(func(n *hashtable.Node) {
		e := entryFromNode(n)
		if e.expired(now) {
			return
		}

		switch e.Type {
		case String:
			out = append(out, [][]byte{[]byte("SET"), e.Key, e.Payload.([]byte)})
		case List:
			out = append(out, snapshotList(e.Key, e.Payload.(*list.List))...)
		case Set:
			out = append(out, snapshotSet(e.Key, e.Payload.(*hashtable.Map))...)
		case Hash:
			out = append(out, snapshotHash(e.Key, e.Payload.(*hashtable.Map))...)
		case ZSet:
			out = append(out, snapshotZSet(e.Key, e.Payload.(*zset.Set))...)
		}

		if e.ExpireAt != NoExpiry {
			out = append(out, [][]byte{
				[]byte("PEXPIREAT"), e.Key, []byte(strconv.FormatInt(e.ExpireAt, 10)),
			})
		}
	})
	return out
}

func snapshotList(key []byte, l *list.List) [][][]byte {
	if l.Len() == 0 {
		return nil
	}

	var out [][][]byte
	args := [][]byte{[]byte("RPUSH"), key}
	for el := l.Front(); el != nil; el = el.Next() {
		args = append(args, el.Value.([]byte))
		if len(args) > snapshotBatchSize {
			out = append(out, args)
			args = [][]byte{[]byte("RPUSH"), key}
		}
	}
	if len(args) > 2 {
		out = append(out, args)
	}
	return out
}

func snapshotSet(key []byte, m *hashtable.Map) [][][]byte {
	if m.Len() == 0 {
		return nil
	}

	var out [][][]byte
	args := [][]byte{[]byte("SADD"), key}
	m.ForEach(func(n *hashtable.Node) {
		args = append(args, memberFromNode(n).Member)
		if len(args) > snapshotBatchSize {
			out = append(out, args)
			args = [][]byte{[]byte("SADD"), key}
		}
	})
	if len(args) > 2 {
		out = append(out, args)
	}
	return out
}

func snapshotHash(key []byte, m *hashtable.Map) [][][]byte {
	if m.Len() == 0 {
		return nil
	}

	var out [][][]byte
	args := [][]byte{[]byte("HMSET"), key}
	m.ForEach(func(n *hashtable.Node) {
		f := fieldFromNode(n)
		args = append(args, f.Field, f.Value)
		if len(args) > snapshotBatchSize {
			out = append(out, args)
			args = [][]byte{[]byte("HMSET"), key}
		}
	})
	if len(args) > 2 {
		out = append(out, args)
	}
	return out
}

// snapshotZSet emits one ZADD per member rather than batching, since ZADD's
// arity is fixed at exactly one key/score/member triple.
func snapshotZSet(key []byte, s *zset.Set) [][][]byte {
	n := s.Len()
	if n == 0 {
		return nil
	}

	out := make([][][]byte, 0, n)
	for _, entry := range s.Range(0, n) {
		out = append(out, [][]byte{
			[]byte("ZADD"), key, []byte(strconv.FormatFloat(entry.Score, 'g', -1, 64)), entry.Member,
		})
	}
	return out
}
