package hashtable

import (
	"fmt"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Node
	key   string
	value int
}

func recordEq(a, b *Node) bool {
	ra := (*record)(nil)
	rb := (*record)(nil)
	ra = containerOf(a)
	rb = containerOf(b)
	return ra.key == rb.key
}

// containerOf recovers the enclosing *record from an embedded *Node. Go has
// no offsetof-based container_of; since Node is the record's first field,
// an unsafe-free cast through the embedding works via a type assertion on a
// small wrapper interface instead. Tests exercise the simpler path of
// keeping a side map from *Node to *record.
var nodeOwners = map[*Node]*record{}

func containerOf(n *Node) *record {
	return nodeOwners[n]
}

func newRecord(key string, value int) *record {
	r := &record{key: key, value: value}
	r.Code = xxhash.Sum64String(key)
	nodeOwners[&r.Node] = r
	return r
}

func TestMap_InsertLookupRemove(t *testing.T) {
	m := New()
	a := newRecord("alpha", 1)
	b := newRecord("beta", 2)

	m.Insert(&a.Node)
	m.Insert(&b.Node)
	assert.Equal(t, 2, m.Len())

	key := &Node{Code: xxhash.Sum64String("alpha")}
	found := m.Lookup(key, recordEq)
	require.NotNil(t, found)
	assert.Equal(t, 1, containerOf(found).value)

	removed := m.Remove(key, recordEq)
	require.NotNil(t, removed)
	assert.Equal(t, 1, m.Len())

	assert.Nil(t, m.Lookup(key, recordEq))
}

func TestMap_ProgressiveRehashAcrossGrowth(t *testing.T) {
	m := New()
	const n = 5000

	for i := 0; i < n; i++ {
		r := newRecord(fmt.Sprintf("key-%d", i), i)
		m.Insert(&r.Node)
	}
	assert.Equal(t, n, m.Len())

	for i := 0; i < n; i++ {
		k := fmt.Sprintf("key-%d", i)
		key := &Node{Code: xxhash.Sum64String(k)}
		found := m.Lookup(key, recordEq)
		require.NotNil(t, found, "expected to find %s", k)
		assert.Equal(t, i, containerOf(found).value)
	}
}

func TestMap_ClearResetsState(t *testing.T) {
	m := New()
	r := newRecord("solo", 42)
	m.Insert(&r.Node)
	assert.Equal(t, 1, m.Len())

	m.Clear()
	assert.Equal(t, 0, m.Len())
}

func TestMap_ForEachVisitsEveryEntry(t *testing.T) {
	m := New()
	want := map[string]bool{}
	for i := 0; i < 300; i++ {
		k := fmt.Sprintf("k%d", i)
		want[k] = true
		r := newRecord(k, i)
		m.Insert(&r.Node)
	}

	got := map[string]bool{}
	m.ForEach(func(n *Node) {
		got[containerOf(n).key] = true
	})
	assert.Equal(t, want, got)
}
