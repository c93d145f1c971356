package avltree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Node
	value int
}

func less(a, b *Node) bool {
	ra := nodeRecord(a)
	rb := nodeRecord(b)
	return ra.value < rb.value
}

var owners = map[*Node]*record{}

func nodeRecord(n *Node) *record {
	return owners[n]
}

func newRecord(v int) *record {
	r := &record{value: v}
	owners[&r.Node] = r
	return r
}

func inorder(root *Node) []int {
	var out []int
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, nodeRecord(n).value)
		walk(n.right)
	}
	walk(root)
	return out
}

func TestInsert_MaintainsSortedOrder(t *testing.T) {
	var root *Node
	values := []int{5, 2, 8, 1, 4, 7, 9, 0, 3, 6}
	for _, v := range values {
		r := newRecord(v)
		Insert(&root, &r.Node, less)
	}

	want := append([]int(nil), values...)
	sort.Ints(want)
	assert.Equal(t, want, inorder(root))
	assert.Equal(t, int32(len(values)), Count(root))
}

func TestInsert_StaysBalanced(t *testing.T) {
	var root *Node
	const n = 2000
	for i := 0; i < n; i++ {
		r := newRecord(i)
		Insert(&root, &r.Node, less)
	}

	h := int(height(root))
	// A balanced AVL tree over n nodes has height bounded by roughly
	// 1.44*log2(n); well under a linear bound either way.
	maxExpected := 2 * intLog2(n+1)
	assert.LessOrEqual(t, h, maxExpected)
}

func intLog2(n int) int {
	l := 0
	for n > 1 {
		n >>= 1
		l++
	}
	return l
}

func TestRank_MatchesSortedPosition(t *testing.T) {
	var root *Node
	values := []int{50, 20, 80, 10, 40, 70, 90}
	nodes := map[int]*Node{}
	for _, v := range values {
		r := newRecord(v)
		Insert(&root, &r.Node, less)
		nodes[v] = &r.Node
	}

	sorted := append([]int(nil), values...)
	sort.Ints(sorted)

	for i, v := range sorted {
		assert.Equal(t, i, Rank(nodes[v]), "value %d", v)
	}
}

func TestOffsetBy_WalksSortedOrder(t *testing.T) {
	var root *Node
	nodes := make([]*Node, 0, 100)
	for i := 0; i < 100; i++ {
		r := newRecord(rand.Intn(1_000_000))
		Insert(&root, &r.Node, less)
		nodes = append(nodes, &r.Node)
	}

	sorted := inorder(root)
	start := Min(root)
	for i, want := range sorted {
		n := OffsetBy(start, i)
		require.NotNil(t, n)
		assert.Equal(t, want, nodeRecord(n).value)
	}
}

func TestDelete_RemovesNodeKeepsRest(t *testing.T) {
	var root *Node
	values := []int{5, 2, 8, 1, 4, 7, 9}
	nodes := map[int]*Node{}
	for _, v := range values {
		r := newRecord(v)
		Insert(&root, &r.Node, less)
		nodes[v] = &r.Node
	}

	root = Delete(nodes[2])
	remaining := inorder(root)
	want := []int{1, 4, 5, 7, 8, 9}
	assert.Equal(t, want, remaining)
	assert.Equal(t, int32(len(want)), Count(root))
}

func TestSuccessorPredecessor(t *testing.T) {
	var root *Node
	values := []int{5, 2, 8, 1, 4, 7, 9}
	nodes := map[int]*Node{}
	for _, v := range values {
		r := newRecord(v)
		Insert(&root, &r.Node, less)
		nodes[v] = &r.Node
	}

	succ := Successor(nodes[5])
	require.NotNil(t, succ)
	assert.Equal(t, 7, nodeRecord(succ).value)

	pred := Predecessor(nodes[5])
	require.NotNil(t, pred)
	assert.Equal(t, 4, nodeRecord(pred).value)

	assert.Nil(t, Successor(nodes[9]))
	assert.Nil(t, Predecessor(nodes[1]))
}
