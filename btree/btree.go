package btree

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/qntx/kvtree/cmp"
	"github.com/qntx/kvtree/container"
)

// defaultOrder is substituted whenever a caller asks for an order that
// cannot produce a valid tree (order <= 1, since a minimum degree of 1
// would allow nodes with zero keys).
const defaultOrder = 8

// Entry is a single key-value pair, returned by Items and accepted by
// UpdateItems.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Tree is an in-memory ordered key-value container backed by a B-tree of
// the given minimum degree (order). Lookup, insert, delete, and the
// endpoints of a range all complete in O(log n) node visits, and the tree
// stays height-balanced after every mutation.
//
// The zero value is not usable; construct a Tree with New or NewWith.
type Tree[K comparable, V any] struct {
	root  *node[K, V]
	size  int
	order int
	cmp   cmp.Comparator[K]
}

var _ container.OrderedMap[int, int] = (*Tree[int, int])(nil)

// New constructs an empty tree of the given minimum degree, ordering keys
// by their natural Go ordering. An order of 1 or less is silently replaced
// by the default minimum degree (8).
func New[K cmp.Ordered, V any](order int) *Tree[K, V] {
	return NewWith[K, V](order, cmp.FromOrdered[K]())
}

// NewWith constructs an empty tree of the given minimum degree, ordering
// keys with comparator. An order of 1 or less is silently replaced by the
// default minimum degree (8).
func NewWith[K comparable, V any](order int, comparator cmp.Comparator[K]) *Tree[K, V] {
	if order <= 1 {
		order = defaultOrder
	}

	return &Tree[K, V]{
		root:  newLeaf[K, V](order),
		order: order,
		cmp:   comparator,
	}
}

// Order returns the tree's minimum degree.
func (t *Tree[K, V]) Order() int { return t.order }

// Size returns the number of key-value pairs stored in the tree.
func (t *Tree[K, V]) Size() int { return t.size }

// Len is an alias for Size, matching common Go container conventions.
func (t *Tree[K, V]) Len() int { return t.size }

// Empty reports whether the tree holds no key-value pairs.
func (t *Tree[K, V]) Empty() bool { return t.size == 0 }

// IsEmpty is an alias for Empty.
func (t *Tree[K, V]) IsEmpty() bool { return t.size == 0 }

// Height returns the number of node levels in the tree. An empty tree, a
// single leaf root, has height 1.
func (t *Tree[K, V]) Height() int {
	height := 1

	for n := t.root; !n.leaf; n = n.children[0] {
		height++
	}

	return height
}

// Clear discards every node and installs a fresh empty leaf root, keeping
// the tree's order and comparator.
func (t *Tree[K, V]) Clear() {
	t.root = newLeaf[K, V](t.order)
	t.size = 0
}

// Clone builds a new tree of the same order and comparator by inserting the
// source's entries, in order, through the same proactive-split path any
// other caller would exercise. The result is an independently structured
// tree, not a tree sharing subtree graphs with the source.
func (t *Tree[K, V]) Clone() *Tree[K, V] {
	dst := NewWith[K, V](t.order, t.cmp)

	it := t.Iterator()
	for it.Next() {
		_ = dst.Insert(it.Key(), it.Value())
	}

	return dst
}

// Walk visits every live key and value reachable from the tree, in the
// shape a tracing host garbage collector uses to mark reachable
// references when this tree is embedded in a managed runtime.
func (t *Tree[K, V]) Walk(visitKey func(K), visitValue func(V)) {
	var walk func(n *node[K, V])

	walk = func(n *node[K, V]) {
		for i := range n.keys {
			if visitKey != nil {
				visitKey(n.keys[i])
			}

			if visitValue != nil {
				visitValue(n.values[i])
			}
		}

		for _, c := range n.children {
			walk(c)
		}
	}

	walk(t.root)
}

// String returns a short summary of the tree, suitable for logging.
func (t *Tree[K, V]) String() string {
	return fmt.Sprintf("BTree[order=%d, size=%d]", t.order, t.size)
}

// Dump renders the full key layout of the tree for debugging, one key per
// line indented by depth.
func (t *Tree[K, V]) Dump() string {
	var buf bytes.Buffer

	if t.size > 0 {
		t.dump(&buf, t.root, 0)
	}

	return buf.String()
}

func (t *Tree[K, V]) dump(buf *bytes.Buffer, n *node[K, V], depth int) {
	for i := 0; i <= len(n.keys); i++ {
		if !n.leaf && i < len(n.children) {
			t.dump(buf, n.children[i], depth+1)
		}

		if i < len(n.keys) {
			buf.WriteString(strings.Repeat("    ", depth))
			fmt.Fprintf(buf, "%v\n", n.keys[i])
		}
	}
}
