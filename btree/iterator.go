package btree

import (
	"iter"

	"github.com/qntx/kvtree/cmp"
)

// frame is one level of an iterator's descent stack: a node together with
// the index of the next key within it still to be considered.
type frame[K comparable, V any] struct {
	node *node[K, V]
	i    int
}

func pushLeftmost[K comparable, V any](stack []frame[K, V], n *node[K, V]) []frame[K, V] {
	for {
		stack = append(stack, frame[K, V]{node: n})
		if n.leaf {
			return stack
		}

		n = n.children[0]
	}
}

func pushRightmost[K comparable, V any](stack []frame[K, V], n *node[K, V]) []frame[K, V] {
	for {
		stack = append(stack, frame[K, V]{node: n, i: len(n.keys) - 1})
		if n.leaf {
			return stack
		}

		n = n.children[len(n.children)-1]
	}
}

// Iterator performs a forward, in-order walk of a tree's key-value pairs
// using an explicit descent stack, bounded by the tree's height, rather
// than recursion.
//
// An Iterator is a weak, read-only observer of the tree it was created
// from: mutating the tree while an iterator is alive leaves further use of
// that iterator undefined.
type Iterator[K comparable, V any] struct {
	stack []frame[K, V]
	key   K
	value V
	rem   int
}

// Iterator returns a forward iterator positioned before the first entry.
func (t *Tree[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{stack: pushLeftmost[K, V](nil, t.root), rem: t.size}
}

// Next advances to the next entry, returning false once the traversal is
// exhausted. Key and Value are only valid after Next returns true.
func (it *Iterator[K, V]) Next() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.i == len(top.node.keys) {
			it.stack = it.stack[:len(it.stack)-1]

			continue
		}

		idx := top.i
		it.key, it.value = top.node.keys[idx], top.node.values[idx]
		top.i++

		if !top.node.leaf {
			it.stack = pushLeftmost(it.stack, top.node.children[idx+1])
		}

		if it.rem > 0 {
			it.rem--
		}

		return true
	}

	return false
}

// Key returns the key of the current entry.
func (it *Iterator[K, V]) Key() K { return it.key }

// Value returns the value of the current entry.
func (it *Iterator[K, V]) Value() V { return it.value }

// Len returns a best-effort hint of the number of entries left to yield. It
// is accurate only if the source tree has not been mutated since the
// iterator was created.
func (it *Iterator[K, V]) Len() int { return it.rem }

// ReverseIterator performs a backward, in-order walk, the mirror image of
// Iterator.
type ReverseIterator[K comparable, V any] struct {
	stack []frame[K, V]
	key   K
	value V
	rem   int
}

// ReverseIterator returns a reverse iterator positioned after the last entry.
func (t *Tree[K, V]) ReverseIterator() *ReverseIterator[K, V] {
	return &ReverseIterator[K, V]{stack: pushRightmost[K, V](nil, t.root), rem: t.size}
}

// Next advances to the previous entry in key order, returning false once
// the traversal is exhausted.
func (it *ReverseIterator[K, V]) Next() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.i < 0 {
			it.stack = it.stack[:len(it.stack)-1]

			continue
		}

		idx := top.i
		it.key, it.value = top.node.keys[idx], top.node.values[idx]
		top.i--

		if !top.node.leaf {
			it.stack = pushRightmost(it.stack, top.node.children[idx])
		}

		if it.rem > 0 {
			it.rem--
		}

		return true
	}

	return false
}

// Key returns the key of the current entry.
func (it *ReverseIterator[K, V]) Key() K { return it.key }

// Value returns the value of the current entry.
func (it *ReverseIterator[K, V]) Value() V { return it.value }

// Len returns a best-effort hint of the number of entries left to yield.
func (it *ReverseIterator[K, V]) Len() int { return it.rem }

// Bounds describes a key range: [Lo, Hi) by default, with either endpoint
// left unbounded by passing nil, and inclusivity of each endpoint
// overridable independently.
type Bounds[K comparable] struct {
	Lo, Hi      *K
	LoInclusive bool
	HiInclusive bool
}

// From builds the half-open range [lo, hi), the default used when callers
// don't need to control inclusivity explicitly. A nil endpoint leaves that
// side unbounded.
func From[K comparable](lo, hi *K) Bounds[K] {
	return Bounds[K]{Lo: lo, Hi: hi, LoInclusive: true, HiInclusive: false}
}

// RangeIterator performs a forward, in-order walk restricted to a key
// range, seeking directly to the lower bound instead of walking from the
// beginning of the tree.
type RangeIterator[K comparable, V any] struct {
	stack       []frame[K, V]
	cmp         cmp.Comparator[K]
	hi          *K
	hiInclusive bool
	key         K
	value       V
	done        bool
	err         error
}

// Range returns an iterator over bounds. A range with lo > hi, or with
// lo == hi and neither bound inclusive, yields nothing and does not fail by
// itself; a failing comparator surfaces through Err after Next returns
// false.
func (t *Tree[K, V]) Range(bounds Bounds[K]) *RangeIterator[K, V] {
	it := &RangeIterator[K, V]{cmp: t.cmp, hi: bounds.Hi, hiInclusive: bounds.HiInclusive}
	if err := it.seek(t.root, bounds.Lo, bounds.LoInclusive); err != nil {
		it.err = err
		it.done = true
	}

	return it
}

func (it *RangeIterator[K, V]) seek(n *node[K, V], lo *K, loInclusive bool) error {
	for {
		idx := 0

		if lo != nil {
			i, found, err := n.locate(it.cmp, *lo)
			if err != nil {
				return err
			}

			idx = i
			if found && !loInclusive {
				idx = i + 1
			}
		}

		it.stack = append(it.stack, frame[K, V]{node: n, i: idx})

		if n.leaf {
			return nil
		}

		n = n.children[idx]
	}
}

// Next advances to the next entry within bounds, returning false once the
// range is exhausted or a comparator failure occurred (check Err).
func (it *RangeIterator[K, V]) Next() bool {
	if it.done {
		return false
	}

	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.i == len(top.node.keys) {
			it.stack = it.stack[:len(it.stack)-1]

			continue
		}

		key := top.node.keys[top.i]

		if it.hi != nil {
			c, err := it.cmp(key, *it.hi)
			if err != nil {
				it.err = err
				it.done = true

				return false
			}

			if c > 0 || (c == 0 && !it.hiInclusive) {
				it.done = true

				return false
			}
		}

		idx := top.i
		it.key, it.value = key, top.node.values[idx]
		top.i++

		if !top.node.leaf {
			it.stack = pushLeftmost(it.stack, top.node.children[idx+1])
		}

		return true
	}

	return false
}

// Key returns the key of the current entry.
func (it *RangeIterator[K, V]) Key() K { return it.key }

// Value returns the value of the current entry.
func (it *RangeIterator[K, V]) Value() V { return it.value }

// Err returns the comparator failure, if any, that ended the range early.
func (it *RangeIterator[K, V]) Err() error {
	if it.err == nil {
		return nil
	}

	return wrapComparison(it.err)
}

// All returns an in-order sequence over every key-value pair in the tree.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := t.Iterator()
		for it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Backward returns a reverse in-order sequence over every key-value pair in
// the tree.
func (t *Tree[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := t.ReverseIterator()
		for it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}
