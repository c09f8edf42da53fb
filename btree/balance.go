package btree

// The primitives in this file are the CLRS minimum-degree B-tree operations,
// grounded on the split/merge/shuffle routines of the pack's standalone
// minimum-degree reference (no parent pointers, node capacity 2*order-1).
// splitChild and mergeChildren are exact inverses of each other.

// splitChild splits the full child at parent.children[i] around its median
// key, promoting the median into parent and inserting the split-off right
// half as parent's new child at i+1.
//
// Precondition: parent.children[i] is full (2*order-1 keys) and parent is
// not (callers only reach a full child through an ancestor chain that was
// kept non-full by the same rule, one level up).
func (t *Tree[K, V]) splitChild(parent *node[K, V], i int) {
	order := t.order
	child := parent.children[i]
	mid := order - 1

	medianKey, medianValue := child.keys[mid], child.values[mid]

	right := newSibling[K, V](order, child.leaf)
	right.keys = append(right.keys, child.keys[mid+1:]...)
	right.values = append(right.values, child.values[mid+1:]...)

	if !child.leaf {
		right.children = append(right.children, child.children[order:]...)
		child.children = child.children[:order]
	}

	child.keys = child.keys[:mid]
	child.values = child.values[:mid]

	parent.insertAt(i, medianKey, medianValue)
	parent.insertChildAt(i+1, right)
}

// borrowFromPrev moves the rightmost key of parent.children[i-1] up through
// parent.keys[i-1] and down into the front of parent.children[i].
//
// Precondition: parent.children[i-1] holds at least order keys.
func (t *Tree[K, V]) borrowFromPrev(parent *node[K, V], i int) {
	child, left := parent.children[i], parent.children[i-1]

	borrowedKey, borrowedValue := left.removeAt(len(left.keys) - 1)

	child.insertAt(0, parent.keys[i-1], parent.values[i-1])
	parent.keys[i-1], parent.values[i-1] = borrowedKey, borrowedValue

	if !child.leaf {
		moved := left.removeChildAt(len(left.children) - 1)
		child.insertChildAt(0, moved)
	}
}

// borrowFromNext moves the leftmost key of parent.children[i+1] up through
// parent.keys[i] and down into the back of parent.children[i].
//
// Precondition: parent.children[i+1] holds at least order keys.
func (t *Tree[K, V]) borrowFromNext(parent *node[K, V], i int) {
	child, right := parent.children[i], parent.children[i+1]

	borrowedKey, borrowedValue := right.removeAt(0)

	child.insertAt(len(child.keys), parent.keys[i], parent.values[i])
	parent.keys[i], parent.values[i] = borrowedKey, borrowedValue

	if !child.leaf {
		moved := right.removeChildAt(0)
		child.insertChildAt(len(child.children), moved)
	}
}

// mergeChildren folds parent.children[i+1] and the separator parent.keys[i]
// into parent.children[i], removing both the separator and the right child
// from parent, and returns the merged node.
//
// Precondition: both children hold exactly order-1 keys, so the merged node
// holds (order-1)+1+(order-1) = 2*order-1, its maximum.
func (t *Tree[K, V]) mergeChildren(parent *node[K, V], i int) *node[K, V] {
	left, right := parent.children[i], parent.children[i+1]

	midKey, midValue := parent.removeAt(i)
	parent.removeChildAt(i + 1)

	left.keys = append(left.keys, midKey)
	left.values = append(left.values, midValue)
	left.keys = append(left.keys, right.keys...)
	left.values = append(left.values, right.values...)

	if !left.leaf {
		left.children = append(left.children, right.children...)
	}

	return left
}

// fill ensures parent.children[i] holds at least order keys before a
// traversal descends into it, borrowing from a sibling that can spare one
// or merging otherwise. It returns the index of children[i] after the
// operation, which shifts left by one when the merge took the left sibling.
func (t *Tree[K, V]) fill(parent *node[K, V], i int) int {
	switch {
	case i > 0 && len(parent.children[i-1].keys) >= t.order:
		t.borrowFromPrev(parent, i)

		return i
	case i < len(parent.children)-1 && len(parent.children[i+1].keys) >= t.order:
		t.borrowFromNext(parent, i)

		return i
	case i < len(parent.children)-1:
		t.mergeChildren(parent, i)

		return i
	default:
		t.mergeChildren(parent, i-1)

		return i - 1
	}
}
