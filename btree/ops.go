package btree

import "fmt"

// search descends from n looking for key, returning the node holding it
// together with its slot, or found=false if key is absent.
func (t *Tree[K, V]) search(n *node[K, V], key K) (owner *node[K, V], index int, found bool, err error) {
	for {
		i, ok, lerr := n.locate(t.cmp, key)
		if lerr != nil {
			return nil, 0, false, lerr
		}

		if ok {
			return n, i, true, nil
		}

		if n.leaf {
			return nil, 0, false, nil
		}

		n = n.children[i]
	}
}

// Contains reports whether key is present in the tree.
func (t *Tree[K, V]) Contains(key K) (bool, error) {
	_, _, found, err := t.search(t.root, key)
	if err != nil {
		return false, wrapComparison(err)
	}

	return found, nil
}

// Get returns the value stored for key, and whether key was found.
func (t *Tree[K, V]) Get(key K) (V, bool, error) {
	owner, i, found, err := t.search(t.root, key)
	if err != nil {
		var zero V

		return zero, false, wrapComparison(err)
	}

	if !found {
		var zero V

		return zero, false, nil
	}

	return owner.values[i], true, nil
}

// Insert stores value under key, overwriting any existing value for key.
// It implements the proactive-split descent: a full node is split before
// the traversal steps into it, so a single downward pass never needs to
// back up to propagate a split.
func (t *Tree[K, V]) Insert(key K, value V) error {
	if t.root.isFull(t.order) {
		newRoot := newInternal[K, V](t.order)
		newRoot.children = append(newRoot.children, t.root)
		t.root = newRoot
		t.splitChild(newRoot, 0)
	}

	inserted, err := t.insertNonFull(t.root, key, value)
	if err != nil {
		return wrapComparison(err)
	}

	if inserted {
		t.size++
	}

	return nil
}

// insertNonFull inserts key/value into the subtree rooted at n, where n is
// guaranteed to have room for a key promoted by a child split.
func (t *Tree[K, V]) insertNonFull(n *node[K, V], key K, value V) (inserted bool, err error) {
	i, found, err := n.locate(t.cmp, key)
	if err != nil {
		return false, err
	}

	if found {
		n.values[i] = value

		return false, nil
	}

	if n.leaf {
		n.insertAt(i, key, value)

		return true, nil
	}

	if n.children[i].isFull(t.order) {
		t.splitChild(n, i)

		c, cerr := t.cmp(key, n.keys[i])
		if cerr != nil {
			return false, cerr
		}

		switch {
		case c == 0:
			n.values[i] = value

			return false, nil
		case c > 0:
			i++
		}
	}

	return t.insertNonFull(n.children[i], key, value)
}

// Delete removes key from the tree. It returns ErrKeyNotFound, wrapped with
// the missing key, if key is absent; the tree is left unchanged in that
// case.
func (t *Tree[K, V]) Delete(key K) error {
	if _, _, found, err := t.search(t.root, key); err != nil {
		return wrapComparison(err)
	} else if !found {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}

	deleted, err := t.deleteFrom(t.root, key)
	if err != nil {
		return wrapComparison(err)
	}

	if !deleted {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}

	if !t.root.leaf && len(t.root.keys) == 0 {
		t.root = t.root.children[0]
	}

	t.size--

	return nil
}

// deleteFrom removes key from the subtree rooted at n, implementing the
// pre-fill descent: before stepping into a child that holds only order-1
// keys, that child is topped up (by borrowing or merging) so the deletion
// never needs to back up and rebalance after the fact.
func (t *Tree[K, V]) deleteFrom(n *node[K, V], key K) (bool, error) {
	i, found, err := n.locate(t.cmp, key)
	if err != nil {
		return false, err
	}

	if found {
		if n.leaf {
			n.removeAt(i)

			return true, nil
		}

		return true, t.deleteFromInternal(n, i, key)
	}

	if n.leaf {
		return false, nil
	}

	if len(n.children[i].keys) == t.order-1 {
		i = t.fill(n, i)
	}

	return t.deleteFrom(n.children[i], key)
}

// deleteFromInternal removes the key at slot i of internal node n, replacing
// it with its in-order predecessor or successor when a neighboring child can
// spare one, or by merging the two children around it and recursing into
// the merged node otherwise.
func (t *Tree[K, V]) deleteFromInternal(n *node[K, V], i int, key K) error {
	left, right := n.children[i], n.children[i+1]

	switch {
	case len(left.keys) >= t.order:
		predKey, predValue := t.maxEntry(left)
		n.keys[i], n.values[i] = predKey, predValue
		_, err := t.deleteFrom(left, predKey)

		return err
	case len(right.keys) >= t.order:
		succKey, succValue := t.minEntry(right)
		n.keys[i], n.values[i] = succKey, succValue
		_, err := t.deleteFrom(right, succKey)

		return err
	default:
		merged := t.mergeChildren(n, i)
		_, err := t.deleteFrom(merged, key)

		return err
	}
}

func (t *Tree[K, V]) minEntry(n *node[K, V]) (K, V) {
	for !n.leaf {
		n = n.children[0]
	}

	return n.keys[0], n.values[0]
}

func (t *Tree[K, V]) maxEntry(n *node[K, V]) (K, V) {
	for !n.leaf {
		n = n.children[len(n.children)-1]
	}

	return n.keys[len(n.keys)-1], n.values[len(n.values)-1]
}

// Min returns the smallest key in the tree and its value. It fails with
// ErrEmpty if the tree holds no entries.
func (t *Tree[K, V]) Min() (key K, value V, err error) {
	if t.size == 0 {
		return key, value, ErrEmpty
	}

	key, value = t.minEntry(t.root)

	return key, value, nil
}

// Max returns the largest key in the tree and its value. It fails with
// ErrEmpty if the tree holds no entries.
func (t *Tree[K, V]) Max() (key K, value V, err error) {
	if t.size == 0 {
		return key, value, ErrEmpty
	}

	key, value = t.maxEntry(t.root)

	return key, value, nil
}
