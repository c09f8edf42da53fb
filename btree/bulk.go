package btree

import "fmt"

// Keys returns every key in the tree, in ascending order.
func (t *Tree[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)

	it := t.Iterator()
	for it.Next() {
		keys = append(keys, it.Key())
	}

	return keys
}

// Values returns every value in the tree, ordered by key.
func (t *Tree[K, V]) Values() []V {
	values := make([]V, 0, t.size)

	it := t.Iterator()
	for it.Next() {
		values = append(values, it.Value())
	}

	return values
}

// Items returns every key-value pair in the tree, in ascending key order.
func (t *Tree[K, V]) Items() []Entry[K, V] {
	items := make([]Entry[K, V], 0, t.size)

	it := t.Iterator()
	for it.Next() {
		items = append(items, Entry[K, V]{Key: it.Key(), Value: it.Value()})
	}

	return items
}

// Update inserts every pair produced by seq into the tree, overwriting the
// value of any key already present; last write wins when a key repeats
// within seq. It stops and returns the first error Insert reports, leaving
// pairs already applied in place.
func (t *Tree[K, V]) Update(seq func(yield func(K, V) bool)) error {
	var outerErr error

	seq(func(k K, v V) bool {
		if err := t.Insert(k, v); err != nil {
			outerErr = err

			return false
		}

		return true
	})

	return outerErr
}

// UpdateTree inserts every entry of src into the tree.
func (t *Tree[K, V]) UpdateTree(src *Tree[K, V]) error {
	return t.Update(src.All())
}

// UpdateMap inserts every entry of src into the tree.
func (t *Tree[K, V]) UpdateMap(src map[K]V) error {
	return t.Update(func(yield func(K, V) bool) {
		for k, v := range src {
			if !yield(k, v) {
				return
			}
		}
	})
}

// UpdateItems inserts every entry of items into the tree.
func (t *Tree[K, V]) UpdateItems(items []Entry[K, V]) error {
	return t.Update(func(yield func(K, V) bool) {
		for _, e := range items {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	})
}

// UpdateAny inserts pairs from a slice of dynamically shaped elements, the
// Go analogue of accepting any iterable of two-element sequences from a
// host language. Each element must be a [2]any or a []any of length 2,
// whose parts are assignable to (K, V); any other shape fails with
// ErrShape naming the offending position, and the update stops there —
// pairs already applied stay applied.
func (t *Tree[K, V]) UpdateAny(pairs []any) error {
	for pos, p := range pairs {
		key, value, ok := shapeKV[K, V](p)
		if !ok {
			return fmt.Errorf("%w: position %d", ErrShape, pos)
		}

		if err := t.Insert(key, value); err != nil {
			return err
		}
	}

	return nil
}

func shapeKV[K comparable, V any](p any) (K, V, bool) {
	var zeroK K

	var zeroV V

	switch v := p.(type) {
	case [2]any:
		k, kok := v[0].(K)
		val, vok := v[1].(V)

		return k, val, kok && vok
	case []any:
		if len(v) != 2 {
			return zeroK, zeroV, false
		}

		k, kok := v[0].(K)
		val, vok := v[1].(V)

		return k, val, kok && vok
	default:
		return zeroK, zeroV, false
	}
}

// SetDefault returns the value stored for key, inserting def under key
// first if key is absent.
func (t *Tree[K, V]) SetDefault(key K, def V) (V, error) {
	v, found, err := t.Get(key)
	if err != nil {
		return v, err
	}

	if found {
		return v, nil
	}

	if err := t.Insert(key, def); err != nil {
		return def, err
	}

	return def, nil
}

// Pop removes key and returns its value. It fails with ErrKeyNotFound if
// key is absent.
func (t *Tree[K, V]) Pop(key K) (V, error) {
	v, found, err := t.Get(key)
	if err != nil {
		return v, err
	}

	if !found {
		var zero V

		return zero, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}

	if err := t.Delete(key); err != nil {
		return v, err
	}

	return v, nil
}

// PopDefault removes key and returns its value, or returns def without
// modifying the tree if key is absent.
func (t *Tree[K, V]) PopDefault(key K, def V) (V, error) {
	v, found, err := t.Get(key)
	if err != nil {
		return v, err
	}

	if !found {
		return def, nil
	}

	if err := t.Delete(key); err != nil {
		return v, err
	}

	return v, nil
}

// endpointIndex translates a peek/pop index into "smallest" or "largest".
// Only 0 (smallest) and -1 or size-1 (largest) are valid.
func (t *Tree[K, V]) endpointIndex(index int) (isMin bool, ok bool) {
	switch {
	case index == 0:
		return true, true
	case index == -1 || index == t.size-1:
		return false, true
	default:
		return false, false
	}
}

// PeekItem returns the key-value pair at index without removing it. Only
// index 0 (smallest) and index -1 or size-1 (largest) are supported; any
// other index fails with ErrIndexUnsupported. An empty tree fails with
// ErrEmpty.
func (t *Tree[K, V]) PeekItem(index int) (K, V, error) {
	var zeroK K

	var zeroV V

	isMin, ok := t.endpointIndex(index)
	if !ok {
		return zeroK, zeroV, fmt.Errorf("%w: index %d", ErrIndexUnsupported, index)
	}

	if t.size == 0 {
		return zeroK, zeroV, ErrEmpty
	}

	if isMin {
		k, v := t.minEntry(t.root)

		return k, v, nil
	}

	k, v := t.maxEntry(t.root)

	return k, v, nil
}

// PopItem removes and returns the key-value pair at index. Only index 0
// (smallest) and index -1 or size-1 (largest) are supported; any other
// index fails with ErrIndexUnsupported. An empty tree fails with
// ErrKeyNotFound.
func (t *Tree[K, V]) PopItem(index int) (K, V, error) {
	var zeroK K

	var zeroV V

	isMin, ok := t.endpointIndex(index)
	if !ok {
		return zeroK, zeroV, fmt.Errorf("%w: index %d", ErrIndexUnsupported, index)
	}

	if t.size == 0 {
		return zeroK, zeroV, ErrKeyNotFound
	}

	var k K

	var v V

	if isMin {
		k, v = t.minEntry(t.root)
	} else {
		k, v = t.maxEntry(t.root)
	}

	if err := t.Delete(k); err != nil {
		return k, v, err
	}

	return k, v, nil
}

// Equal reports whether a and b hold the same size and the same sequence of
// (key, value) pairs, comparing values with ==.
func Equal[K comparable, V comparable](a, b *Tree[K, V]) (bool, error) {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// EqualFunc is Equal with a caller-supplied value-equality function, for
// value types not comparable with ==.
func EqualFunc[K comparable, V any](a, b *Tree[K, V], valueEqual func(x, y V) bool) (bool, error) {
	if a.size != b.size {
		return false, nil
	}

	ia, ib := a.Iterator(), b.Iterator()
	for ia.Next() {
		if !ib.Next() {
			return false, nil
		}

		c, err := a.cmp(ia.Key(), ib.Key())
		if err != nil {
			return false, wrapComparison(err)
		}

		if c != 0 || !valueEqual(ia.Value(), ib.Value()) {
			return false, nil
		}
	}

	return true, nil
}
