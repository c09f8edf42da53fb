package cmp

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrIncomparable is returned by a [Comparator] when two keys cannot be
// placed in a total order — the cmp analogue of a host comparator raising.
var ErrIncomparable = errors.New("cmp: incomparable values")

// Comparator orders two keys of type K, the way a host comparator that can
// fail would: -1 if a < b, 0 if a == b, +1 if a > b, or a non-nil error if
// the comparison itself could not be carried out.
//
// Every key comparison performed by the btree package goes through a
// Comparator so that a failure becomes btree.ErrComparison instead of being
// swallowed or mapped onto a silent "equal".
type Comparator[K any] func(a, b K) (int, error)

// FromOrdered builds a Comparator for any type with native Go ordering.
//
// It applies the identity fast path (equal values short-circuit to EQ
// without further comparison) and otherwise delegates to [Compare]. Never
// returns an error: a type constrained to [Ordered] has no broader "general
// case" to fall back to, so NaN is handled the way [Compare] handles it
// (NaN equals NaN, NaN is less than any non-NaN) rather than by raising.
func FromOrdered[K Ordered]() Comparator[K] {
	return func(a, b K) (int, error) {
		if a == b {
			return 0, nil
		}

		return Compare(a, b), nil
	}
}

// FromHost builds a Comparator out of a host-style equality check and a
// host-style less-than check, exactly per the general-case contract: ask
// for equality first, then ask for less-than only if the keys are unequal.
// Either callback failing aborts the comparison with its error.
func FromHost[K any](equal func(a, b K) (bool, error), less func(a, b K) (bool, error)) Comparator[K] {
	return func(a, b K) (int, error) {
		eq, err := equal(a, b)
		if err != nil {
			return 0, err
		}

		if eq {
			return 0, nil
		}

		lt, err := less(a, b)
		if err != nil {
			return 0, err
		}

		if lt {
			return -1, nil
		}

		return 1, nil
	}
}

// AnyOrdered returns a Comparator over dynamically typed keys that
// recognizes homogeneous bignums (int64), float64, and string pairs as fast
// paths and falls through to [ErrIncomparable] for anything else —
// including a float64 pair where either side is NaN, which per the
// comparator contract must not be silently treated as equal.
func AnyOrdered() Comparator[any] {
	return func(a, b any) (int, error) {
		if a == b {
			return 0, nil
		}

		switch x := a.(type) {
		case int64:
			if y, ok := b.(int64); ok {
				return Compare(x, y), nil
			}
		case float64:
			if y, ok := b.(float64); ok && !math.IsNaN(x) && !math.IsNaN(y) {
				return Compare(x, y), nil
			}
		case string:
			if y, ok := b.(string); ok {
				return Compare(x, y), nil
			}
		}

		return 0, fmt.Errorf("%w: %T and %T", ErrIncomparable, a, b)
	}
}

// TimeComparator compares two time.Time values using After/Before.
func TimeComparator(a, b time.Time) int {
	switch {
	case a.After(b):
		return 1
	case a.Before(b):
		return -1
	default:
		return 0
	}
}
