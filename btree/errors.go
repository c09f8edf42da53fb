package btree

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Tree operations. Match them with errors.Is.
var (
	// ErrKeyNotFound is returned by Delete, Pop (no default), and PopItem
	// when the requested key is absent.
	ErrKeyNotFound = errors.New("btree: key not found")

	// ErrEmpty is returned by Min, Max, and PeekItem when the tree holds no
	// key-value pairs. PopItem on an empty tree returns ErrKeyNotFound.
	ErrEmpty = errors.New("btree: tree is empty")

	// ErrIndexUnsupported is returned by PeekItem and PopItem for any index
	// other than the first (0) or the last (-1, or size-1).
	ErrIndexUnsupported = errors.New("btree: only the first and last index are supported")

	// ErrShape is returned by UpdateAny when an element of the source slice
	// is not a two-element (key, value) sequence.
	ErrShape = errors.New("btree: pair does not have exactly two elements")

	// ErrComparison wraps a failure raised by the tree's key comparator.
	// A tree whose comparator has failed should be treated as unusable:
	// the failed comparison may have left a mutation half-applied.
	ErrComparison = errors.New("btree: comparator failed")

	// ErrMarshalJSON wraps a failure encoding the tree to JSON.
	ErrMarshalJSON = errors.New("btree: failed to marshal tree to JSON")

	// ErrUnmarshalJSON wraps a failure decoding JSON into the tree.
	ErrUnmarshalJSON = errors.New("btree: failed to unmarshal JSON into tree")
)

func wrapComparison(err error) error {
	return fmt.Errorf("%w: %w", ErrComparison, err)
}
