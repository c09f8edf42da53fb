// Package btree implements an in-memory, ordered key-value container backed
// by a B-tree of configurable minimum degree.
//
// Every operation — lookup, insert-or-update, delete, bounded range scan,
// min/max, in-order iteration — completes in O(log n) node visits, and the
// tree is height-balanced after every mutation: all leaves sit at the same
// depth, and every non-root node holds between order-1 and 2*order-1 keys.
//
// A Tree is not safe for concurrent mutation. Concurrent readers with no
// writer are safe only under a reader-writer protocol the caller supplies;
// the package takes no internal locks. An Iterator is a weak observer of
// the tree it was created from: mutating the tree while an iterator is
// alive leaves further use of that iterator undefined.
//
// Reference: https://en.wikipedia.org/wiki/B-tree
package btree
