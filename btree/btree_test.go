package btree_test

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/qntx/kvtree/btree"
	"github.com/qntx/kvtree/internal/testutil"
)

func TestNewDefaultsBadOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		order int
	}{
		{"zero", 0},
		{"one", 1},
		{"negative", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree := btree.New[int, string](tt.order)
			if got := tree.Order(); got != 8 {
				t.Errorf("Order() = %d, want 8", got)
			}
		})
	}
}

func TestInsertAndGet(t *testing.T) {
	t.Parallel()

	tree := btree.New[int, string](3)

	data := map[int]string{1: "a", 2: "b", 3: "c", 4: "d", 5: "e", 6: "f", 7: "g"}
	for k, v := range data {
		if err := tree.Insert(k, v); err != nil {
			t.Fatalf("Insert(%d, %q): %v", k, v, err)
		}
	}

	tests := []struct {
		key       int
		wantVal   string
		wantFound bool
	}{
		{0, "", false},
		{1, "a", true},
		{4, "d", true},
		{7, "g", true},
		{8, "", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("key=%d", tt.key), func(t *testing.T) {
			t.Parallel()

			got, found, err := tree.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%d): %v", tt.key, err)
			}

			if got != tt.wantVal || found != tt.wantFound {
				t.Errorf("Get(%d) = (%q, %v), want (%q, %v)", tt.key, got, found, tt.wantVal, tt.wantFound)
			}
		})
	}
}

func TestInsertOverwritesExistingKey(t *testing.T) {
	t.Parallel()

	tree := btree.New[int, string](3)

	if err := tree.Insert(1, "a"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := tree.Insert(1, "z"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if got := tree.Size(); got != 1 {
		t.Errorf("Size() = %d, want 1", got)
	}

	v, found, err := tree.Get(1)
	if err != nil || !found || v != "z" {
		t.Errorf("Get(1) = (%q, %v, %v), want (\"z\", true, nil)", v, found, err)
	}
}

func TestDeleteKeyNotFound(t *testing.T) {
	t.Parallel()

	tree := btree.New[int, string](3)
	if err := tree.Insert(1, "a"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	err := tree.Delete(99)
	if !errors.Is(err, btree.ErrKeyNotFound) {
		t.Errorf("Delete(99) = %v, want ErrKeyNotFound", err)
	}

	if tree.Size() != 1 {
		t.Errorf("Size() = %d, want 1 (unchanged after failed delete)", tree.Size())
	}
}

func TestMinMaxEmpty(t *testing.T) {
	t.Parallel()

	tree := btree.New[int, string](3)

	if _, _, err := tree.Min(); !errors.Is(err, btree.ErrEmpty) {
		t.Errorf("Min() on empty tree = %v, want ErrEmpty", err)
	}

	if _, _, err := tree.Max(); !errors.Is(err, btree.ErrEmpty) {
		t.Errorf("Max() on empty tree = %v, want ErrEmpty", err)
	}
}

func TestMinMax(t *testing.T) {
	t.Parallel()

	tree := btree.New[int, string](3)
	for _, k := range []int{5, 1, 9, 3, 7} {
		if err := tree.Insert(k, fmt.Sprint(k)); err != nil {
			t.Fatalf("Insert(%d): %v", k, err)
		}
	}

	if k, _, err := tree.Min(); err != nil || k != 1 {
		t.Errorf("Min() = (%d, %v), want (1, nil)", k, err)
	}

	if k, _, err := tree.Max(); err != nil || k != 9 {
		t.Errorf("Max() = (%d, %v), want (9, nil)", k, err)
	}
}

func TestClearAndIsEmpty(t *testing.T) {
	t.Parallel()

	tree := btree.New[int, string](3)
	for i := range 10 {
		if err := tree.Insert(i, fmt.Sprint(i)); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}

	tree.Clear()

	if !tree.IsEmpty() {
		t.Errorf("IsEmpty() = false after Clear()")
	}

	if tree.Size() != 0 {
		t.Errorf("Size() = %d after Clear(), want 0", tree.Size())
	}

	if _, _, err := tree.Min(); !errors.Is(err, btree.ErrEmpty) {
		t.Errorf("Min() after Clear() = %v, want ErrEmpty", err)
	}
}

func TestClone(t *testing.T) {
	t.Parallel()

	src := btree.New[int, string](3)
	for i := range 30 {
		if err := src.Insert(i, fmt.Sprint(i)); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}

	dst := src.Clone()

	if err := dst.Insert(999, "intruder"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if _, found, _ := src.Get(999); found {
		t.Errorf("Clone is not independent: source saw the clone's mutation")
	}

	eq, err := btree.Equal(src, dst)
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}

	if eq {
		t.Errorf("Equal(src, dst) = true after dst diverged, want false")
	}
}

// TestInsertDeleteInvariants is a randomized check that repeated
// insert/delete sequences leave the tree's size, stored values, and key
// order correct, regardless of insertion and deletion order.
func TestInsertDeleteInvariants(t *testing.T) {
	t.Parallel()

	for _, order := range []int{2, 3, 4, 8} {
		t.Run(fmt.Sprintf("order=%d", order), func(t *testing.T) {
			t.Parallel()

			tree := btree.New[int, int](order)
			present := map[int]bool{}

			keys := testutil.GeneratePermutedInts(500)
			for _, k := range keys {
				if err := tree.Insert(k, k*2); err != nil {
					t.Fatalf("Insert(%d): %v", k, err)
				}

				present[k] = true
			}

			if tree.Size() != len(present) {
				t.Fatalf("Size() = %d, want %d", tree.Size(), len(present))
			}

			wantHeight := tree.Height()
			if wantHeight < 1 {
				t.Fatalf("Height() = %d, want >= 1", wantHeight)
			}

			deletionOrder := testutil.GeneratePermutedInts(500)
			for i, k := range deletionOrder {
				if i%2 == 0 {
					continue
				}

				if err := tree.Delete(k); err != nil {
					t.Fatalf("Delete(%d): %v", k, err)
				}

				delete(present, k)
			}

			if tree.Size() != len(present) {
				t.Fatalf("Size() after deletes = %d, want %d", tree.Size(), len(present))
			}

			for k := range present {
				v, found, err := tree.Get(k)
				if err != nil || !found || v != k*2 {
					t.Errorf("Get(%d) = (%d, %v, %v), want (%d, true, nil)", k, v, found, err, k*2)
				}
			}

			got := tree.Keys()
			if !slices.IsSorted(got) {
				t.Errorf("Keys() not sorted after interleaved insert/delete: %v", got)
			}

			if len(got) != len(present) {
				t.Errorf("len(Keys()) = %d, want %d", len(got), len(present))
			}
		})
	}
}

func TestHeightGrowsLogarithmically(t *testing.T) {
	t.Parallel()

	tree := btree.New[int, struct{}](2)
	for i := range 1000 {
		if err := tree.Insert(i, struct{}{}); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}

	// Minimum degree 2 (a 2-3-4 tree) over 1000 keys should stay shallow;
	// a height in the double digits would indicate a broken split/merge.
	if h := tree.Height(); h < 2 || h > 9 {
		t.Errorf("Height() = %d, want a small height for 1000 keys at order 2", h)
	}
}

func TestStringAndDump(t *testing.T) {
	t.Parallel()

	tree := btree.New[int, string](3)
	if got := tree.String(); got == "" {
		t.Errorf("String() is empty")
	}

	if got := tree.Dump(); got != "" {
		t.Errorf("Dump() on empty tree = %q, want empty", got)
	}

	if err := tree.Insert(1, "a"); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if got := tree.Dump(); got == "" {
		t.Errorf("Dump() on non-empty tree is empty")
	}
}

func TestWalkVisitsEveryEntry(t *testing.T) {
	t.Parallel()

	tree := btree.New[int, string](3)

	want := map[int]string{}
	for i := range 50 {
		want[i] = fmt.Sprint(i)

		if err := tree.Insert(i, want[i]); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}

	got := map[int]string{}
	var lastKey int

	tree.Walk(func(k int) { lastKey = k }, func(v string) { got[lastKey] = v })

	if len(got) != len(want) {
		t.Fatalf("Walk visited %d entries, want %d", len(got), len(want))
	}

	for k, v := range want {
		if got[k] != v {
			t.Errorf("Walk entry %d = %q, want %q", k, got[k], v)
		}
	}
}
