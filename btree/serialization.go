package btree

import (
	"encoding/json"
	"fmt"

	"github.com/qntx/kvtree/container"
)

var (
	_ container.JSONCodec = (*Tree[string, int])(nil)
	_ json.Marshaler      = (*Tree[string, int])(nil)
	_ json.Unmarshaler    = (*Tree[string, int])(nil)
)

// ToJSON serializes the tree into a JSON object whose keys are the tree's
// keys and whose values are their corresponding values.
func (t *Tree[K, V]) ToJSON() ([]byte, error) {
	elements := make(map[K]V, t.size)

	it := t.Iterator()
	for it.Next() {
		elements[it.Key()] = it.Value()
	}

	data, err := json.Marshal(elements)
	if err != nil {
		return nil, fmt.Errorf("btree: %w: %w", ErrMarshalJSON, err)
	}

	return data, nil
}

// FromJSON clears the tree and repopulates it from a JSON object, one
// insert per key-value pair decoded.
func (t *Tree[K, V]) FromJSON(data []byte) error {
	var elements map[K]V
	if err := json.Unmarshal(data, &elements); err != nil {
		return fmt.Errorf("btree: %w: %w", ErrUnmarshalJSON, err)
	}

	t.Clear()

	for k, v := range elements {
		if err := t.Insert(k, v); err != nil {
			return err
		}
	}

	return nil
}

// MarshalJSON implements json.Marshaler by delegating to ToJSON.
func (t *Tree[K, V]) MarshalJSON() ([]byte, error) {
	return t.ToJSON()
}

// UnmarshalJSON implements json.Unmarshaler by delegating to FromJSON.
func (t *Tree[K, V]) UnmarshalJSON(data []byte) error {
	return t.FromJSON(data)
}
