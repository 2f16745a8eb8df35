package dto

import (
	"bytes"
	"encoding/json"
)

// Nullable distinguishes an absent JSON field (Set=false) from an explicit null
// (Set=true, Value=nil) in PATCH bodies.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON is only called for present fields.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// MarshalJSON renders null when unset or null.
func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// NullableOf returns a set, non-null value.
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns an explicit null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}
