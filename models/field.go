package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrNullNotAllowed is returned when a payload sets a non-nullable field to null.
var ErrNullNotAllowed = errors.New("null is not allowed for this field")

var jsonNull = []byte("null")

// Optional is a payload field that may be omitted but, when present, must
// carry a value. The zero value means "not supplied".
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return ErrNullNotAllowed
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Set = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return jsonNull, nil
	}
	return json.Marshal(o.Value)
}

// ValidationValue exposes the value to the validator: nil when absent,
// otherwise a pointer so that zero values are still checked.
func (o Optional[T]) ValidationValue() any {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

// Nullable is a payload field with three states: absent, explicitly null,
// or a value. Absent leaves the stored column untouched, null clears it.
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Null returns a Nullable that was supplied as null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// NonNull returns a Nullable holding v.
func NonNull[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Valid: true, Value: v}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		var zero T
		n.Valid = false
		n.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}
	return json.Marshal(n.Value)
}

// Ptr returns the value as a pointer, nil for null or absent.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

func (n Nullable[T]) ValidationValue() any {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}
