package model

import (
	"bytes"
	"encoding/json"
	"reflect"

	"go-supermarket-inventory/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Nullable distinguishes an absent JSON key (Set=false) from an explicit
// null (Set=true, Value=nil) in partial updates.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Nullable[T] { return Nullable[T]{Set: true, Value: &v} }

func Null[T any]() Nullable[T] { return Nullable[T]{Set: true} }

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

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// IsNull reports an explicit null.
func (n Nullable[T]) IsNull() bool { return n.Set && n.Value == nil }

func (n Nullable[T]) validationValue() interface{} {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}

type validatable interface{ validationValue() interface{} }

func init() {
	validator.RegisterType(func(v reflect.Value) interface{} {
		if n, ok := v.Interface().(validatable); ok {
			return n.validationValue()
		}
		return nil
	},
		Nullable[int]{},
		Nullable[bool]{},
		Nullable[string]{},
		Nullable[uuid.UUID]{},
		Nullable[decimal.Decimal]{},
	)
}
