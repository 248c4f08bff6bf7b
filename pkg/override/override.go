// Package override implements the "don't change" sentinel used by import
// rules. Every configurable setting on a rule is wrapped in a Value so that
// settings a rule does not care about are never clobbered by a batch apply.
package override

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Value holds either a concrete override or the DontChange sentinel.
// The zero value is DontChange.
type Value[T comparable] struct {
	set   bool
	value T
}

// Set returns a Value carrying a concrete override
func Set[T comparable](v T) Value[T] {
	return Value[T]{set: true, value: v}
}

// DontChange returns the sentinel value that leaves a setting untouched
func DontChange[T comparable]() Value[T] {
	return Value[T]{}
}

// IsSet reports whether the value carries a concrete override
func (v Value[T]) IsSet() bool {
	return v.set
}

// Get returns the concrete override and whether one is present
func (v Value[T]) Get() (T, bool) {
	return v.value, v.set
}

// MustGet returns the concrete override, panicking when unset.
// Callers must guard with IsSet.
func (v Value[T]) MustGet() T {
	if !v.set {
		panic("override: MustGet on DontChange value")
	}
	return v.value
}

// Equals reports whether the value is set to exactly other.
// DontChange never equals any concrete value.
func (v Value[T]) Equals(other T) bool {
	return v.set && v.value == other
}

// String implements fmt.Stringer
func (v Value[T]) String() string {
	if !v.set {
		return "DontChange"
	}
	return fmt.Sprintf("%v", v.value)
}

// MarshalYAML serializes DontChange as an explicit null so that
// serialize/deserialize round-trips losslessly
func (v Value[T]) MarshalYAML() (interface{}, error) {
	if !v.set {
		return nil, nil
	}
	return v.value, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Null and absent nodes both
// decode to DontChange.
func (v *Value[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*v = Value[T]{}
		return nil
	}
	var concrete T
	if err := node.Decode(&concrete); err != nil {
		return err
	}
	*v = Value[T]{set: true, value: concrete}
	return nil
}
