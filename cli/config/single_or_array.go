package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SingleOrArray is a helper type for fields that can contain either a single value
// or a list of values of the same data type. A single value is collapsed into
// a one-element list, so the consumers never check the shape again.
type SingleOrArray[T any] []T

// NewSingleOrArray creates SingleOrArray object.
func NewSingleOrArray[T any](v ...T) SingleOrArray[T] {
	return append([]T{}, v...)
}

// UnmarshalYAML implements yaml.Unmarshaler interface.
// A null document is not passed to the unmarshaler by yaml.v3, so it results
// in an empty list.
func (o *SingleOrArray[T]) UnmarshalYAML(node *yaml.Node) error {
	var ret []T
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&ret); err != nil {
			return err
		}
	case yaml.MappingNode, yaml.ScalarNode:
		var s T
		if err := node.Decode(&s); err != nil {
			return err
		}
		ret = []T{s}
	default:
		return fmt.Errorf("line %d: unexpected YAML node kind", node.Line)
	}
	*o = ret
	return nil
}

// MarshalYAML implements yaml.Marshaler interface.
func (o SingleOrArray[T]) MarshalYAML() (any, error) {
	var v any
	v = []T(o)
	if len(o) == 1 {
		v = o[0]
	}
	return v, nil
}

// FieldStringArrayType is alias for the custom type used `SingleOrArray` with strings
// to handle as a single string as well as a list of strings.
type FieldStringArrayType = SingleOrArray[string]
