// Package data provides the shape-typed numeric containers that layers
// exchange values through.
//
// A Data value is a flat sequence of float64 plus a Shape describing how
// it is structured. Two concrete containers exist: List (1-D) and Matrix
// (2-D). Containers are immutable; every operation returns a new value.
package data

import (
	"fmt"
	"reflect"
)

// Data is a shaped numeric container.
//
// Implementations guarantee that len(FlatList()) == Shape().NumElements()
// and never mutate after construction.
type Data interface {
	// Shape returns the container's dimensions.
	Shape() Shape

	// FlatList returns the elements in row-major order. The returned
	// slice is a copy and safe to modify.
	FlatList() []float64
}

// Infer wraps a raw value in the container type implied by its nesting:
// a flat list of numbers becomes a List, a list of lists becomes a
// Matrix, and a value that already is a Data keeps its own type.
// Empty input fails with a ShapeError.
func Infer(value any) (Data, error) {
	switch v := value.(type) {
	case Data:
		return v, nil
	case []float64:
		if len(v) == 0 {
			return nil, &ShapeError{Reason: "cannot infer a container type for empty data"}
		}
		return NewList(v), nil
	case [][]float64:
		if len(v) == 0 || len(v[0]) == 0 {
			return nil, &ShapeError{Reason: "cannot infer a container type for empty data"}
		}
		return NewMatrix(v)
	default:
		return nil, &ShapeError{Reason: fmt.Sprintf("cannot infer a container type for %T", value)}
	}
}

// Flatten returns the elements of value in row-major order.
//
// Data values flatten through their own FlatList. Plain float64 slices
// and nested slices flatten directly; any other slice nesting falls back
// to reflection-based direct flattening.
func Flatten(value any) ([]float64, error) {
	switch v := value.(type) {
	case Data:
		return v.FlatList(), nil
	case []float64:
		out := make([]float64, len(v))
		copy(out, v)
		return out, nil
	case [][]float64:
		var out []float64
		for _, row := range v {
			out = append(out, row...)
		}
		return out, nil
	case float64:
		return []float64{v}, nil
	default:
		return flattenReflect(reflect.ValueOf(value))
	}
}

// flattenReflect walks arbitrarily nested slices/arrays of numbers.
func flattenReflect(v reflect.Value) ([]float64, error) {
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		var out []float64
		for i := 0; i < v.Len(); i++ {
			sub, err := flattenReflect(v.Index(i))
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil
	case reflect.Float32, reflect.Float64:
		return []float64{v.Float()}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return []float64{float64(v.Int())}, nil
	case reflect.Interface:
		return flattenReflect(v.Elem())
	default:
		return nil, &ShapeError{Reason: fmt.Sprintf("cannot flatten %s", v.Kind())}
	}
}

// Cast wraps raw flat or nested numeric data as a container with the
// declared shape. The shape may contain one wildcard dimension. Fails
// with a ShapeError when the shape is empty, nil, or its element count
// does not match the data.
func Cast(raw any, shape Shape) (Data, error) {
	flat, err := Flatten(raw)
	if err != nil {
		return nil, err
	}
	return fromFlat(flat, shape)
}

// Convert reshapes d to the target shape, preserving element order.
// Exactly one wildcard dimension is permitted; it resolves to
// total elements divided by the product of the concrete dimensions.
func Convert(d Data, target Shape) (Data, error) {
	return fromFlat(d.FlatList(), target)
}

// fromFlat builds the container matching the resolved shape's rank.
func fromFlat(flat []float64, shape Shape) (Data, error) {
	resolved, err := shape.Resolve(len(flat))
	if err != nil {
		return nil, err
	}
	switch len(resolved) {
	case 1:
		return NewList(flat), nil
	case 2:
		return newMatrixFlat(flat, resolved[0], resolved[1]), nil
	default:
		return nil, &ShapeError{Shape: shape, Reason: fmt.Sprintf("no %d-dimensional container exists", len(resolved))}
	}
}
