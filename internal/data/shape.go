package data

import (
	"fmt"
	"strings"
)

// Wild is the wildcard dimension marker. A shape may contain at most one
// wildcard; Resolve replaces it with whatever dimension makes the total
// element count match.
const Wild = -1

// Shape describes how a flat numeric buffer is structured: an ordered
// list of dimension sizes, optionally containing one Wild entry.
type Shape []int

// NumElements returns the total number of elements described by the
// shape. It is only meaningful for fully concrete shapes.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// IsConcrete reports whether the shape contains no wildcard.
func (s Shape) IsConcrete() bool {
	for _, dim := range s {
		if dim == Wild {
			return false
		}
	}
	return true
}

// Validate checks that the shape is non-empty and that every dimension
// is either positive or the wildcard, with at most one wildcard.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return &ShapeError{Shape: s, Reason: "shape must have at least one dimension"}
	}
	wilds := 0
	for i, dim := range s {
		switch {
		case dim == Wild:
			wilds++
		case dim <= 0:
			return &ShapeError{Shape: s, Reason: fmt.Sprintf("invalid dimension at index %d: %d (must be > 0)", i, dim)}
		}
	}
	if wilds > 1 {
		return &ShapeError{Shape: s, Reason: fmt.Sprintf("%d wildcard dimensions (at most one allowed)", wilds)}
	}
	return nil
}

// Resolve returns a fully concrete shape sized for total elements.
// A wildcard dimension resolves to total divided by the product of the
// concrete dimensions. Fails when the division does not come out even,
// or when a concrete shape does not account for exactly total elements.
func (s Shape) Resolve(total int) (Shape, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	concrete := 1
	wildAt := -1
	for i, dim := range s {
		if dim == Wild {
			wildAt = i
			continue
		}
		concrete *= dim
	}

	if wildAt < 0 {
		if concrete != total {
			return nil, &ShapeError{Shape: s, Reason: fmt.Sprintf("shape holds %d elements, data has %d", concrete, total)}
		}
		return s.Clone(), nil
	}

	if total%concrete != 0 {
		return nil, &ShapeError{Shape: s, Reason: fmt.Sprintf("cannot divide %d elements into %d", total, concrete)}
	}
	resolved := s.Clone()
	resolved[wildAt] = total / concrete
	return resolved, nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// String returns the shape in {d1, d2, ...} form, with * for a wildcard.
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, dim := range s {
		if dim == Wild {
			parts[i] = "*"
		} else {
			parts[i] = fmt.Sprintf("%d", dim)
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
