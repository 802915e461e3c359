// Copyright 2025 Stax ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package data

import (
	"github.com/stax-ml/stax/internal/data"
)

// Wild is the wildcard dimension marker for shapes.
const Wild = data.Wild

// Shape describes how a flat numeric buffer is structured.
// Example: Shape{2, 3} is a 2×3 matrix; Shape{Wild, 3} lets the first
// dimension resolve from the element count.
type Shape = data.Shape

// Data is a shaped numeric container.
type Data = data.Data

// List is the 1-D container.
type List = data.List

// Matrix is the 2-D container.
type Matrix = data.Matrix

// ShapeError reports a cast, convert, or inference failure.
type ShapeError = data.ShapeError

// NewList wraps values as a 1-D container.
func NewList(values []float64) *List {
	return data.NewList(values)
}

// NewMatrix wraps rows of equal length as a 2-D container.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	return data.NewMatrix(rows)
}

// Cast wraps raw flat or nested numeric data as a container with the
// declared shape.
//
// Example:
//
//	m, err := data.Cast([]float64{1, 2, 3, 4}, data.Shape{2, 2})
func Cast(raw any, shape Shape) (Data, error) {
	return data.Cast(raw, shape)
}

// Convert reshapes d to the target shape, preserving element order.
// Exactly one wildcard dimension is permitted.
func Convert(d Data, target Shape) (Data, error) {
	return data.Convert(d, target)
}

// Infer wraps a raw value in the container type implied by its nesting.
func Infer(value any) (Data, error) {
	return data.Infer(value)
}

// Flatten returns the elements of value in row-major order.
func Flatten(value any) ([]float64, error) {
	return data.Flatten(value)
}
