// Copyright 2025 Stax ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package data provides the shape-typed numeric containers that layers
// exchange values through.
//
// # Overview
//
// A Data value is a flat sequence of float64 plus a Shape describing
// how it is structured. This package provides:
//   - List: 1-D container
//   - Matrix: 2-D container
//   - Cast, Convert, Infer, Flatten: construction and reshaping
//   - Shape: dimension sizes, optionally with one wildcard
//
// # Basic Usage
//
//	import "github.com/stax-ml/stax/data"
//
//	func main() {
//	    // Wrap a flat slice with a declared shape
//	    m, err := data.Cast([]float64{1, 2, 3, 4, 5, 6}, data.Shape{2, 3})
//
//	    // Reshape, letting the wildcard dimension resolve itself
//	    v, err := data.Convert(m, data.Shape{data.Wild, 2}) // {3, 2}
//
//	    // Infer the container type from nesting
//	    d, err := data.Infer([][]float64{{1, 2}, {3, 4}}) // *Matrix
//	}
//
// Containers are immutable: every operation returns a new value, and
// flattened element count is preserved by every reshape. Failures are
// reported as *ShapeError.
package data
