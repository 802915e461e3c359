// Copyright 2025 Stax ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides composable feed-forward layers with manual
// backpropagation.
//
// # Overview
//
// This package contains:
//   - Layer: the capability set every layer implements
//   - Dense: weighted linear layer with gradient update
//   - Activations: ReLU, Sigmoid, Tanh, Softmax
//   - Sequence: ordered composite driving forward and backward passes
//
// # Basic Usage
//
//	import "github.com/stax-ml/stax/nn"
//
//	func main() {
//	    seq, err := nn.NewSequence([]nn.Layer{
//	        nn.NewDense(4, 2),
//	        nn.NewSigmoid(),
//	        nn.NewDense(1, 0), // input size inferred
//	    }, nn.WithLearnRate(0.1)).Initialize()
//	    if err != nil {
//	        // every failing layer is reported at once
//	    }
//
//	    seq, loss, err := seq.TrainOnce([]float64{0, 1}, []float64{1})
//	    out, err := seq.Predict([]float64{0, 1})
//	}
//
// # Immutability
//
// Every operation returns the updated layer or Sequence instead of
// mutating in place; the caller threads the returned value forward.
// Training a Sequence never changes the original.
//
// # Training
//
// TrainOnce runs one forward pass, computes the per-output error
// (label − prediction), and runs one backward pass that updates
// weights. Train folds TrainOnce over a fixed epoch count:
//
//	trained, loss, err := seq.Train([]nn.Pair{
//	    {Input: []float64{0, 0}, Label: []float64{0}},
//	    {Input: []float64{0, 1}, Label: []float64{1}},
//	}, 1000)
package nn
