// Package nn implements the composable layer primitives: the Layer
// capability set, Activation and Dense layers, and the Sequence
// composite that drives forward and backward passes.
//
// Layers are immutable-functional: every operation returns the updated
// layer value, and the caller threads it forward. Nothing mutates in
// place.
package nn

import (
	"github.com/stax-ml/stax/internal/data"
)

// Ctx is the neighbor context a layer receives during initialization.
// Prev and Next are nil at the edges of the layer list, so a layer can
// tell where it sits and infer missing dimensions from its neighbors.
type Ctx struct {
	Prev      Layer
	Next      Layer
	LearnRate float64
}

// Layer is the capability set shared by everything that participates in
// forward and backward passes: Activation, Dense, and Sequence itself.
//
// All three methods return the updated layer rather than mutating the
// receiver. A Sequence is a Layer too, so composites nest arbitrarily.
type Layer interface {
	// Init prepares the layer for training given its neighbor context.
	// It runs once per layer, driven by Sequence.Init.
	Init(ctx Ctx) (Layer, error)

	// Feedforward evaluates the layer on input and returns the updated
	// layer (holding any refreshed cache) together with its output.
	Feedforward(input data.Data) (Layer, data.Data)

	// Backprop runs the layer's share of the backward pass. lossGrad is
	// the network-level loss derivative, passed unchanged to every
	// layer. errSignal is the error produced by the layer processed
	// just before this one in the reverse fold. Props carries pending
	// chain-rule terms between layers.
	Backprop(lossGrad float64, errSignal data.Data, props Props) (Layer, data.Data, Props)
}

// OutputSized is implemented by layers with a known output width, so a
// following layer can infer its own input size during initialization.
type OutputSized interface {
	OutputSize() int
}
