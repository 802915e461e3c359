// Copyright 2025 Stax ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/stax-ml/stax/internal/nn"
)

// Layer is the capability set shared by Activation, Dense, and
// Sequence: initialize, feedforward, backprop.
type Layer = nn.Layer

// Ctx is the neighbor context a layer receives during initialization.
type Ctx = nn.Ctx

// OutputSized is implemented by layers with a known output width.
type OutputSized = nn.OutputSized

// Props is the backward carrier for chain-rule terms between layers.
type Props = nn.Props

// Derivative is a chain-rule term threaded backward between layers.
type Derivative = nn.Derivative

// NewProps returns an empty backward carrier.
func NewProps() Props {
	return nn.NewProps()
}

// Elementwise lifts a scalar derivative to the vector form.
func Elementwise(fn func(float64) float64) Derivative {
	return nn.Elementwise(fn)
}

// Layers

// Dense is the weighted linear layer: out = W·x + b.
type Dense = nn.Dense

// NewDense builds a dense layer with rows outputs and cols inputs.
// Pass cols 0 to infer the input size from the previous layer.
//
// Example:
//
//	layer := nn.NewDense(3, 2)
func NewDense(rows, cols int) *Dense {
	return nn.NewDense(rows, cols)
}

// NewDenseFrom builds a dense layer with explicit weights and biases.
func NewDenseFrom(weights [][]float64, biases []float64) (*Dense, error) {
	return nn.NewDenseFrom(weights, biases)
}

// Activation is a stateless function layer.
type Activation = nn.Activation

// New builds one of the named built-in activations: relu, sigmoid,
// tanh, or softmax.
func New(name string) (*Activation, error) {
	return nn.New(name)
}

// NewActivation builds an elementwise activation from an arbitrary
// (activator, derivative) pair.
func NewActivation(name string, fn, deriv func(float64) float64) *Activation {
	return nn.NewActivation(name, fn, deriv)
}

// NewVectorActivation builds a whole-vector activation.
func NewVectorActivation(name string, fn func([]float64) []float64, deriv Derivative) *Activation {
	return nn.NewVectorActivation(name, fn, deriv)
}

// NewReLU returns a rectifier with threshold 0.
func NewReLU() *Activation {
	return nn.NewReLU()
}

// NewReLUThreshold returns a rectifier with an arbitrary threshold.
func NewReLUThreshold(t float64) *Activation {
	return nn.NewReLUThreshold(t)
}

// NewSigmoid returns the logistic activation.
func NewSigmoid() *Activation {
	return nn.NewSigmoid()
}

// NewTanh returns the hyperbolic tangent activation.
func NewTanh() *Activation {
	return nn.NewTanh()
}

// NewSoftmax returns the normalized-exponential activation. Its
// declared derivative reuses the tanh derivative; see
// NewSoftmaxDiagonal for the corrected variant.
func NewSoftmax() *Activation {
	return nn.NewSoftmax()
}

// NewSoftmaxDiagonal returns a softmax whose derivative is the
// diagonal of the softmax Jacobian.
func NewSoftmaxDiagonal() *Activation {
	return nn.NewSoftmaxDiagonal()
}

// Sequence

// Sequence is the ordered composite layer driving forward and backward
// passes and training steps.
type Sequence = nn.Sequence

// Pair is one training example.
type Pair = nn.Pair

// Option configures a Sequence at construction.
type Option = nn.Option

// ErrorCalc adjusts the per-output error before the loss derivative is
// computed.
type ErrorCalc = nn.ErrorCalc

// NewSequence builds a composite over the given layers.
//
// Example:
//
//	seq := nn.NewSequence([]nn.Layer{
//	    nn.NewDense(4, 2),
//	    nn.NewSigmoid(),
//	    nn.NewDense(1, 0),
//	}, nn.WithLearnRate(0.1))
func NewSequence(layers []Layer, opts ...Option) *Sequence {
	return nn.NewSequence(layers, opts...)
}

// WithLearnRate sets the learning rate handed to every layer.
func WithLearnRate(rate float64) Option {
	return nn.WithLearnRate(rate)
}

// WithErrorCalc sets the error-transform hook.
func WithErrorCalc(fn ErrorCalc) Option {
	return nn.WithErrorCalc(fn)
}

// Errors

// ErrNotInitialized is returned when a Sequence is asked to train or
// predict before a successful Init pass.
var ErrNotInitialized = nn.ErrNotInitialized

// InitError aggregates every failing layer's reason from a Sequence
// initialization pass.
type InitError = nn.InitError

// LayerFailure records one layer's initialization failure.
type LayerFailure = nn.LayerFailure

// InvariantViolation reports chain-rule terms left unconsumed after a
// full backward pass.
type InvariantViolation = nn.InvariantViolation
