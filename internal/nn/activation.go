package nn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/stax-ml/stax/internal/data"
)

// funcKind tags how an activation function is applied.
type funcKind int

const (
	elementwiseFunc funcKind = iota // applied to each value independently
	wholeVectorFunc                 // applied to the whole vector at once
)

// Activation is a stateless function layer: an immutable (activator,
// derivative) pair plus a cache of the last output.
//
// Feedforward applies the activator. Backprop does not transform the
// error signal; it only registers the derivative into the backward
// carrier for the adjacent weighted layer to apply.
type Activation struct {
	name       string
	kind       funcKind
	scalarFn   func(float64) float64
	vectorFn   func([]float64) []float64
	derivative Derivative
	width      int
	output     data.Data
}

// NewActivation builds an elementwise activation from an arbitrary
// user-supplied (activator, derivative) pair.
func NewActivation(name string, fn, deriv func(float64) float64) *Activation {
	var d Derivative
	if deriv != nil {
		d = Elementwise(deriv)
	}
	return &Activation{
		name:       name,
		kind:       elementwiseFunc,
		scalarFn:   fn,
		derivative: d,
	}
}

// NewVectorActivation builds a whole-vector activation from an arbitrary
// user-supplied activator and derivative.
func NewVectorActivation(name string, fn func([]float64) []float64, deriv Derivative) *Activation {
	return &Activation{
		name:       name,
		kind:       wholeVectorFunc,
		vectorFn:   fn,
		derivative: deriv,
	}
}

// New builds one of the named built-in activations: relu, sigmoid,
// tanh, or softmax.
func New(name string) (*Activation, error) {
	switch name {
	case "relu":
		return NewReLU(), nil
	case "sigmoid":
		return NewSigmoid(), nil
	case "tanh":
		return NewTanh(), nil
	case "softmax":
		return NewSoftmax(), nil
	default:
		return nil, fmt.Errorf("nn: unknown activation %q", name)
	}
}

// NewReLU returns a rectifier with threshold 0: f(x) = max(x, 0).
func NewReLU() *Activation {
	return NewReLUThreshold(0)
}

// NewReLUThreshold returns a rectifier with an arbitrary threshold:
// f(x) = max(x, t), with derivative 1 above the threshold and 0 below.
func NewReLUThreshold(t float64) *Activation {
	a := NewActivation("relu", func(x float64) float64 {
		return math.Max(x, t)
	}, func(x float64) float64 {
		if x > t {
			return 1
		}
		return 0
	})
	if t != 0 {
		a.name = fmt.Sprintf("relu(%g)", t)
	}
	return a
}

// NewSigmoid returns the logistic activation σ(x) = 1/(1+e^-x),
// clamped to 1 for x > 100 and 0 for x < -100 to avoid overflow.
func NewSigmoid() *Activation {
	return NewActivation("sigmoid", sigmoid, func(x float64) float64 {
		s := sigmoid(x)
		return s * (1 - s)
	})
}

// NewTanh returns the hyperbolic tangent activation.
func NewTanh() *Activation {
	return NewActivation("tanh", math.Tanh, tanhDerivative)
}

// NewSoftmax returns the normalized-exponential activation, applied
// over the whole vector: e^xi / Σe^xj.
//
// The declared derivative reuses the tanh derivative instead of the
// softmax Jacobian. This is a known quirk carried over for
// compatibility; NewSoftmaxDiagonal is the corrected variant.
func NewSoftmax() *Activation {
	return NewVectorActivation("softmax", softmax, Elementwise(tanhDerivative))
}

// NewSoftmaxDiagonal returns a softmax whose derivative is the diagonal
// of the softmax Jacobian, s·(1−s), evaluated over the whole input
// vector.
func NewSoftmaxDiagonal() *Activation {
	return NewVectorActivation("softmax_diagonal", softmax, func(values []float64) []float64 {
		s := softmax(values)
		for i, v := range s {
			s[i] = v * (1 - v)
		}
		return s
	})
}

// Name returns the activation's symbolic name.
func (a *Activation) Name() string {
	return a.name
}

// Output returns the cached output of the last Feedforward, or nil.
func (a *Activation) Output() data.Data {
	return a.output
}

// OutputSize reports the width relayed from the previous layer during
// Init, or 0 when unknown. An activation preserves its input width, so
// relaying lets a following layer infer its own input size.
func (a *Activation) OutputSize() int {
	return a.width
}

// Init checks that the activation carries an activator and a
// derivative, and records the previous layer's output width for
// neighbor inference.
func (a *Activation) Init(ctx Ctx) (Layer, error) {
	if a.scalarFn == nil && a.vectorFn == nil {
		return nil, fmt.Errorf("activation %q has no activator function", a.name)
	}
	if a.derivative == nil {
		return nil, fmt.Errorf("activation %q has no derivative function", a.name)
	}

	next := *a
	if prev, ok := ctx.Prev.(OutputSized); ok {
		next.width = prev.OutputSize()
	}
	return &next, nil
}

// Feedforward applies the activator and returns an updated Activation
// caching the output. The output keeps the input's shape.
func (a *Activation) Feedforward(input data.Data) (Layer, data.Data) {
	flat := input.FlatList()

	var out []float64
	if a.kind == wholeVectorFunc {
		out = a.vectorFn(flat)
	} else {
		out = make([]float64, len(flat))
		for i, v := range flat {
			out[i] = a.scalarFn(v)
		}
	}

	output, err := data.Cast(out, input.Shape())
	if err != nil {
		panic(fmt.Sprintf("Activation.Feedforward: %v", err))
	}

	next := *a
	next.output = output
	return &next, output
}

// Backprop passes the error signal through unchanged and registers the
// derivative for the next weighted layer in the reverse fold.
func (a *Activation) Backprop(_ float64, errSignal data.Data, props Props) (Layer, data.Data, Props) {
	return a, errSignal, props.PutDerivative(a.derivative)
}

func sigmoid(x float64) float64 {
	switch {
	case x > 100:
		return 1
	case x < -100:
		return 0
	}
	return 1 / (1 + math.Exp(-x))
}

func tanhDerivative(x float64) float64 {
	t := math.Tanh(x)
	return 1 - t*t
}

// softmax computes e^xi / Σe^xj, shifted by the max for stability.
func softmax(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	out := make([]float64, len(values))
	shift := floats.Max(values)
	for i, v := range values {
		out[i] = math.Exp(v - shift)
	}
	total := floats.Sum(out)
	for i := range out {
		out[i] /= total
	}
	return out
}
