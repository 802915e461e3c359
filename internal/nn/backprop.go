package nn

// Derivative is a chain-rule term threaded backward between layers.
// It receives a layer's cached pre-activation values and returns the
// derivative evaluated at each of them.
//
// The vector form exists so whole-vector activations can evaluate their
// derivative over the entire input at once; elementwise activations
// wrap a scalar function with Elementwise.
type Derivative func(values []float64) []float64

// Elementwise lifts a scalar derivative to the vector form.
func Elementwise(fn func(float64) float64) Derivative {
	return func(values []float64) []float64 {
		out := make([]float64, len(values))
		for i, v := range values {
			out[i] = fn(v)
		}
		return out
	}
}

// identity is the derivative drained when nothing is pending: a weighted
// layer with no adjacent activation scales its gradient by 1.
func identity(values []float64) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = 1
	}
	return out
}

// Props is the backward carrier for chain-rule terms that are not part
// of the error vector itself. An Activation puts its derivative here;
// the next weighted layer in the reverse fold takes and applies it.
//
// The carrier holds at most one pending term by design: every
// Activation must be followed by a weighted layer that consumes its
// derivative. Sequence's training step checks that the carrier is empty
// after a full backward pass and reports an InvariantViolation when a
// term was produced that nothing consumed.
//
// Props is a value type; Put and Take return an updated copy.
type Props struct {
	pending []Derivative
}

// NewProps returns an empty carrier.
func NewProps() Props {
	return Props{}
}

// PutDerivative appends a pending chain-rule term.
func (p Props) PutDerivative(fn Derivative) Props {
	pending := make([]Derivative, len(p.pending), len(p.pending)+1)
	copy(pending, p.pending)
	return Props{pending: append(pending, fn)}
}

// TakeDerivative removes and returns the most recently put term. When
// nothing is pending it returns the identity derivative.
func (p Props) TakeDerivative() (Derivative, Props) {
	n := len(p.pending)
	if n == 0 {
		return identity, p
	}
	fn := p.pending[n-1]
	rest := make([]Derivative, n-1)
	copy(rest, p.pending[:n-1])
	return fn, Props{pending: rest}
}

// Pending returns the number of unconsumed terms.
func (p Props) Pending() int {
	return len(p.pending)
}
