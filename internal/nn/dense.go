package nn

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/stax-ml/stax/internal/data"
)

// Dense is the weighted linear layer: out = W·x + b with W shaped
// [rows, cols] (rows outputs, cols inputs).
//
// Feedforward caches the input and the pre-activation output; Backprop
// needs both from the same forward pass. Backprop drains at most one
// derivative from the backward carrier, applies a learning-rate-scaled
// update, and propagates the error to the previous layer through Wᵀ.
// Like every layer, updates produce a new Dense value.
type Dense struct {
	rows int
	cols int

	weights   *mat.Dense
	bias      *mat.VecDense
	learnRate float64

	input *mat.VecDense // cache: last input
	sums  *mat.VecDense // cache: last pre-activation output
}

// NewDense builds a dense layer with rows outputs and cols inputs.
// Pass cols 0 to infer the input size from the previous layer during
// initialization. Weights are filled in by Init.
func NewDense(rows, cols int) *Dense {
	return &Dense{rows: rows, cols: cols}
}

// NewDenseFrom builds a dense layer with explicit weights and biases,
// one weight row and one bias per output.
func NewDenseFrom(weights [][]float64, biases []float64) (*Dense, error) {
	w, err := data.NewMatrix(weights)
	if err != nil {
		return nil, err
	}
	if len(biases) != w.Rows() {
		return nil, fmt.Errorf("nn: %d biases for %d output rows", len(biases), w.Rows())
	}
	b := make([]float64, len(biases))
	copy(b, biases)
	return &Dense{
		rows:    w.Rows(),
		cols:    w.Cols(),
		weights: w.Dense(),
		bias:    mat.NewVecDense(len(b), b),
	}, nil
}

// Rows returns the number of outputs.
func (d *Dense) Rows() int { return d.rows }

// Cols returns the number of inputs, 0 until inferred.
func (d *Dense) Cols() int { return d.cols }

// OutputSize reports the layer's output width for neighbor inference.
func (d *Dense) OutputSize() int { return d.rows }

// Weights returns a snapshot of the weight matrix.
func (d *Dense) Weights() *data.Matrix {
	m, err := data.Cast(matFlat(d.weights), data.Shape{d.rows, d.cols})
	if err != nil {
		panic(fmt.Sprintf("Dense.Weights: %v", err))
	}
	return m.(*data.Matrix)
}

// Biases returns a copy of the bias vector.
func (d *Dense) Biases() []float64 {
	out := make([]float64, d.rows)
	copy(out, d.bias.RawVector().Data)
	return out
}

// Init resolves the layer's dimensions and fills in any missing
// weights. A layer built without an input size takes it from the
// previous layer's output width.
func (d *Dense) Init(ctx Ctx) (Layer, error) {
	next := *d

	if next.rows <= 0 {
		return nil, fmt.Errorf("dense layer needs a positive output size, got %d", next.rows)
	}
	if next.cols <= 0 {
		if prev, ok := ctx.Prev.(OutputSized); ok {
			next.cols = prev.OutputSize()
		}
		if next.cols <= 0 {
			return nil, fmt.Errorf("dense layer has no input size and no sized previous layer to infer it from")
		}
	}

	if next.weights == nil {
		next.weights = xavierWeights(next.rows, next.cols)
	}
	if next.bias == nil {
		next.bias = mat.NewVecDense(next.rows, nil)
	}
	wr, wc := next.weights.Dims()
	if wr != next.rows || wc != next.cols {
		return nil, fmt.Errorf("dense layer weights are %dx%d, want %dx%d", wr, wc, next.rows, next.cols)
	}

	next.learnRate = ctx.LearnRate
	return &next, nil
}

// Feedforward computes W·x + b and returns an updated Dense caching the
// input and the pre-activation output.
func (d *Dense) Feedforward(input data.Data) (Layer, data.Data) {
	flat := input.FlatList()
	if len(flat) != d.cols {
		panic(fmt.Sprintf("Dense.Feedforward: expected input with %d values, got %d", d.cols, len(flat)))
	}

	x := mat.NewVecDense(d.cols, flat)
	sums := mat.NewVecDense(d.rows, nil)
	sums.MulVec(d.weights, x)
	sums.AddVec(sums, d.bias)

	next := *d
	next.input = x
	next.sums = sums
	return &next, data.NewList(vecFlat(sums))
}

// Backprop drains a pending derivative, applies it to the cached
// pre-activation output, updates weights and bias, and propagates the
// error signal through the transpose of the pre-update weights.
//
// The weight gradient is the summed-squared-error slope taken per
// output, −2·err_i·deriv_i·input_j. The network-level scalar arrives
// through the protocol but already appears here in per-output form;
// multiplying it in again would square the error term and turn descent
// steps into ascent ones whenever the error is negative.
func (d *Dense) Backprop(_ float64, errSignal data.Data, props Props) (Layer, data.Data, Props) {
	if d.input == nil || d.sums == nil {
		panic("Dense.Backprop: no cached forward pass")
	}

	deriv, props := props.TakeDerivative()
	dvals := deriv(vecFlat(d.sums))

	errs := errSignal.FlatList()
	if len(errs) != d.rows {
		panic(fmt.Sprintf("Dense.Backprop: expected error signal with %d values, got %d", d.rows, len(errs)))
	}

	delta := mat.NewVecDense(d.rows, nil)
	for i := 0; i < d.rows; i++ {
		delta.SetVec(i, errs[i]*dvals[i])
	}

	// Outgoing error uses the pre-update weights.
	outgoing := mat.NewVecDense(d.cols, nil)
	outgoing.MulVec(d.weights.T(), delta)

	// W ← W − lr·(−2·delta⊗input), b ← b − lr·(−2·delta).
	step := 2 * d.learnRate
	weights := &mat.Dense{}
	weights.RankOne(d.weights, step, delta, d.input)
	bias := mat.NewVecDense(d.rows, nil)
	bias.AddScaledVec(d.bias, step, delta)

	next := *d
	next.weights = weights
	next.bias = bias
	return &next, data.NewList(vecFlat(outgoing)), props
}

// xavierWeights draws uniform values from the Xavier/Glorot bound
// sqrt(6/(fan_in + fan_out)).
func xavierWeights(rows, cols int) *mat.Dense {
	bound := math.Sqrt(6.0 / float64(rows+cols))
	w := make([]float64, rows*cols)
	for i := range w {
		//nolint:gosec // math/rand for weight initialization (not security-critical)
		w[i] = (rand.Float64()*2.0 - 1.0) * bound
	}
	return mat.NewDense(rows, cols, w)
}

func vecFlat(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

func matFlat(m *mat.Dense) []float64 {
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}
