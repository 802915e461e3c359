package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stax-ml/stax/internal/data"
)

func initDense(t *testing.T, d *Dense, ctx Ctx) *Dense {
	t.Helper()
	l, err := d.Init(ctx)
	require.NoError(t, err)
	return l.(*Dense)
}

func TestDense_Forward(t *testing.T) {
	d, err := NewDenseFrom([][]float64{{1, 2}, {3, 4}}, []float64{0.5, 1.0})
	require.NoError(t, err)
	d = initDense(t, d, Ctx{LearnRate: 0.1})

	_, out := d.Feedforward(data.NewList([]float64{1, 1}))
	assert.Equal(t, []float64{3.5, 8.0}, out.FlatList())
}

func TestDense_InitFillsWeights(t *testing.T) {
	d := initDense(t, NewDense(3, 2), Ctx{LearnRate: 0.1})

	assert.Equal(t, 3, d.Rows())
	assert.Equal(t, 2, d.Cols())

	w := d.Weights()
	assert.True(t, w.Shape().Equal(data.Shape{3, 2}))
	assert.Equal(t, []float64{0, 0, 0}, d.Biases())
}

func TestDense_InitInfersInputSize(t *testing.T) {
	prev := initDense(t, NewDense(4, 2), Ctx{})
	d := initDense(t, NewDense(3, 0), Ctx{Prev: prev})
	assert.Equal(t, 4, d.Cols())
}

func TestDense_InitFailures(t *testing.T) {
	_, err := NewDense(0, 2).Init(Ctx{})
	assert.Error(t, err)

	// No input size and nothing to infer it from.
	_, err = NewDense(2, 0).Init(Ctx{})
	assert.Error(t, err)
	_, err = NewDense(2, 0).Init(Ctx{Prev: NewSigmoid()})
	assert.Error(t, err)
}

func TestDense_BackpropUpdatesWeights(t *testing.T) {
	d, err := NewDenseFrom([][]float64{{0.5, -0.5}}, []float64{0})
	require.NoError(t, err)
	d = initDense(t, d, Ctx{LearnRate: 0.1})

	l, _ := d.Feedforward(data.NewList([]float64{1, 2}))
	fed := l.(*Dense)

	l, outErr, props := fed.Backprop(-0.5, data.NewList([]float64{0.25}), NewProps())
	updated := l.(*Dense)

	// Identity derivative drained, so delta = err = 0.25.
	// Outgoing error through the pre-update transpose: [0.5, -0.5]·0.25.
	assert.InDelta(t, 0.125, outErr.FlatList()[0], 1e-12)
	assert.InDelta(t, -0.125, outErr.FlatList()[1], 1e-12)
	assert.Equal(t, 0, props.Pending())

	// W += 2·lr·delta⊗input = [[0.05, 0.1]].
	w := updated.Weights()
	assert.InDelta(t, 0.55, w.At(0, 0), 1e-12)
	assert.InDelta(t, -0.4, w.At(0, 1), 1e-12)
	assert.InDelta(t, 0.05, updated.Biases()[0], 1e-12)

	// The layer that ran the forward pass is untouched.
	assert.InDelta(t, 0.5, fed.Weights().At(0, 0), 1e-12)
	assert.Equal(t, []float64{0}, fed.Biases())
}

func TestDense_BackpropAppliesDrainedDerivative(t *testing.T) {
	d, err := NewDenseFrom([][]float64{{1, 0}}, []float64{0})
	require.NoError(t, err)
	d = initDense(t, d, Ctx{LearnRate: 0.5})

	l, _ := d.Feedforward(data.NewList([]float64{1, 1}))
	fed := l.(*Dense)

	props := NewProps().PutDerivative(constant(3))
	l, _, props = fed.Backprop(0, data.NewList([]float64{0.1}), props)

	// delta = err·deriv = 0.3; W += 2·0.5·0.3·input.
	w := l.(*Dense).Weights()
	assert.InDelta(t, 1.3, w.At(0, 0), 1e-12)
	assert.Equal(t, 0, props.Pending())
}

func TestDense_FeedforwardRejectsWrongWidth(t *testing.T) {
	d, err := NewDenseFrom([][]float64{{1, 2}}, []float64{0})
	require.NoError(t, err)

	assert.Panics(t, func() {
		d.Feedforward(data.NewList([]float64{1, 2, 3}))
	})
}
