package nn

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/stax-ml/stax/internal/data"
)

// ErrorCalc adjusts the per-output error vector before the loss
// derivative is computed. The identity transform applies when absent.
type ErrorCalc func(errs []float64) []float64

// Pair is one training example: an input and its label, both castable
// into the containers the layer stack expects.
type Pair struct {
	Input any
	Label any
}

// Sequence is the ordered composite layer: it owns its child layers,
// drives windowed initialization, the forward fold, and the reverse
// backward fold, and runs training steps.
//
// A Sequence becomes trainable only after a successful one-time Init
// pass. Like every layer it is immutable: operations return an updated
// Sequence and the caller threads it forward.
type Sequence struct {
	layers      []Layer
	learnRate   float64
	initialized bool
	errorCalc   ErrorCalc
}

// Option configures a Sequence at construction.
type Option func(*Sequence)

// WithLearnRate sets the learning rate handed to every layer.
func WithLearnRate(rate float64) Option {
	return func(s *Sequence) { s.learnRate = rate }
}

// WithErrorCalc sets the error-transform hook applied to the per-output
// error before the loss derivative is computed.
func WithErrorCalc(fn ErrorCalc) Option {
	return func(s *Sequence) { s.errorCalc = fn }
}

// NewSequence builds a composite over the given layers. The learning
// rate defaults to 1.
func NewSequence(layers []Layer, opts ...Option) *Sequence {
	s := &Sequence{
		layers:    append([]Layer(nil), layers...),
		learnRate: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of child layers.
func (s *Sequence) Len() int { return len(s.layers) }

// Layer returns the child layer at index i.
func (s *Sequence) Layer(i int) Layer { return s.layers[i] }

// Initialized reports whether the one-time Init pass has succeeded.
func (s *Sequence) Initialized() bool { return s.initialized }

// LearnRate returns the learning rate handed to the layers.
func (s *Sequence) LearnRate() float64 { return s.learnRate }

// OutputSize reports the output width of the last sized child layer,
// or 0 when unknown, so nested composites can feed neighbor inference.
func (s *Sequence) OutputSize() int {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if l, ok := s.layers[i].(OutputSized); ok {
			if n := l.OutputSize(); n > 0 {
				return n
			}
		}
	}
	return 0
}

// with returns a copy of s holding the given child layers.
func (s *Sequence) with(layers []Layer) *Sequence {
	next := *s
	next.layers = layers
	return &next
}

// Initialize runs the one-time Init pass and returns the initialized
// Sequence. On failure it returns an InitError naming every failing
// layer; no partially initialized Sequence is produced.
func (s *Sequence) Initialize() (*Sequence, error) {
	l, err := s.Init(Ctx{LearnRate: s.learnRate})
	if err != nil {
		return nil, err
	}
	return l.(*Sequence), nil
}

// Init initializes every child layer with its neighbor window: a
// size-3 sliding window (previous, current, next) over the layer list,
// nil-padded at both edges, so a layer without explicit dimensions can
// infer them from its neighbors. All failures are collected before
// reporting.
func (s *Sequence) Init(_ Ctx) (Layer, error) {
	if len(s.layers) == 0 {
		return nil, &InitError{Failures: []LayerFailure{
			{Index: 0, Err: fmt.Errorf("sequence has no layers")},
		}}
	}

	initialized := make([]Layer, len(s.layers))
	var failures []LayerFailure

	for i, layer := range s.layers {
		ctx := Ctx{LearnRate: s.learnRate}
		if i > 0 {
			// Neighbors see already-initialized state where available.
			ctx.Prev = initialized[i-1]
			if ctx.Prev == nil {
				ctx.Prev = s.layers[i-1]
			}
		}
		if i < len(s.layers)-1 {
			ctx.Next = s.layers[i+1]
		}

		l, err := layer.Init(ctx)
		if err != nil {
			failures = append(failures, LayerFailure{Index: i, Err: err})
			continue
		}
		initialized[i] = l
	}

	if len(failures) > 0 {
		return nil, &InitError{Failures: failures}
	}

	next := s.with(initialized)
	next.initialized = true
	return next, nil
}

// Feedforward folds the layers in definition order, threading each
// layer's output into the next layer's input. It returns the final
// output plus a Sequence holding every layer's refreshed cache, which a
// backward pass in the same cycle depends on.
func (s *Sequence) Feedforward(input data.Data) (Layer, data.Data) {
	updated := make([]Layer, len(s.layers))
	out := input
	for i, layer := range s.layers {
		updated[i], out = layer.Feedforward(out)
	}
	return s.with(updated), out
}

// Backprop folds the layers in reverse order. The network-level loss
// derivative goes to every layer unchanged; the error signal threaded
// backward is the output of the layer processed just before, and the
// carrier moves chain-rule terms between activation and weighted
// layers.
func (s *Sequence) Backprop(lossGrad float64, errSignal data.Data, props Props) (Layer, data.Data, Props) {
	updated := make([]Layer, len(s.layers))
	sig := errSignal
	for i := len(s.layers) - 1; i >= 0; i-- {
		updated[i], sig, props = s.layers[i].Backprop(lossGrad, sig, props)
	}
	return s.with(updated), sig, props
}

// Predict runs a forward pass on an initialized Sequence and returns
// the output, discarding the refreshed cache state.
func (s *Sequence) Predict(input any) (data.Data, error) {
	if !s.initialized {
		return nil, ErrNotInitialized
	}
	in, err := data.Infer(input)
	if err != nil {
		return nil, err
	}
	_, out := s.Feedforward(in)
	return out, nil
}

// TrainOnce runs one full training step: a forward pass, per-output
// error as label − prediction, the optional error transform, the
// summed-squared-error loss derivative −2·Σerror, and exactly one
// backward pass adopting the updated layers.
//
// It returns the updated Sequence and the summed squared error of the
// forward pass. A non-empty backward carrier after the pass is an
// InvariantViolation.
func (s *Sequence) TrainOnce(input, label any) (*Sequence, float64, error) {
	if !s.initialized {
		return nil, 0, ErrNotInitialized
	}

	in, err := data.Infer(input)
	if err != nil {
		return nil, 0, err
	}
	forward, out := s.Feedforward(in)

	preds := out.FlatList()
	want, err := data.Flatten(label)
	if err != nil {
		return nil, 0, err
	}
	if len(want) != len(preds) {
		return nil, 0, &data.ShapeError{
			Reason: fmt.Sprintf("%d label values for %d predictions", len(want), len(preds)),
		}
	}

	errs := make([]float64, len(preds))
	for i := range errs {
		errs[i] = want[i] - preds[i]
	}
	loss := floats.Dot(errs, errs)

	adjusted := errs
	if s.errorCalc != nil {
		adjusted = s.errorCalc(errs)
	}
	lossGrad := -2 * floats.Sum(adjusted)

	backward, _, props := forward.(*Sequence).Backprop(lossGrad, data.NewList(adjusted), NewProps())
	if props.Pending() != 0 {
		return nil, 0, &InvariantViolation{Pending: props.Pending()}
	}

	return backward.(*Sequence), loss, nil
}

// Train folds TrainOnce over a fixed epoch count, cycling the training
// pairs in order. It returns the trained Sequence and the summed
// squared error of the final step.
func (s *Sequence) Train(pairs []Pair, epochs int) (*Sequence, float64, error) {
	if len(pairs) == 0 {
		return nil, 0, fmt.Errorf("nn: no training pairs")
	}

	seq := s
	var loss float64
	var err error
	for epoch := 0; epoch < epochs; epoch++ {
		for _, pair := range pairs {
			seq, loss, err = seq.TrainOnce(pair.Input, pair.Label)
			if err != nil {
				return nil, 0, err
			}
		}
	}
	return seq, loss, nil
}
