package nn

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInitialized is returned when a Sequence is asked to train or
// predict before a successful Init pass.
var ErrNotInitialized = errors.New("nn: sequence is not initialized")

// LayerFailure records one layer's initialization failure.
type LayerFailure struct {
	Index int
	Err   error
}

// InitError aggregates every failing layer's reason from a Sequence
// initialization pass. Initialization deliberately visits all layers
// before reporting, so misconfiguration is diagnosable in one pass.
type InitError struct {
	Failures []LayerFailure
}

func (e *InitError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "nn: %d layer(s) failed to initialize:", len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&b, " [layer %d: %v]", f.Index, f.Err)
	}
	return b.String()
}

// Unwrap exposes the per-layer reasons to errors.Is and errors.As.
func (e *InitError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// InvariantViolation reports chain-rule terms left unconsumed after a
// full backward pass: an Activation produced a derivative that no later
// weighted layer drained.
type InvariantViolation struct {
	Pending int
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("nn: %d unconsumed derivative(s) after backward pass (every activation must be followed by a weighted layer)", e.Pending)
}
