package ode

import (
	"errors"
	"fmt"
)

// Domain errors for integration calls.
var (
	// ErrNotSupported indicates a feature the selected method does not
	// implement, e.g. adaptive grid generation on a predefined-only
	// stepper. Fails immediately, no partial trajectory is produced.
	ErrNotSupported = errors.New("ode: feature not supported by this method")

	// ErrNewtonDiverged indicates the chord Newton corrector hit its
	// iteration cap without the correction norm dropping below tolerance.
	ErrNewtonDiverged = errors.New("ode: newton corrector failed to converge")

	// ErrSingularMatrix indicates the iteration matrix could not be
	// factorized or solved against.
	ErrSingularMatrix = errors.New("ode: iteration matrix is singular")

	// ErrGridNotIncreasing indicates an output grid whose points are not
	// strictly increasing.
	ErrGridNotIncreasing = errors.New("ode: output grid must be strictly increasing")

	// ErrGridTooShort indicates a grid with too few points for the
	// requested method.
	ErrGridTooShort = errors.New("ode: output grid has too few points")

	// ErrBadStep indicates a non-positive step size or an empty span.
	ErrBadStep = errors.New("ode: step size and span must be positive")

	// ErrDimensionMismatch indicates state and problem dimensions differ.
	ErrDimensionMismatch = errors.New("ode: dimension mismatch between state and system")
)

// StepError wraps an error with the step index and x at which it occurred.
type StepError struct {
	Step    int
	X       float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (x=%.6g): %s", e.Step, e.X, e.Wrapped.Error())
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
