package ode

import (
	"errors"
	"math"
	"testing"
)

func TestStateClone(t *testing.T) {
	s := State{1, 2, 3}
	c := s.Clone()
	c[0] = 9
	if s[0] != 1 {
		t.Error("clone should not share backing array")
	}
}

func TestStateIsValid(t *testing.T) {
	if !(State{1, -2, 0}).IsValid() {
		t.Error("finite state should be valid")
	}
	if (State{1, math.NaN()}).IsValid() {
		t.Error("NaN state should be invalid")
	}
	if (State{math.Inf(1)}).IsValid() {
		t.Error("Inf state should be invalid")
	}
}

func TestStateNorm(t *testing.T) {
	if got := (State{3, 4}).Norm(); math.Abs(got-5) > 1e-15 {
		t.Errorf("expected norm 5, got %g", got)
	}
}

func TestOptionsLookup(t *testing.T) {
	opts := Options{"tol_iter": 1e-10, "iter_max": 30}

	if got := opts.Float(OptTolIter, 1e-12); got != 1e-10 {
		t.Errorf("expected 1e-10, got %g", got)
	}
	if got := opts.Float("missing", 7); got != 7 {
		t.Errorf("expected default 7, got %g", got)
	}
	if got := opts.Int(OptIterMax, 20); got != 30 {
		t.Errorf("expected 30, got %d", got)
	}
}

func TestOptionsUnrecognized(t *testing.T) {
	opts := Options{"tol_iter": 1e-10, "zebra": 1, "apple": 2}

	extra := opts.Unrecognized(OptTolIter, OptIterMax)
	if len(extra) != 2 || extra[0] != "apple" || extra[1] != "zebra" {
		t.Errorf("expected sorted [apple zebra], got %v", extra)
	}
	if extra := Options(nil).Unrecognized(OptTolIter); extra != nil {
		t.Errorf("nil options should have no unrecognized keys, got %v", extra)
	}
}

func TestResultLast(t *testing.T) {
	r := &Result{X: []float64{0, 1}, Y: []State{{1}, {0.5}}}
	x, y := r.Last()
	if x != 1 || y[0] != 0.5 {
		t.Errorf("expected (1, [0.5]), got (%g, %v)", x, y)
	}

	empty := &Result{}
	if x, y := empty.Last(); x != 0 || y != nil {
		t.Error("empty result should return zero values")
	}
}

func TestStepError(t *testing.T) {
	err := &StepError{Step: 3, X: 0.25, Wrapped: ErrNewtonDiverged}

	if !errors.Is(err, ErrNewtonDiverged) {
		t.Error("StepError should unwrap to its cause")
	}
	msg := err.Error()
	if msg == "" || msg == ErrNewtonDiverged.Error() {
		t.Errorf("expected contextual message, got %q", msg)
	}
}
