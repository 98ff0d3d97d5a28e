package steppers

import (
	"math"
	"testing"

	"github.com/slayoo/odesys/internal/problems"
)

func TestBackwardEulerDecay(t *testing.T) {
	p := problems.NewDecay(1.0)
	xout := uniformGrid(0, 1, 100)

	yout, stats, err := NewBackwardEuler().IntegratePredefined(p.RHS(), p.Jacobian(), p.Initial(), xout, nil)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	want := math.Exp(-1)
	got := yout[len(yout)-1][0]
	if math.Abs(got-want)/want > 0.01 {
		t.Errorf("y(1): got %.6f, expected %.6f within 1%%", got, want)
	}
	if stats.NFev != 100 {
		t.Errorf("expected reported nfev 100, got %d", stats.NFev)
	}
}

func TestBackwardEulerNewtonConvergesFast(t *testing.T) {
	p := problems.NewDecay(1.0)
	c := &countingRHS{rhs: p.RHS()}
	xout := uniformGrid(0, 1, 100)

	_, _, err := NewBackwardEuler().IntegratePredefined(c.eval, p.Jacobian(), p.Initial(), xout, nil)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}

	// One predictor evaluation plus a handful of corrector iterations
	// per step. On this linear, well-conditioned problem the chord
	// iteration reaches 1e-12 in a few iterations.
	if c.calls > 100*6 {
		t.Errorf("newton loop too slow: %d RHS evaluations over 100 steps", c.calls)
	}
}

func TestTrapezoidalDecay(t *testing.T) {
	p := problems.NewDecay(1.0)
	xout := uniformGrid(0, 1, 100)

	youtTr, _, err := NewTrapezoidal().IntegratePredefined(p.RHS(), p.Jacobian(), p.Initial(), xout, nil)
	if err != nil {
		t.Fatalf("trapezoidal failed: %v", err)
	}
	youtBE, _, err := NewBackwardEuler().IntegratePredefined(p.RHS(), p.Jacobian(), p.Initial(), xout, nil)
	if err != nil {
		t.Fatalf("backward euler failed: %v", err)
	}

	want := math.Exp(-1)
	errTr := math.Abs(youtTr[len(youtTr)-1][0] - want)
	errBE := math.Abs(youtBE[len(youtBE)-1][0] - want)
	if errTr >= errBE {
		t.Errorf("trapezoidal (%g) should beat backward Euler (%g)", errTr, errBE)
	}
	if errTr > 1e-4 {
		t.Errorf("trapezoidal error too large: %g", errTr)
	}
}

// The step result is the average of the corrected implicit endpoint and
// the forward-Euler prediction, not the corrected endpoint itself.
func TestTrapezoidalAveragesEndpoint(t *testing.T) {
	p := problems.NewDecay(1.0)
	xout := []float64{0, 0.1}

	youtTr, _, err := NewTrapezoidal().IntegratePredefined(p.RHS(), p.Jacobian(), p.Initial(), xout, nil)
	if err != nil {
		t.Fatalf("trapezoidal failed: %v", err)
	}
	youtBE, _, err := NewBackwardEuler().IntegratePredefined(p.RHS(), p.Jacobian(), p.Initial(), xout, nil)
	if err != nil {
		t.Fatalf("backward euler failed: %v", err)
	}

	h := 0.1
	y0 := 1.0
	fwDy := h * -y0 // h*f(x, y0)
	want := (youtBE[1][0] + y0 + fwDy) / 2
	if math.Abs(youtTr[1][0]-want) > 1e-14 {
		t.Errorf("expected averaged output %.15f, got %.15f", want, youtTr[1][0])
	}
}

func TestImplicitOnStiffVanDerPol(t *testing.T) {
	p := problems.NewVanDerPol(5.0)
	xout := uniformGrid(0, 1, 200)

	yout, _, err := NewBackwardEuler().IntegratePredefined(p.RHS(), p.Jacobian(), p.Initial(), xout, nil)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	for i, y := range yout {
		if !y.IsValid() {
			t.Fatalf("state %d invalid: %v", i, y)
		}
	}
}

func TestImplicitWarnsUnknownOptions(t *testing.T) {
	p := problems.NewDecay(1.0)
	xout := uniformGrid(0, 1, 10)

	// Unrecognized keys warn and are ignored, never an error.
	_, _, err := NewBackwardEuler().IntegratePredefined(p.RHS(), p.Jacobian(), p.Initial(), xout, map[string]float64{"root_finding": 1})
	if err != nil {
		t.Errorf("unknown option should not fail the run: %v", err)
	}
}
