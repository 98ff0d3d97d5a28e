package linalg

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestFactorizeSolve(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{2, 1, 1, 3})
	fac, err := Factorize(a)
	if err != nil {
		t.Fatalf("factorize: %v", err)
	}
	if fac.Dim() != 2 {
		t.Errorf("expected dim 2, got %d", fac.Dim())
	}

	// 2x + y = 5, x + 3y = 10 -> x = 1, y = 3.
	x := make([]float64, 2)
	if err := fac.Solve([]float64{5, 10}, x); err != nil {
		t.Fatalf("solve: %v", err)
	}
	if math.Abs(x[0]-1) > 1e-12 || math.Abs(x[1]-3) > 1e-12 {
		t.Errorf("expected [1 3], got %v", x)
	}
}

func TestFactorizationReuse(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{4, 0, 0, 2})
	fac, err := Factorize(a)
	if err != nil {
		t.Fatalf("factorize: %v", err)
	}

	// The same factorization solves several right-hand sides without
	// refactorizing; b and x may alias.
	for i, want := range [][2]float64{{1, 2}, {0.25, 0.5}} {
		b := []float64{want[0] * 4, want[1] * 2}
		if err := fac.Solve(b, b); err != nil {
			t.Fatalf("solve %d: %v", i, err)
		}
		if math.Abs(b[0]-want[0]) > 1e-12 || math.Abs(b[1]-want[1]) > 1e-12 {
			t.Errorf("solve %d: expected %v, got %v", i, want, b)
		}
	}
}

func TestFactorizeRejectsNonSquare(t *testing.T) {
	if _, err := Factorize(mat.NewDense(2, 3, nil)); err == nil {
		t.Error("expected error for non-square matrix")
	}
}

func TestSolveDimensionMismatch(t *testing.T) {
	fac, err := Factorize(mat.NewDense(2, 2, []float64{1, 0, 0, 1}))
	if err != nil {
		t.Fatalf("factorize: %v", err)
	}
	if err := fac.Solve([]float64{1}, make([]float64, 2)); err == nil {
		t.Error("expected error for short right-hand side")
	}
}

func TestIterationMatrix(t *testing.T) {
	jac := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	dst := mat.NewDense(2, 2, nil)

	IterationMatrix(dst, jac, 0.5)

	want := [][]float64{{-0.5, 1}, {1.5, 1}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(dst.At(i, j)-want[i][j]) > 1e-15 {
				t.Errorf("at (%d,%d): got %g, expected %g", i, j, dst.At(i, j), want[i][j])
			}
		}
	}
	// jac must be untouched.
	if jac.At(0, 0) != 1 {
		t.Error("source jacobian mutated")
	}
}
