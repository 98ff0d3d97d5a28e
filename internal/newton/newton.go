// Package newton implements the chord (frozen-Jacobian) corrector shared
// by the implicit steppers. The caller factorizes the iteration matrix
// gamma*J - I once per step; the corrector reuses that factorization for
// every iteration within the step.
package newton

import (
	"math"

	"github.com/slayoo/odesys/internal/linalg"
	"github.com/slayoo/odesys/internal/ode"
)

// Residual evaluates the method's residual R(y) into r. Implementations
// call the problem RHS once per invocation; r and y must not alias.
type Residual func(y ode.State, r ode.State)

// Result is the tagged outcome of a correction: either the iterate
// converged, or the cap was hit and Y holds the last iterate. The caller
// decides whether an unconverged result is fatal or silently accepted.
type Result struct {
	Y         ode.State
	Iters     int
	Converged bool
}

// Correct iterates y_{k+1} = y_k + delta_k with (gamma*J - I)*delta_k =
// R(y_k), starting from guess, until the RMS norm of delta drops below
// tol or maxIter iterations have run. guess is not mutated.
func Correct(fac *linalg.Factorization, residual Residual, guess ode.State, tol float64, maxIter int) (Result, error) {
	ny := len(guess)
	y := guess.Clone()
	r := make(ode.State, ny)
	delta := make([]float64, ny)

	for iter := 1; iter <= maxIter; iter++ {
		residual(y, r)
		if err := fac.Solve(r, delta); err != nil {
			return Result{Y: y, Iters: iter}, err
		}
		sum := 0.0
		for i := range y {
			y[i] += delta[i]
			sum += delta[i] * delta[i]
		}
		if math.Sqrt(sum/float64(ny)) < tol {
			return Result{Y: y, Iters: iter, Converged: true}, nil
		}
	}
	return Result{Y: y, Iters: maxIter, Converged: false}, nil
}
