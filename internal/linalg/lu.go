package linalg

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Factorization is a dense LU decomposition, computed once and then
// solved against repeatedly. It is owned by a single integration step.
type Factorization struct {
	lu mat.LU
	n  int
}

// Factorize LU-decomposes the square matrix a.
func Factorize(a *mat.Dense) (*Factorization, error) {
	r, c := a.Dims()
	if r != c {
		return nil, fmt.Errorf("linalg: matrix must be square, got %dx%d", r, c)
	}
	f := &Factorization{n: r}
	f.lu.Factorize(a)
	return f, nil
}

// Dim returns the order of the factorized matrix.
func (f *Factorization) Dim() int { return f.n }

// Solve back-substitutes b against the factorization, writing the
// solution into x. b and x may alias. Ill-conditioned systems are
// solved anyway (gonum reports them as a mat.Condition error).
func (f *Factorization) Solve(b, x []float64) error {
	if len(b) != f.n || len(x) != f.n {
		return fmt.Errorf("linalg: vector length %d does not match matrix order %d", len(b), f.n)
	}
	dst := mat.NewVecDense(f.n, nil)
	if err := f.lu.SolveVecTo(dst, false, mat.NewVecDense(f.n, b)); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return err
		}
	}
	copy(x, dst.RawVector().Data)
	return nil
}
