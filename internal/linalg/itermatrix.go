package linalg

import "gonum.org/v1/gonum/mat"

// IterationMatrix writes gamma*J - I into dst. This is the matrix whose
// factorization drives the chord Newton correction of an implicit step.
func IterationMatrix(dst, jac *mat.Dense, gamma float64) {
	dst.Scale(gamma, jac)
	n, _ := dst.Dims()
	for i := 0; i < n; i++ {
		dst.Set(i, i, dst.At(i, i)-1)
	}
}
