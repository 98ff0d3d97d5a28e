package problems

import (
	"gonum.org/v1/gonum/mat"

	"github.com/slayoo/odesys/internal/ode"
)

// Robertson is the classic stiff chemical kinetics benchmark
//
//	y0' = -k1*y0 + k3*y1*y2
//	y1' =  k1*y0 - k3*y1*y2 - k2*y1^2
//	y2' =  k2*y1^2
//
// with rate constants spanning nine orders of magnitude.
type Robertson struct {
	K1, K2, K3 float64
}

func NewRobertson() *Robertson {
	return &Robertson{K1: 0.04, K2: 3e7, K3: 1e4}
}

func (r *Robertson) Name() string { return "robertson" }
func (r *Robertson) Dim() int     { return 3 }

func (r *Robertson) RHS() ode.RHS {
	return func(x float64, y ode.State, dy ode.State) {
		dy[0] = -r.K1*y[0] + r.K3*y[1]*y[2]
		dy[1] = r.K1*y[0] - r.K3*y[1]*y[2] - r.K2*y[1]*y[1]
		dy[2] = r.K2 * y[1] * y[1]
	}
}

func (r *Robertson) Jacobian() ode.Jacobian {
	return func(x float64, y ode.State, dst *mat.Dense) {
		dst.Set(0, 0, -r.K1)
		dst.Set(0, 1, r.K3*y[2])
		dst.Set(0, 2, r.K3*y[1])
		dst.Set(1, 0, r.K1)
		dst.Set(1, 1, -r.K3*y[2]-2*r.K2*y[1])
		dst.Set(1, 2, -r.K3*y[1])
		dst.Set(2, 0, 0)
		dst.Set(2, 1, 2*r.K2*y[1])
		dst.Set(2, 2, 0)
	}
}

func (r *Robertson) Initial() ode.State { return ode.State{1, 0, 0} }
