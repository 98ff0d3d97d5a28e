package ode

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// State is a system state vector of fixed length for a given problem.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// RHS evaluates dy/dx at (x, y) and writes it into dy. The buffer is
// owned by the driver and only borrowed for the duration of the call.
type RHS func(x float64, y State, dy State)

// Jacobian writes the ny×ny matrix of partial derivatives of the RHS
// with respect to y into dst. Required only by implicit methods.
type Jacobian func(x float64, y State, dst *mat.Dense)

// Options carries per-method tuning knobs. Recognized keys vary by
// method; unrecognized keys are warned about and ignored.
type Options map[string]float64

// Option keys recognized by the BDF2 stepper.
const (
	OptTolIter = "tol_iter"
	OptIterMax = "iter_max"
)

func (o Options) Float(key string, def float64) float64 {
	if v, ok := o[key]; ok {
		return v
	}
	return def
}

func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		return int(v)
	}
	return def
}

// Unrecognized returns the keys of o not present in known, sorted for
// stable warning output.
func (o Options) Unrecognized(known ...string) []string {
	var extra []string
	for key := range o {
		found := false
		for _, k := range known {
			if key == k {
				found = true
				break
			}
		}
		if !found {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return extra
}

// Stats records evaluation counts for one integration call. NFev is an
// approximate accounting of RHS evaluations, mirroring what each method
// reports rather than a precise audit. NewtonIters and Converged are
// populated by the BDF2 stepper only.
type Stats struct {
	NFev        int   `json:"nfev"`
	NewtonIters []int `json:"newton_iters,omitempty"`
	Converged   bool  `json:"converged"`
}

// Result is a complete trajectory: X strictly increasing, Y[i] the state
// at X[i], Y[0] the initial condition.
type Result struct {
	X     []float64 `json:"x"`
	Y     []State   `json:"y"`
	Stats Stats     `json:"stats"`
}

func (r *Result) Len() int { return len(r.X) }

// Last returns the final (x, y) pair of the trajectory.
func (r *Result) Last() (float64, State) {
	n := len(r.X)
	if n == 0 {
		return 0, nil
	}
	return r.X[n-1], r.Y[n-1]
}
