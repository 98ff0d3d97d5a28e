// Package problems provides canonical ODE systems with hand-written
// Jacobians, used by the CLI, the analysis helpers, and the tests.
package problems

import (
	"fmt"
	"strings"

	"github.com/slayoo/odesys/internal/ode"
)

// Problem bundles a right-hand side with its Jacobian and a default
// initial condition.
type Problem interface {
	Name() string
	Dim() int
	RHS() ode.RHS
	// Jacobian returns nil for systems without one; such problems can
	// only be integrated by explicit methods.
	Jacobian() ode.Jacobian
	Initial() ode.State
}

// Analytic is implemented by problems with a closed-form solution.
type Analytic interface {
	Exact(x float64) ode.State
}

// New constructs a built-in problem by name with default parameters.
func New(name string) (Problem, error) {
	switch name {
	case "decay":
		return NewDecay(1.0), nil
	case "oscillator":
		return NewOscillator(1.0), nil
	case "vanderpol":
		return NewVanDerPol(5.0), nil
	case "robertson":
		return NewRobertson(), nil
	default:
		return nil, fmt.Errorf("unknown problem %q (available: %s)", name, strings.Join(Names(), ", "))
	}
}

// Names lists the built-in problems.
func Names() []string {
	return []string{"decay", "oscillator", "vanderpol", "robertson"}
}
