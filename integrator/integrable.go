package integrator

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonFinite is returned by a solver when Func yields a NaN or infinite derivative.
var ErrNonFinite = errors.New("integrator: non finite derivative")

// Integrable defines something which can be integrated, i.e. has a state vector.
// WARNING: Implementation must manage its own state based on the iteration.
type Integrable interface {
	GetState() []float64                   // Get the latest state of this integrable.
	SetState(i uint64, s []float64)        // Set the state s of a given iteration i.
	Stop(i uint64) bool                    // Return whether to stop the integration from iteration i.
	Func(t float64, s []float64) []float64 // ODE function from time t and state s, must return a new state.
}

// Solver is implemented by all the fixed step integrators of this package.
type Solver interface {
	// Solve returns the number of iterations performed and the last X_i, or an error.
	Solve() (uint64, float64, error)
}

// checkStep panics on invalid solver configurations.
func checkStep(stepSize float64, inte Integrable) {
	if stepSize <= 0 || math.IsNaN(stepSize) || math.IsInf(stepSize, 0) {
		panic("config StepSize must be positive")
	}
	if inte == nil {
		panic("config Integator may not be nil")
	}
}

// derivative calls Func and ensures the returned vector is usable.
func derivative(inte Integrable, iterNum uint64, xi float64, state []float64) ([]float64, error) {
	fDot := inte.Func(xi, state)
	if len(fDot) != len(state) {
		return nil, fmt.Errorf("integrator: derivative has %d components, state has %d", len(fDot), len(state))
	}
	for i, v := range fDot {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: fDot[%d]=%f @ iteration %d (x=%f)", ErrNonFinite, i, v, iterNum, xi)
		}
	}
	return fDot, nil
}
