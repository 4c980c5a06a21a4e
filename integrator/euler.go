package integrator

import "fmt"

// Euler is the explicit (forward) Euler integrator: every component of the
// state is advanced from the derivative evaluated at the start of the step.
type Euler struct {
	X0        float64
	StepSize  float64
	Integator Integrable
}

// NewEuler returns a new Euler integrator instance.
func NewEuler(x0 float64, stepSize float64, inte Integrable) *Euler {
	checkStep(stepSize, inte)
	return &Euler{X0: x0, StepSize: stepSize, Integator: inte}
}

// Solve implements the Solver interface.
func (e *Euler) Solve() (uint64, float64, error) {
	iterNum := uint64(0)
	xi := e.X0
	for !e.Integator.Stop(iterNum) {
		state := e.Integator.GetState()
		fDot, err := derivative(e.Integator, iterNum, xi, state)
		if err != nil {
			return iterNum, xi, err
		}
		newState := make([]float64, len(state))
		for i, y := range fDot {
			newState[i] = state[i] + y*e.StepSize
		}
		e.Integator.SetState(iterNum, newState)
		xi += e.StepSize
		iterNum++
	}
	return iterNum, xi, nil
}

// SemiImplicitEuler is the symplectic Euler integrator for second order systems.
// The state must be laid out as [x_0 ... x_n-1, v_0 ... v_n-1] and Func must
// return [ẋ..., v̇...]. Velocities are advanced first and the updated
// velocities advance the positions, so the ẋ half of the derivative is unused.
type SemiImplicitEuler struct {
	X0        float64
	StepSize  float64
	Integator Integrable
}

// NewSemiImplicitEuler returns a new SemiImplicitEuler integrator instance.
func NewSemiImplicitEuler(x0 float64, stepSize float64, inte Integrable) *SemiImplicitEuler {
	checkStep(stepSize, inte)
	return &SemiImplicitEuler{X0: x0, StepSize: stepSize, Integator: inte}
}

// Solve implements the Solver interface.
func (e *SemiImplicitEuler) Solve() (uint64, float64, error) {
	iterNum := uint64(0)
	xi := e.X0
	for !e.Integator.Stop(iterNum) {
		state := e.Integator.GetState()
		if len(state)%2 != 0 {
			return iterNum, xi, fmt.Errorf("integrator: semi-implicit Euler requires an even state size, got %d", len(state))
		}
		fDot, err := derivative(e.Integator, iterNum, xi, state)
		if err != nil {
			return iterNum, xi, err
		}
		n := len(state) / 2
		newState := make([]float64, len(state))
		for i := 0; i < n; i++ {
			newState[n+i] = state[n+i] + fDot[n+i]*e.StepSize
			newState[i] = state[i] + newState[n+i]*e.StepSize
		}
		e.Integator.SetState(iterNum, newState)
		xi += e.StepSize
		iterNum++
	}
	return iterNum, xi, nil
}
