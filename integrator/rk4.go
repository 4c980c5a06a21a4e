package integrator

// RK4 defines a fixed step fourth order Runge Kutta integrator.
type RK4 struct {
	X0        float64    // The initial x0.
	StepSize  float64    // The step size.
	Integator Integrable // What is to be integrated.
}

// NewRK4 returns a new RK4 integrator instance.
func NewRK4(x0 float64, stepSize float64, inte Integrable) (r *RK4) {
	checkStep(stepSize, inte)
	r = &RK4{X0: x0, StepSize: stepSize, Integator: inte}
	return
}

// Solve solves the configured RK4.
// Returns the number of iterations performed and the last X_i, or an error.
func (r *RK4) Solve() (uint64, float64, error) {
	const (
		half     = 1 / 2.0
		oneSixth = 1 / 6.0
		oneThird = 1 / 3.0
	)

	iterNum := uint64(0)
	xi := r.X0
	halfStep := r.StepSize * half
	for !r.Integator.Stop(iterNum) {
		state := r.Integator.GetState()
		newState := make([]float64, len(state))
		k1 := make([]float64, len(state))
		//k2, k3, k4 are used as buffers AND result variables.
		k2 := make([]float64, len(state))
		k3 := make([]float64, len(state))
		k4 := make([]float64, len(state))
		tState := make([]float64, len(state))

		// Compute the k's.
		fDot, err := derivative(r.Integator, iterNum, xi, state)
		if err != nil {
			return iterNum, xi, err
		}
		for i, y := range fDot {
			k1[i] = y * r.StepSize
			tState[i] = state[i] + k1[i]*half
		}
		if fDot, err = derivative(r.Integator, iterNum, xi+halfStep, tState); err != nil {
			return iterNum, xi, err
		}
		for i, y := range fDot {
			k2[i] = y * r.StepSize
			tState[i] = state[i] + k2[i]*half
		}
		if fDot, err = derivative(r.Integator, iterNum, xi+halfStep, tState); err != nil {
			return iterNum, xi, err
		}
		for i, y := range fDot {
			k3[i] = y * r.StepSize
			tState[i] = state[i] + k3[i]
		}
		if fDot, err = derivative(r.Integator, iterNum, xi+r.StepSize, tState); err != nil {
			return iterNum, xi, err
		}
		for i, y := range fDot {
			k4[i] = y * r.StepSize
			newState[i] = state[i] + oneSixth*(k1[i]+k4[i]) + oneThird*(k2[i]+k3[i])
		}
		r.Integator.SetState(iterNum, newState)

		xi += r.StepSize
		iterNum++ // Don't forget to increment the number of iterations.
	}

	return iterNum, xi, nil
}
