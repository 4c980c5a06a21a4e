package rocketsim

import (
	"errors"
	"fmt"

	"github.com/ChristopherRabotin/rocketsim/integrator"
	kitlog "github.com/go-kit/log"
)

var (
	// ErrFlightDone is returned when running a flight which was already flown.
	ErrFlightDone = errors.New("flight already flown")
	// ErrNonFinite is returned when the flight state diverges.
	ErrNonFinite = integrator.ErrNonFinite
)

/* Handles the vertical flight integration. */

// FlightState is the mutable state of a flight.
type FlightState struct {
	Time     float64 // s since ignition
	Velocity float64 // m/s, positive upward
	Altitude float64 // m
	Area     float64 // current cross sectional area in m^2
	Mass     float64 // kg
	Gravity  float64 // m/s^2
	Deployed bool    // whether the parachute is out
}

// Flight defines a vertical flight and does the integration.
type Flight struct {
	Vehicle      Vehicle
	Config       SimulationConfig
	thrust, mass *Profile
	forces       ForceModel
	state        FlightState
	dt, end      float64
	stepStart    Sample // forces of the step being integrated
	series       *SampleSeries
	logger       kitlog.Logger
	apogee, done bool
	impacted     bool
}

// NewFlight returns a new Flight instance, or an error if the configuration is invalid.
func NewFlight(v Vehicle, conf SimulationConfig, thrust, mass *Profile) (*Flight, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if thrust == nil || mass == nil {
		return nil, fmt.Errorf("%w: thrust and mass profiles are required", ErrEmptyProfile)
	}
	if mass.Fallback() != HoldLastFallback {
		return nil, fmt.Errorf("%w: mass profile must hold the dry mass after burn out", ErrNonPositiveMass)
	}
	for i, pt := range mass.Breakpoints() {
		if pt.Value <= 0 {
			return nil, fmt.Errorf("%w: breakpoint #%d is %f kg", ErrNonPositiveMass, i, pt.Value)
		}
	}
	f := &Flight{
		Vehicle: v,
		Config:  conf,
		thrust:  thrust,
		mass:    mass,
		forces:  v.ForceModel(),
		state: FlightState{
			Altitude: v.InitialAltitude,
			Area:     v.BodyArea,
			Mass:     mass.ValueAt(0),
			Gravity:  v.Gravity,
		},
		dt:     conf.Step.Seconds(),
		end:    conf.Duration.Seconds(),
		series: NewSampleSeries(int(conf.Steps()) + 1),
		logger: kitlog.NewNopLogger(),
	}
	// Nothing is applied before ignition.
	f.series.Append(Sample{Altitude: f.state.Altitude, Mass: f.state.Mass, Area: f.state.Area})
	return f, nil
}

// NewEngineFlight is the same as NewFlight with the profiles of the provided engine.
func NewEngineFlight(v Vehicle, conf SimulationConfig, e Engine) (*Flight, error) {
	return NewFlight(v, conf, e.Thrust, e.Mass)
}

// Run integrates a new flight and returns its samples.
func Run(v Vehicle, conf SimulationConfig, thrust, mass *Profile) (*SampleSeries, error) {
	f, err := NewFlight(v, conf, thrust, mass)
	if err != nil {
		return nil, err
	}
	return f.Run()
}

// SetLogger sets the logger of this flight, a nop logger is used otherwise.
func (f *Flight) SetLogger(logger kitlog.Logger) {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	f.logger = logger
}

// State returns a copy of the current state.
func (f *Flight) State() FlightState {
	return f.state
}

// Series returns the samples recorded so far.
func (f *Flight) Series() *SampleSeries {
	return f.series
}

// Run starts the integration and blocks until the end of the simulated duration.
// A flight can only be run once.
func (f *Flight) Run() (*SampleSeries, error) {
	if f.done {
		return nil, ErrFlightDone
	}
	f.done = true
	var solver integrator.Solver
	switch f.Config.Scheme {
	case ExplicitEuler:
		solver = integrator.NewEuler(0, f.dt, f)
	case RK4:
		solver = integrator.NewRK4(0, f.dt, f)
	default:
		solver = integrator.NewSemiImplicitEuler(0, f.dt, f)
	}
	f.logger.Log("level", "info", "subsys", "flight", "status", "ignition", "vehicle", f.Vehicle.Name, "scheme", f.Config.Scheme, "step", f.Config.Step, "duration", f.Config.Duration)
	iterNum, _, err := solver.Solve()
	if err != nil {
		f.logger.Log("level", "critical", "subsys", "flight", "status", "diverged", "t(s)", f.state.Time, "err", err)
		return f.series, fmt.Errorf("flight %s: iteration %d: %w", f.Vehicle.Name, iterNum, err)
	}
	f.logger.Log("level", "notice", "subsys", "flight", "status", "finished", "steps", iterNum, "t(s)", f.state.Time, "h(m)", f.state.Altitude, "v(m/s)", f.state.Velocity)
	return f.series, nil
}

// deploy switches to the parachute area once the deploy time is reached. It never reverts.
func (f *Flight) deploy() {
	if f.state.Deployed || f.state.Time < f.Vehicle.DeployTime {
		return
	}
	f.state.Deployed = true
	f.state.Area = f.Vehicle.ParachuteArea
	if f.Vehicle.ShiftGravity {
		f.state.Gravity = f.Vehicle.DeployedGravity
	}
	f.logger.Log("level", "notice", "subsys", "recovery", "status", "deployed", "t(s)", f.state.Time, "h(m)", f.state.Altitude, "v(m/s)", f.state.Velocity, "area(m2)", f.state.Area)
}

// Stop implements the stop call of the integrator. The deployment and the forces of the coming step
// are computed here since this is called at the start of each step.
func (f *Flight) Stop(i uint64) bool {
	if f.state.Time >= f.end {
		return true
	}
	f.deploy()
	thrust := f.thrust.ValueAt(f.state.Time)
	f.state.Mass = f.mass.ValueAt(f.state.Time)
	f.stepStart = Sample{
		Thrust:       thrust,
		Mass:         f.state.Mass,
		Drag:         f.forces.Drag(f.state.Velocity, f.state.Area),
		Area:         f.state.Area,
		Acceleration: f.forces.Acceleration(thrust, f.state.Mass, f.state.Velocity, f.state.Area, f.state.Gravity),
	}
	return false
}

// GetState returns the state for the integrator, as [altitude, velocity].
func (f *Flight) GetState() []float64 {
	return []float64{f.state.Altitude, f.state.Velocity}
}

// SetState sets the updated state and records the sample.
func (f *Flight) SetState(i uint64, s []float64) {
	prevVelocity := f.state.Velocity
	f.state.Time += f.dt
	f.state.Altitude, f.state.Velocity = s[0], s[1]

	smp := f.stepStart
	smp.Time, smp.Velocity, smp.Altitude = f.state.Time, f.state.Velocity, f.state.Altitude
	f.series.Append(smp)

	if !f.apogee && prevVelocity > 0 && f.state.Velocity <= 0 {
		f.apogee = true
		f.logger.Log("level", "info", "subsys", "flight", "status", "apogee", "t(s)", f.state.Time, "h(m)", f.state.Altitude)
	}
	if !f.impacted && f.state.Altitude <= 0 {
		f.impacted = true
		f.logger.Log("level", "notice", "subsys", "flight", "status", "impact", "t(s)", f.state.Time, "v(m/s)", f.state.Velocity)
	}
}

// Func is the integration function: d(altitude)/dt = velocity and d(velocity)/dt = acceleration.
func (f *Flight) Func(t float64, s []float64) []float64 {
	thrust := f.thrust.ValueAt(t)
	mass := f.mass.ValueAt(t)
	return []float64{s[1], f.forces.Acceleration(thrust, mass, s[1], f.state.Area, f.state.Gravity)}
}
