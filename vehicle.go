package rocketsim

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// StepSize is the default step size of the flight integration.
	StepSize = 10 * time.Millisecond
	// FlightDuration is the default simulated duration.
	FlightDuration = 60 * time.Second
)

var (
	// ErrInvalidVehicle is returned for inconsistent vehicle parameters.
	ErrInvalidVehicle = errors.New("invalid vehicle")
	// ErrInvalidSimulation is returned for inconsistent simulation parameters.
	ErrInvalidSimulation = errors.New("invalid simulation")
)

// Vehicle defines the aerodynamic and environment parameters of a flight.
type Vehicle struct {
	Name            string
	DragCoefficient float64 // Dimensionless, used before and after deployment.
	BodyArea        float64 // Body cross sectional area in m^2.
	ParachuteArea   float64 // Parachute cross sectional area in m^2.
	DeployTime      float64 // Parachute deployment time in seconds after ignition.
	AirDensity      float64 // Constant air density in kg/m^3.
	Gravity         float64 // Gravitational acceleration in m/s^2.
	// DeployedGravity replaces Gravity after deployment if ShiftGravity is set.
	DeployedGravity float64
	ShiftGravity    bool
	InitialAltitude float64 // Small offset in m, avoids an impact at ignition.
	DragLaw         DragLaw
}

// NewVehicle returns a vehicle with the parameters of the D12 flight analysis.
func NewVehicle(name string) Vehicle {
	return Vehicle{
		Name:            name,
		DragCoefficient: 0.75,
		BodyArea:        0.0017,
		ParachuteArea:   0.168,
		DeployTime:      6.32,
		AirDensity:      1.22,
		Gravity:         9.81,
		InitialAltitude: 0.05,
		DragLaw:         QuadraticDrag,
	}
}

// Validate returns an error wrapping ErrInvalidVehicle if a parameter is inconsistent.
func (v Vehicle) Validate() error {
	check := func(name string, val float64) error {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidVehicle, name)
		}
		if val < 0 {
			return fmt.Errorf("%w: %s is negative (%f)", ErrInvalidVehicle, name, val)
		}
		return nil
	}
	params := []struct {
		name string
		val  float64
	}{
		{"drag coefficient", v.DragCoefficient},
		{"body area", v.BodyArea},
		{"parachute area", v.ParachuteArea},
		{"deploy time", v.DeployTime},
		{"air density", v.AirDensity},
		{"initial altitude", v.InitialAltitude},
	}
	for _, p := range params {
		if err := check(p.name, p.val); err != nil {
			return err
		}
	}
	if !isFinite(v.Gravity) {
		return fmt.Errorf("%w: gravity is not finite", ErrInvalidVehicle)
	}
	if v.ShiftGravity && !isFinite(v.DeployedGravity) {
		return fmt.Errorf("%w: deployed gravity is not finite", ErrInvalidVehicle)
	}
	if v.DragLaw != QuadraticDrag && v.DragLaw != DoubledVelocityDrag {
		return fmt.Errorf("%w: unknown drag law %s", ErrInvalidVehicle, v.DragLaw)
	}
	return nil
}

// ForceModel returns the force model of this vehicle.
func (v Vehicle) ForceModel() ForceModel {
	return ForceModel{DragCoefficient: v.DragCoefficient, AirDensity: v.AirDensity, Law: v.DragLaw}
}

func (v Vehicle) String() string {
	return fmt.Sprintf("%s: Cd=%.3f body=%.4fm² chute=%.4fm² @ %.2fs ρ=%.3f g=%.3f drag=%s", v.Name, v.DragCoefficient, v.BodyArea, v.ParachuteArea, v.DeployTime, v.AirDensity, v.Gravity, v.DragLaw)
}

// Scheme defines the integration scheme of the flight.
type Scheme uint8

const (
	// SemiImplicitEuler updates the velocity first, and the new velocity updates the altitude.
	SemiImplicitEuler Scheme = iota
	// ExplicitEuler updates both velocity and altitude from the start of step values.
	ExplicitEuler
	// RK4 is the fixed step fourth order Runge Kutta. The parachute area and gravity stay those of
	// the start of the step for all four stages.
	RK4
)

func (s Scheme) String() string {
	switch s {
	case SemiImplicitEuler:
		return "euler"
	case ExplicitEuler:
		return "explicit"
	case RK4:
		return "rk4"
	}
	return fmt.Sprintf("Scheme(%d)", uint8(s))
}

// SchemeFromString returns the scheme from its name, defaulting to SemiImplicitEuler when empty.
func SchemeFromString(s string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "euler", "semi-implicit":
		return SemiImplicitEuler, nil
	case "explicit", "forward":
		return ExplicitEuler, nil
	case "rk4":
		return RK4, nil
	}
	return SemiImplicitEuler, fmt.Errorf("unknown integration scheme `%s`", s)
}

// SimulationConfig defines the time stepping of a flight.
type SimulationConfig struct {
	Step     time.Duration
	Duration time.Duration
	Scheme   Scheme
}

// NewSimulationConfig returns the default 10ms step over 60s.
func NewSimulationConfig() SimulationConfig {
	return SimulationConfig{Step: StepSize, Duration: FlightDuration, Scheme: SemiImplicitEuler}
}

// Validate returns an error wrapping ErrInvalidSimulation if a parameter is inconsistent.
func (c SimulationConfig) Validate() error {
	if c.Step <= 0 {
		return fmt.Errorf("%w: step must be positive (%s)", ErrInvalidSimulation, c.Step)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive (%s)", ErrInvalidSimulation, c.Duration)
	}
	if c.Scheme > RK4 {
		return fmt.Errorf("%w: unknown scheme %s", ErrInvalidSimulation, c.Scheme)
	}
	return nil
}

// Steps returns the number of integration steps, known before the integration.
// It is computed like the flight loop does, i.e. by accumulating the step.
func (c SimulationConfig) Steps() (n uint64) {
	dt, end := c.Step.Seconds(), c.Duration.Seconds()
	for t := 0.0; t < end; t += dt {
		n++
	}
	return
}
