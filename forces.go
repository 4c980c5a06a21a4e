package rocketsim

import (
	"fmt"
	"math"
	"strings"
)

// DragLaw defines how the drag force scales with the velocity.
type DragLaw uint8

const (
	// QuadraticDrag is the usual 1/2 Cd ρ A v² drag, opposing the motion.
	QuadraticDrag DragLaw = iota
	// DoubledVelocityDrag uses 1/2 Cd ρ A 2v. It only exists to reproduce flight
	// analyses which computed `v*2` instead of `v**2`.
	DoubledVelocityDrag
)

func (d DragLaw) String() string {
	switch d {
	case QuadraticDrag:
		return "quadratic"
	case DoubledVelocityDrag:
		return "doubled"
	}
	return fmt.Sprintf("DragLaw(%d)", uint8(d))
}

// DragLawFromString returns the drag law from its name, defaulting to QuadraticDrag when empty.
func DragLawFromString(s string) (DragLaw, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "quadratic", "squared":
		return QuadraticDrag, nil
	case "doubled", "linear-doubled":
		return DoubledVelocityDrag, nil
	}
	return QuadraticDrag, fmt.Errorf("unknown drag law `%s`", s)
}

// ForceModel computes the forces applied to the vehicle during the flight.
type ForceModel struct {
	DragCoefficient float64 // Dimensionless
	AirDensity      float64 // kg/m^3
	Law             DragLaw
}

// Drag returns the signed drag force (in N) for the velocity v (m/s) and the cross sectional area (m^2).
// The drag has the same sign as v, and is subtracted from the other forces.
func (f ForceModel) Drag(v, area float64) float64 {
	k := 0.5 * f.DragCoefficient * f.AirDensity * area
	if f.Law == DoubledVelocityDrag {
		return k * v * 2
	}
	return k * v * math.Abs(v)
}

// NetForce returns thrust - weight - drag in Newtons.
func (f ForceModel) NetForce(thrust, mass, v, area, g float64) float64 {
	return thrust - mass*g - f.Drag(v, area)
}

// Acceleration returns the net acceleration in m/s^2.
// The mass must be strictly positive, which valid mass profiles guarantee.
func (f ForceModel) Acceleration(thrust, mass, v, area, g float64) float64 {
	if mass <= 0 {
		panic(fmt.Errorf("non positive mass %f kg", mass))
	}
	return f.NetForce(thrust, mass, v, area, g) / mass
}
