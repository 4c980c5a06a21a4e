package rocketsim

import (
	"fmt"
	"strings"
)

// Engine defines a solid motor by its thrust and mass curves.
type Engine struct {
	Name   string
	Thrust *Profile // Thrust in Newtons, null after burn out.
	Mass   *Profile // Total vehicle mass in kg, holds the dry mass after burn out.
}

// NewEngine returns a new engine from the tabulated thrust and mass curves.
func NewEngine(name string, thrust, mass []Breakpoint) (Engine, error) {
	tp, err := NewThrustProfile(thrust)
	if err != nil {
		return Engine{}, fmt.Errorf("engine %s: thrust: %w", name, err)
	}
	mp, err := NewMassProfile(mass)
	if err != nil {
		return Engine{}, fmt.Errorf("engine %s: mass: %w", name, err)
	}
	return Engine{Name: name, Thrust: tp, Mass: mp}, nil
}

// BurnTime returns the time at which the thrust curve ends.
func (e Engine) BurnTime() float64 {
	return e.Thrust.End()
}

// DryMass returns the mass once all the propellant is consumed.
func (e Engine) DryMass() float64 {
	return e.Mass.ValueAt(e.Mass.End())
}

// TotalImpulse returns the area under the thrust curve in N.s.
func (e Engine) TotalImpulse() (impulse float64) {
	pts := e.Thrust.Breakpoints()
	for i := 1; i < len(pts); i++ {
		impulse += 0.5 * (pts[i].Value + pts[i-1].Value) * (pts[i].Time - pts[i-1].Time)
	}
	return
}

func (e Engine) String() string {
	return fmt.Sprintf("%s (burn %.3fs, %.2f N.s, dry %.4f kg)", e.Name, e.BurnTime(), e.TotalImpulse(), e.DryMass())
}

/* Available engines */

// EstesD12 returns the Estes D12 motor as digitized from the manufacturer's thrust curve.
// The mass curve is that of the full vehicle (0.19 kg at ignition) flown with it.
func EstesD12() Engine {
	thrust := []Breakpoint{
		{0.0, 0.0}, {0.049, 2.569}, {0.116, 9.369}, {0.184, 17.275}, {0.237, 24.258}, {0.282, 29.73}, {0.297, 27.01},
		{0.311, 22.589}, {0.322, 17.99}, {0.348, 14.126}, {0.386, 12.099}, {0.442, 10.808}, {0.546, 9.876},
		{0.718, 9.306}, {0.879, 9.105}, {1.066, 8.901}, {1.257, 8.698}, {1.436, 8.31}, {1.59, 8.294},
		{1.612, 4.613}, {1.65, 0},
	}
	mass := []Breakpoint{
		{0.0, 0.1900}, {0.049, 0.1899}, {0.116, 0.1894}, {0.184, 0.1882}, {0.237, 0.1869}, {0.282, 0.1854},
		{0.297, 0.1848}, {0.311, 0.1844}, {0.322, 0.1841}, {0.348, 0.1836}, {0.386, 0.1829}, {0.442, 0.1821},
		{0.546, 0.1808}, {0.718, 0.1787}, {0.879, 0.1769}, {1.066, 0.1748}, {1.257, 0.1726}, {1.436, 0.1707},
		{1.59, 0.1692}, {1.612, 0.1690}, {1.65, 0.1689},
	}
	e, err := NewEngine("D12", thrust, mass)
	if err != nil {
		panic(err)
	}
	return e
}

// EngineFromString returns the preset engine with the provided name.
func EngineFromString(name string) (Engine, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "D12", "ESTES-D12":
		return EstesD12(), nil
	}
	return Engine{}, fmt.Errorf("unknown engine preset `%s`", name)
}
