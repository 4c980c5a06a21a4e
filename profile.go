package rocketsim

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmptyProfile is returned when a profile has no breakpoints.
	ErrEmptyProfile = errors.New("profile has no breakpoints")
	// ErrUnsortedProfile is returned when breakpoint times are not strictly increasing.
	ErrUnsortedProfile = errors.New("profile times are not strictly increasing")
	// ErrNonFiniteProfile is returned when a breakpoint is NaN or infinite.
	ErrNonFiniteProfile = errors.New("profile breakpoint is not finite")
	// ErrNegativeTime is returned when a breakpoint is before ignition.
	ErrNegativeTime = errors.New("profile breakpoint time is negative")
	// ErrNonPositiveMass is returned when a mass profile does not stay above zero.
	ErrNonPositiveMass = errors.New("mass profile must stay strictly positive")
)

// Fallback defines what a profile returns once outside its breakpoints.
type Fallback uint8

const (
	// ZeroFallback returns zero, e.g. an engine which burned out.
	ZeroFallback Fallback = iota + 1
	// HoldLastFallback returns the last tabulated value, e.g. the dry mass.
	HoldLastFallback
)

func (f Fallback) String() string {
	switch f {
	case ZeroFallback:
		return "zero"
	case HoldLastFallback:
		return "hold-last"
	}
	return fmt.Sprintf("Fallback(%d)", uint8(f))
}

// Breakpoint is a tabulated (time, value) pair, time in seconds from ignition.
type Breakpoint struct {
	Time, Value float64
}

// Profile is an immutable piecewise linear function of time.
type Profile struct {
	times, values []float64
	fallback      Fallback
}

// NewProfile returns a profile from the provided breakpoints.
func NewProfile(points []Breakpoint, fallback Fallback) (*Profile, error) {
	if len(points) == 0 {
		return nil, ErrEmptyProfile
	}
	if fallback != ZeroFallback && fallback != HoldLastFallback {
		return nil, fmt.Errorf("unknown profile fallback %s", fallback)
	}
	p := &Profile{times: make([]float64, len(points)), values: make([]float64, len(points)), fallback: fallback}
	for i, pt := range points {
		if !isFinite(pt.Time) || !isFinite(pt.Value) {
			return nil, fmt.Errorf("%w: #%d (%f, %f)", ErrNonFiniteProfile, i, pt.Time, pt.Value)
		}
		if pt.Time < 0 {
			return nil, fmt.Errorf("%w: #%d at %fs", ErrNegativeTime, i, pt.Time)
		}
		if i > 0 && pt.Time <= points[i-1].Time {
			return nil, fmt.Errorf("%w: #%d at %fs follows %fs", ErrUnsortedProfile, i, pt.Time, points[i-1].Time)
		}
		p.times[i] = pt.Time
		p.values[i] = pt.Value
	}
	return p, nil
}

// NewThrustProfile returns a thrust profile (in N) which is null after burn out.
func NewThrustProfile(points []Breakpoint) (*Profile, error) {
	return NewProfile(points, ZeroFallback)
}

// NewMassProfile returns a mass profile (in kg) which holds the dry mass after burn out.
func NewMassProfile(points []Breakpoint) (*Profile, error) {
	for i, pt := range points {
		if pt.Value <= 0 {
			return nil, fmt.Errorf("%w: #%d is %f kg", ErrNonPositiveMass, i, pt.Value)
		}
	}
	return NewProfile(points, HoldLastFallback)
}

// ValueAt returns the linearly interpolated value at time t (in seconds).
// Intervals are half open, [t_i, t_i+1), so a query on a breakpoint returns that breakpoint's value
// and any query at or after the last breakpoint returns the fallback.
func (p *Profile) ValueAt(t float64) float64 {
	if len(p.times) < 2 {
		return p.fallbackValue()
	}
	i := floats.Within(p.times, t)
	if i < 0 {
		return p.fallbackValue()
	}
	t1, v1 := p.times[i], p.values[i]
	t2, v2 := p.times[i+1], p.values[i+1]
	return v1 + (v2-v1)*(t-t1)/(t2-t1)
}

func (p *Profile) fallbackValue() float64 {
	if p.fallback == ZeroFallback {
		return 0
	}
	return p.values[len(p.values)-1]
}

// Fallback returns the fallback policy of this profile.
func (p *Profile) Fallback() Fallback {
	return p.fallback
}

// End returns the time of the last breakpoint, i.e. the burn time for engine profiles.
func (p *Profile) End() float64 {
	return p.times[len(p.times)-1]
}

// Breakpoints returns a copy of the tabulated points.
func (p *Profile) Breakpoints() []Breakpoint {
	pts := make([]Breakpoint, len(p.times))
	for i := range p.times {
		pts[i] = Breakpoint{p.times[i], p.values[i]}
	}
	return pts
}

func (p *Profile) String() string {
	return fmt.Sprintf("profile{%d points over [%.3f, %.3f]s, fallback: %s}", len(p.times), p.times[0], p.End(), p.fallback)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
