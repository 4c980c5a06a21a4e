package rocketsim

import (
	"fmt"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("code did not panic")
		}
	}()
	f()
}

// floatEqual returns whether two floats are equal within an absolute tolerance.
func floatEqual(a, b, tol float64) (bool, error) {
	if scalar.EqualWithinAbs(a, b, tol) {
		return true, nil
	}
	return false, fmt.Errorf("%.12f != %.12f (Δ=%e)", a, b, a-b)
}

func mustThrust(t *testing.T, pts ...Breakpoint) *Profile {
	p, err := NewThrustProfile(pts)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func mustMass(t *testing.T, pts ...Breakpoint) *Profile {
	p, err := NewMassProfile(pts)
	if err != nil {
		t.Fatal(err)
	}
	return p
}
