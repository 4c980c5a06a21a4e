package integrator

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// Balbasi1D is the cooling sphere problem, dθ/dt = -2.2067e-12 (θ⁴ - 81e8).
type Balbasi1D struct {
	state []float64 // Note that we don't have a state history here.
}

func NewBalbasi1D() (b *Balbasi1D) {
	b = &Balbasi1D{}
	b.state = []float64{1200.0}
	return
}

func (b *Balbasi1D) GetState() []float64 {
	return b.state
}

func (b *Balbasi1D) SetState(i uint64, s []float64) {
	b.state = s
}

func (b *Balbasi1D) Stop(i uint64) bool {
	return i*30 >= 480
}

func (b *Balbasi1D) Func(t float64, s []float64) []float64 {
	return []float64{(-2.2067 * 1e-12) * (math.Pow(s[0], 4) - 81*1e8)}
}

// constAcc is a point mass under a constant acceleration, state is [x, v].
type constAcc struct {
	acc   float64
	steps uint64
	state []float64
	hist  [][]float64
}

func (c *constAcc) GetState() []float64 { return c.state }

func (c *constAcc) SetState(i uint64, s []float64) {
	c.state = s
	c.hist = append(c.hist, s)
}

func (c *constAcc) Stop(i uint64) bool { return i >= c.steps }

func (c *constAcc) Func(t float64, s []float64) []float64 {
	return []float64{s[1], c.acc}
}

type badFunc struct {
	constAcc
	size int
}

func (b *badFunc) Func(t float64, s []float64) []float64 {
	if b.size > 0 {
		return make([]float64, b.size)
	}
	return []float64{math.NaN(), 0}
}

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("code did not panic")
		}
	}()
	f()
}

func TestRK4In1D(t *testing.T) {
	b := NewBalbasi1D()
	iterNum, xi, err := NewRK4(0, 30, b).Solve()
	if err != nil {
		t.Fatalf("err: %+v\n", err)
	}
	if iterNum != 16 {
		t.Fatalf("expected 16 iterations, got %d", iterNum)
	}
	if xi != 480 {
		t.Fatalf("expected to finish at x=480, got %f", xi)
	}
	if !scalar.EqualWithinAbs(b.GetState()[0], 647.57, 1) {
		t.Fatalf("final temperature %f too far from 647.57", b.GetState()[0])
	}
}

func TestEulerConstantAcceleration(t *testing.T) {
	const (
		h = 0.1
		g = -9.81
		n = 50
	)
	c := &constAcc{acc: g, steps: n, state: []float64{100, 0}}
	iterNum, _, err := NewEuler(0, h, c).Solve()
	if err != nil {
		t.Fatal(err)
	}
	if iterNum != n {
		t.Fatalf("expected %d iterations, got %d", n, iterNum)
	}
	for k, s := range c.hist {
		step := float64(k + 1)
		// Forward Euler lags the position by one step of velocity.
		expX := 100 + g*h*h*step*(step-1)/2
		if !scalar.EqualWithinAbs(s[0], expX, 1e-9) {
			t.Fatalf("step %d: x=%f expected %f", k+1, s[0], expX)
		}
		if !scalar.EqualWithinAbs(s[1], g*h*step, 1e-9) {
			t.Fatalf("step %d: v=%f expected %f", k+1, s[1], g*h*step)
		}
	}
}

func TestSemiImplicitEulerConstantAcceleration(t *testing.T) {
	const (
		h = 0.1
		g = -9.81
		n = 50
	)
	c := &constAcc{acc: g, steps: n, state: []float64{100, 0}}
	if _, _, err := NewSemiImplicitEuler(0, h, c).Solve(); err != nil {
		t.Fatal(err)
	}
	for k, s := range c.hist {
		step := float64(k + 1)
		expX := 100 + g*h*h*step*(step+1)/2
		if !scalar.EqualWithinAbs(s[0], expX, 1e-9) {
			t.Fatalf("step %d: x=%f expected %f", k+1, s[0], expX)
		}
	}
}

func TestRK4ConstantAccelerationIsExact(t *testing.T) {
	c := &constAcc{acc: -2, steps: 10, state: []float64{0, 10}}
	if _, _, err := NewRK4(0, 0.5, c).Solve(); err != nil {
		t.Fatal(err)
	}
	// x(5) = 10*5 - 5² = 25, v(5) = 0
	if !scalar.EqualWithinAbs(c.state[0], 25, 1e-9) || !scalar.EqualWithinAbs(c.state[1], 0, 1e-9) {
		t.Fatalf("RK4 is not exact on a quadratic trajectory: %v", c.state)
	}
}

func TestSolverErrors(t *testing.T) {
	nan := &badFunc{constAcc: constAcc{steps: 3, state: []float64{0, 0}}}
	for _, s := range []Solver{NewEuler(0, 1, nan), NewSemiImplicitEuler(0, 1, nan), NewRK4(0, 1, nan)} {
		if _, _, err := s.Solve(); !errors.Is(err, ErrNonFinite) {
			t.Fatalf("%T: expected ErrNonFinite, got %v", s, err)
		}
	}
	wrongSize := &badFunc{constAcc: constAcc{steps: 3, state: []float64{0, 0}}, size: 3}
	if _, _, err := NewEuler(0, 1, wrongSize).Solve(); err == nil {
		t.Fatal("expected an error on mismatched derivative size")
	}
	odd := &constAcc{steps: 3, state: []float64{0, 0, 0}}
	if _, _, err := NewSemiImplicitEuler(0, 1, odd).Solve(); err == nil {
		t.Fatal("expected an error on an odd state size")
	}
}

func TestSolverConfigPanics(t *testing.T) {
	c := &constAcc{steps: 1, state: []float64{0, 0}}
	assertPanic(t, func() { NewEuler(0, 0, c) })
	assertPanic(t, func() { NewSemiImplicitEuler(0, -1, c) })
	assertPanic(t, func() { NewRK4(0, 1, nil) })
}
