package rocketsim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"
	"time"

	kitlog "github.com/go-kit/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidDispersion is returned for inconsistent dispersion parameters.
var ErrInvalidDispersion = errors.New("invalid dispersion")

// Dispersion defines a Monte Carlo analysis around a nominal vehicle.
// The drag coefficient and the deploy time are drawn from normal distributions centered on the
// nominal values. Negative draws are clamped to zero.
type Dispersion struct {
	Samples              int
	Seed                 uint64
	Workers              int // Number of concurrent flights, set to 0 for one per CPU.
	DragCoefficientSigma float64
	DeployTimeSigma      float64
}

// Validate returns an error wrapping ErrInvalidDispersion if a parameter is inconsistent.
func (d Dispersion) Validate() error {
	if d.Samples <= 0 {
		return fmt.Errorf("%w: samples must be positive (%d)", ErrInvalidDispersion, d.Samples)
	}
	if d.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative (%d)", ErrInvalidDispersion, d.Workers)
	}
	if !(d.DragCoefficientSigma >= 0) || !(d.DeployTimeSigma >= 0) || math.IsInf(d.DragCoefficientSigma, 0) || math.IsInf(d.DeployTimeSigma, 0) {
		return fmt.Errorf("%w: sigmas must be finite and not negative", ErrInvalidDispersion)
	}
	return nil
}

// Vehicles returns the dispersed vehicles. The draws only depend on the seed.
func (d Dispersion) Vehicles(nominal Vehicle) []Vehicle {
	src := rand.NewPCG(d.Seed, d.Seed^0x9e3779b97f4a7c15)
	cd := distuv.Normal{Mu: nominal.DragCoefficient, Sigma: d.DragCoefficientSigma, Src: src}
	deploy := distuv.Normal{Mu: nominal.DeployTime, Sigma: d.DeployTimeSigma, Src: src}
	vehicles := make([]Vehicle, d.Samples)
	for i := range vehicles {
		veh := nominal
		veh.Name = fmt.Sprintf("%s-%d", nominal.Name, i)
		veh.DragCoefficient = math.Max(0, cd.Rand())
		veh.DeployTime = math.Max(0, deploy.Rand())
		vehicles[i] = veh
	}
	return vehicles
}

// Stats are the statistics of one quantity over the dispersed flights.
type Stats struct {
	Mean, StdDev  float64
	Min, Max      float64
	P05, P50, P95 float64
}

func newStats(vals []float64) (s Stats) {
	if len(vals) == 0 {
		return
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	s.Mean, s.StdDev = stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 {
		s.StdDev = 0
	}
	s.Min, s.Max = sorted[0], sorted[len(sorted)-1]
	s.P05 = stat.Quantile(0.05, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.P95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return
}

func (s Stats) String() string {
	return fmt.Sprintf("mean=%.2f σ=%.2f min=%.2f p05=%.2f p50=%.2f p95=%.2f max=%.2f", s.Mean, s.StdDev, s.Min, s.P05, s.P50, s.P95, s.Max)
}

// DispersionResult stores the outcome of a dispersion analysis, summaries are in draw order.
type DispersionResult struct {
	Vehicles   []Vehicle
	Summaries  []FlightSummary
	Steps      []int           // Integration steps of each flight.
	Elapsed    []time.Duration // Wall clock duration of each flight.
	Apogee     Stats
	ImpactTime Stats // Over the flights which reached the ground.
	Impacts    int
}

// Disperse flies all the dispersed vehicles concurrently.
func Disperse(ctx context.Context, d Dispersion, nominal Vehicle, conf SimulationConfig, e Engine, logger kitlog.Logger) (*DispersionResult, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := nominal.Validate(); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	workers := d.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	rslt := &DispersionResult{
		Vehicles:  d.Vehicles(nominal),
		Summaries: make([]FlightSummary, d.Samples),
		Steps:     make([]int, d.Samples),
		Elapsed:   make([]time.Duration, d.Samples),
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, veh := range rslt.Vehicles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			series, err := Run(veh, conf, e.Thrust, e.Mass)
			if err != nil {
				return err
			}
			rslt.Elapsed[i] = time.Since(start)
			rslt.Steps[i] = series.Len() - 1
			rslt.Summaries[i] = Summarize(series)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	apogees := make([]float64, 0, d.Samples)
	impacts := make([]float64, 0, d.Samples)
	for _, s := range rslt.Summaries {
		apogees = append(apogees, s.MaxAltitude)
		if t, ok := s.ImpactTime(); ok {
			impacts = append(impacts, t)
		}
	}
	rslt.Apogee = newStats(apogees)
	rslt.ImpactTime = newStats(impacts)
	rslt.Impacts = len(impacts)
	logger.Log("level", "notice", "subsys", "dispersion", "status", "finished", "samples", d.Samples, "workers", workers, "impacts", rslt.Impacts, "apogee(m)", rslt.Apogee.Mean)
	return rslt, nil
}
