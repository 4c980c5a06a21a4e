package rocketsim

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the flight collectors. They are registered on the registerer provided to NewMetrics
// so that several analyses may live in one process.
type Metrics struct {
	flights     prometheus.Counter
	steps       prometheus.Counter
	impacts     prometheus.Counter
	apogee      prometheus.Gauge
	impactTime  prometheus.Gauge
	runDuration prometheus.Histogram
}

// NewMetrics returns the flight metrics registered on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		flights: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rocketsim_flights_total",
			Help: "Total number of simulated flights.",
		}),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rocketsim_integration_steps_total",
			Help: "Total number of integration steps over all flights.",
		}),
		impacts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rocketsim_impacts_total",
			Help: "Total number of flights which reached the ground within the simulated duration.",
		}),
		apogee: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rocketsim_apogee_meters",
			Help: "Apogee of the last simulated flight.",
		}),
		impactTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rocketsim_impact_time_seconds",
			Help: "Time of impact of the last flight which reached the ground.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rocketsim_run_duration_seconds",
			Help:    "Wall clock duration of a flight integration.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	reg.MustRegister(m.flights, m.steps, m.impacts, m.apogee, m.impactTime, m.runDuration)
	return m
}

// Observe records a completed flight.
func (m *Metrics) Observe(series *SampleSeries, summary FlightSummary, elapsed time.Duration) {
	steps := 0
	if n := series.Len(); n > 1 {
		steps = n - 1
	}
	m.ObserveSummary(steps, summary, elapsed)
}

// ObserveSummary records a completed flight of the provided number of integration steps.
func (m *Metrics) ObserveSummary(steps int, summary FlightSummary, elapsed time.Duration) {
	m.flights.Inc()
	m.steps.Add(float64(steps))
	m.apogee.Set(summary.MaxAltitude)
	if t, ok := summary.ImpactTime(); ok {
		m.impacts.Inc()
		m.impactTime.Set(t)
	}
	m.runDuration.Observe(elapsed.Seconds())
}
