package rocketsim

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
)

// MetersToFeet is the conversion factor used for reporting altitudes.
const MetersToFeet = 3.281

// FlightSummary stores the headline statistics of a flight.
type FlightSummary struct {
	MaxAltitude    float64 // m
	ApogeeTime     float64 // s
	MaxVelocity    float64 // m/s
	impactTime     float64
	impactVelocity float64
	impacted       bool
}

// Summarize returns the summary of the provided series. The first sample is the initial state and
// is never considered as an impact.
func Summarize(series *SampleSeries) (s FlightSummary) {
	if series.Len() == 0 {
		return
	}
	apogeeIdx := floats.MaxIdx(series.Altitude)
	s.MaxAltitude = series.Altitude[apogeeIdx]
	s.ApogeeTime = series.Time[apogeeIdx]
	s.MaxVelocity = floats.Max(series.Velocity)
	for i := 1; i < series.Len(); i++ {
		if series.Altitude[i] <= 0 {
			s.impacted = true
			s.impactTime = series.Time[i]
			s.impactVelocity = series.Velocity[i]
			break
		}
	}
	return
}

// ImpactTime returns the time of ground impact, or false if the flight never reached the ground.
func (s FlightSummary) ImpactTime() (float64, bool) {
	return s.impactTime, s.impacted
}

// ImpactVelocity returns the velocity at ground impact, or false if the flight never reached the ground.
func (s FlightSummary) ImpactVelocity() (float64, bool) {
	return s.impactVelocity, s.impacted
}

// MaxAltitudeFeet returns the apogee, in feet.
func (s FlightSummary) MaxAltitudeFeet() float64 {
	return s.MaxAltitude * MetersToFeet
}

// Report writes the two lines flight report. The feet are computed from the rounded meters.
func (s FlightSummary) Report(w io.Writer) error {
	maxAlt := round2(s.MaxAltitude)
	if _, err := fmt.Fprintf(w, "Maximum Altitude: %.2f meters or %.2f feet\n", maxAlt, round2(maxAlt*MetersToFeet)); err != nil {
		return err
	}
	if impact, ok := s.ImpactTime(); ok {
		_, err := fmt.Fprintf(w, "Time of Impact: %.2f seconds\n", round2(impact))
		return err
	}
	_, err := fmt.Fprintln(w, "Time of Impact: no impact within simulated duration")
	return err
}

func (s FlightSummary) String() string {
	impact := "none"
	if t, ok := s.ImpactTime(); ok {
		impact = fmt.Sprintf("%.2fs @ %.2fm/s", t, s.impactVelocity)
	}
	return fmt.Sprintf("apogee %.2fm @ %.2fs, max velocity %.2fm/s, impact %s", s.MaxAltitude, s.ApogeeTime, s.MaxVelocity, impact)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
