package rocketsim

import (
	"bytes"
	"testing"
)

func testSeries(altitudes ...float64) *SampleSeries {
	s := NewSampleSeries(len(altitudes))
	for i, h := range altitudes {
		s.Append(Sample{Time: float64(i) * 0.5, Velocity: float64(10 - i), Altitude: h})
	}
	return s
}

func TestSummarize(t *testing.T) {
	series := testSeries(0.05, 3, 7, 12, 9, 2, -0.5, -4)
	s := Summarize(series)
	if s.MaxAltitude != 12 || s.ApogeeTime != 1.5 {
		t.Fatalf("incorrect apogee: %s", s)
	}
	if s.MaxVelocity != 10 {
		t.Fatalf("incorrect max velocity: %s", s)
	}
	impact, ok := s.ImpactTime()
	if !ok || impact != 3 {
		t.Fatalf("incorrect impact: %s", s)
	}
	if v, _ := s.ImpactVelocity(); v != 4 {
		t.Fatalf("incorrect impact velocity %f", v)
	}
	if s != Summarize(series) {
		t.Fatal("summarize is not idempotent")
	}
	if ok, err := floatEqual(s.MaxAltitudeFeet(), 12*3.281, 1e-12); !ok {
		t.Fatalf("feet: %s", err)
	}
}

func TestSummarizeNoImpact(t *testing.T) {
	series := testSeries(0.05, 1, 5, 4.5, 0.1)
	s := Summarize(series)
	if _, ok := s.ImpactTime(); ok {
		t.Fatal("no impact expected")
	}
	if s.MaxAltitude != 5 {
		t.Fatalf("incorrect apogee %f", s.MaxAltitude)
	}
	// The initial sample is never an impact.
	if _, ok := Summarize(testSeries(0, 1, 2)).ImpactTime(); ok {
		t.Fatal("the initial sample was considered as an impact")
	}
	if (Summarize(NewSampleSeries(0)) != FlightSummary{}) {
		t.Fatal("empty series should give an empty summary")
	}
}

func TestReport(t *testing.T) {
	s := Summarize(testSeries(0.05, 100.123, 180.10066322867237, 50, -1))
	var buf bytes.Buffer
	if err := s.Report(&buf); err != nil {
		t.Fatal(err)
	}
	exp := "Maximum Altitude: 180.10 meters or 590.91 feet\nTime of Impact: 2.00 seconds\n"
	if buf.String() != exp {
		t.Fatalf("unexpected report:\n%s\nexpected:\n%s", buf.String(), exp)
	}
	buf.Reset()
	if err := Summarize(testSeries(0.05, 12.3456)).Report(&buf); err != nil {
		t.Fatal(err)
	}
	exp = "Maximum Altitude: 12.35 meters or 40.52 feet\nTime of Impact: no impact within simulated duration\n"
	if buf.String() != exp {
		t.Fatalf("unexpected report:\n%s\nexpected:\n%s", buf.String(), exp)
	}
}
