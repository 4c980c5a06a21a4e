package rocketsim

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDispersionVehicles(t *testing.T) {
	d := Dispersion{Samples: 50, Seed: 7, DragCoefficientSigma: 0.1, DeployTimeSigma: 0.5}
	nominal := NewVehicle("D12")
	a, b := d.Vehicles(nominal), d.Vehicles(nominal)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("draw #%d is not reproducible", i)
		}
		if a[i].DragCoefficient < 0 || a[i].DeployTime < 0 {
			t.Fatalf("draw #%d was not clamped: %+v", i, a[i])
		}
		if a[i].BodyArea != nominal.BodyArea {
			t.Fatal("only the drag coefficient and deploy time are dispersed")
		}
	}
	if a[0].DragCoefficient == a[1].DragCoefficient || a[0].DeployTime == a[1].DeployTime {
		t.Fatal("draws are not dispersed")
	}
	d.Seed = 8
	if d.Vehicles(nominal)[0] == a[0] {
		t.Fatal("the seed has no effect")
	}
}

func TestDisperseNominal(t *testing.T) {
	// Without sigma, all flights are the nominal one.
	d := Dispersion{Samples: 8, Seed: 1, Workers: 3}
	conf := SimulationConfig{Step: StepSize, Duration: FlightDuration}
	rslt, err := Disperse(context.Background(), d, NewVehicle("D12"), conf, EstesD12(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, n := range rslt.Steps {
		if n != 6001 {
			t.Fatalf("flight #%d: expected 6001 steps, got %d", i, n)
		}
	}
	if len(rslt.Summaries) != 8 || rslt.Impacts != 8 {
		t.Fatalf("expected 8 impacting flights, got %d/%d", rslt.Impacts, len(rslt.Summaries))
	}
	if ok, err := floatEqual(rslt.Apogee.Mean, 180.10066322867237, 1e-6); !ok {
		t.Fatalf("mean apogee: %s", err)
	}
	if rslt.Apogee.StdDev > 1e-9 || rslt.Apogee.Min != rslt.Apogee.Max || rslt.Apogee.P50 != rslt.Apogee.Max {
		t.Fatalf("nominal flights should all be identical: %s", rslt.Apogee)
	}
	if ok, err := floatEqual(rslt.ImpactTime.P95, 45.19, 1e-6); !ok {
		t.Fatalf("impact time: %s", err)
	}
}

func TestDisperse(t *testing.T) {
	d := Dispersion{Samples: 32, Seed: 3, DragCoefficientSigma: 0.1, DeployTimeSigma: 0.3}
	conf := SimulationConfig{Step: StepSize, Duration: FlightDuration}
	rslt, err := Disperse(context.Background(), d, NewVehicle("D12"), conf, EstesD12(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if rslt.Apogee.StdDev <= 0 || rslt.Apogee.Min >= rslt.Apogee.Max {
		t.Fatalf("apogees are not dispersed: %s", rslt.Apogee)
	}
	if rslt.Apogee.P05 > rslt.Apogee.P50 || rslt.Apogee.P50 > rslt.Apogee.P95 {
		t.Fatalf("quantiles are not ordered: %s", rslt.Apogee)
	}
	again, err := Disperse(context.Background(), d, NewVehicle("D12"), conf, EstesD12(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range rslt.Summaries {
		if rslt.Summaries[i] != again.Summaries[i] {
			t.Fatalf("flight #%d is not reproducible", i)
		}
	}
	// Summaries are in draw order.
	for i, veh := range rslt.Vehicles {
		series, err := Run(veh, conf, EstesD12().Thrust, EstesD12().Mass)
		if err != nil {
			t.Fatal(err)
		}
		if Summarize(series) != rslt.Summaries[i] {
			t.Fatalf("summary #%d does not match its vehicle", i)
		}
		if i > 3 {
			break
		}
	}
}

func TestDisperseErrors(t *testing.T) {
	conf := SimulationConfig{Step: StepSize, Duration: time.Second}
	if _, err := Disperse(context.Background(), Dispersion{}, NewVehicle("D12"), conf, EstesD12(), nil); !errors.Is(err, ErrInvalidDispersion) {
		t.Fatalf("expected ErrInvalidDispersion, got %v", err)
	}
	if _, err := Disperse(context.Background(), Dispersion{Samples: 1, DeployTimeSigma: -1}, NewVehicle("D12"), conf, EstesD12(), nil); !errors.Is(err, ErrInvalidDispersion) {
		t.Fatalf("expected ErrInvalidDispersion, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Disperse(ctx, Dispersion{Samples: 4}, NewVehicle("D12"), conf, EstesD12(), nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := Disperse(context.Background(), Dispersion{Samples: 4}, NewVehicle("D12"), SimulationConfig{}, EstesD12(), nil); !errors.Is(err, ErrInvalidSimulation) {
		t.Fatalf("expected ErrInvalidSimulation, got %v", err)
	}
}
