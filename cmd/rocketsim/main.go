package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ChristopherRabotin/rocketsim"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

// This flies the scenario once and prints the flight report.

const (
	defaultScenario = "~~unset~~"
	envScenario     = "ROCKETSIM_SCENARIO"
)

var (
	scenario string
	verbose  bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", defaultScenario, "flight scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "log the flight events")
}

func main() {
	flag.Parse()
	// A missing .env is fine.
	_ = godotenv.Load()
	if scenario == defaultScenario {
		scenario = os.Getenv(envScenario)
	}
	sc := rocketsim.Scenario{
		Vehicle:    rocketsim.NewVehicle("D12"),
		Simulation: rocketsim.NewSimulationConfig(),
		Engine:     rocketsim.EstesD12(),
	}
	if scenario == "" {
		log.Printf("[info] no scenario provided, flying the D12 defaults")
	} else {
		var err error
		if sc, err = rocketsim.LoadScenario(scenario); err != nil {
			log.Fatalf("could not load scenario: %s", err)
		}
	}
	if verbose {
		log.Printf("[conf] vehicle: %s", sc.Vehicle)
		log.Printf("[conf] engine: %s", sc.Engine)
		log.Printf("[conf] step: %s, duration: %s, scheme: %s", sc.Simulation.Step, sc.Simulation.Duration, sc.Simulation.Scheme)
	}

	flight, err := rocketsim.NewEngineFlight(sc.Vehicle, sc.Simulation, sc.Engine)
	if err != nil {
		log.Fatalf("invalid flight: %s", err)
	}
	if verbose {
		flight.SetLogger(rocketsim.LogInit(sc.Vehicle.Name))
	}
	start := time.Now()
	series, err := flight.Run()
	if err != nil {
		log.Fatal(err)
	}
	elapsed := time.Since(start)
	summary := rocketsim.Summarize(series)
	if err := summary.Report(os.Stdout); err != nil {
		log.Fatal(err)
	}

	// Outputs
	if path, err := sc.Export.Export(sc.Vehicle, series); err != nil {
		log.Fatalf("could not export: %s", err)
	} else if path != "" {
		log.Printf("[info] samples written to %s", path)
	}
	if sc.Plots {
		paths, err := savePlots(sc.Export.Dir, sc.Vehicle.Name, series)
		if err != nil {
			log.Fatalf("could not plot: %s", err)
		}
		for _, path := range paths {
			log.Printf("[info] figure written to %s", path)
		}
	}
	if sc.MetricsFile != "" {
		reg := prometheus.NewRegistry()
		rocketsim.NewMetrics(reg).Observe(series, summary, elapsed)
		if err := prometheus.WriteToTextfile(sc.MetricsFile, reg); err != nil {
			log.Fatalf("could not write metrics: %s", err)
		}
	}
}
