package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/ChristopherRabotin/rocketsim"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

// This flies the dispersed vehicles of a scenario and prints the statistics.

const defaultScenario = "~~unset~~"

var (
	scenario string
	numCPUs  int
	samples  int
	verbose  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "flight scenario TOML file")
	flag.IntVar(&numCPUs, "cpus", -1, "number of concurrent flights (overrides the scenario, set to 0 for max CPUs)")
	flag.IntVar(&samples, "samples", 0, "number of dispersed flights (overrides the scenario)")
	flag.BoolVar(&verbose, "verbose", false, "log the analysis")
}

func main() {
	flag.Parse()
	_ = godotenv.Load()
	if scenario == defaultScenario {
		scenario = os.Getenv("ROCKETSIM_SCENARIO")
	}
	if scenario == "" {
		log.Fatal("no scenario provided")
	}
	sc, err := rocketsim.LoadScenario(scenario)
	if err != nil {
		log.Fatalf("could not load scenario: %s", err)
	}
	applyOverrides(&sc.Dispersion, samples, numCPUs)
	logger := rocketsim.LogInit(sc.Vehicle.Name)
	if !verbose {
		logger = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	start := time.Now()
	rslt, err := rocketsim.Disperse(ctx, sc.Dispersion, sc.Vehicle, sc.Simulation, sc.Engine, logger)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[info] %d flights in %s", len(rslt.Summaries), time.Since(start))
	fmt.Printf("%d flights of %s with %s\n", len(rslt.Summaries), sc.Vehicle.Name, sc.Engine)
	fmt.Printf("Apogee (m): %s\n", rslt.Apogee)
	if rslt.Impacts > 0 {
		fmt.Printf("Time of Impact (s): %s (%d impacts)\n", rslt.ImpactTime, rslt.Impacts)
	} else {
		fmt.Println("Time of Impact: no impact within simulated duration")
	}

	if sc.MetricsFile != "" {
		reg := prometheus.NewRegistry()
		m := rocketsim.NewMetrics(reg)
		for i, summary := range rslt.Summaries {
			m.ObserveSummary(rslt.Steps[i], summary, rslt.Elapsed[i])
		}
		if err := prometheus.WriteToTextfile(sc.MetricsFile, reg); err != nil {
			log.Fatalf("could not write metrics: %s", err)
		}
	}
}

// applyOverrides sets the flag values which were provided on the scenario's dispersion.
// A negative CPU count keeps the scenario's workers, zero uses all the CPUs.
func applyOverrides(d *rocketsim.Dispersion, samples, cpus int) {
	if samples > 0 {
		d.Samples = samples
	}
	if cpus == 0 {
		d.Workers = runtime.NumCPU()
	} else if cpus > 0 {
		d.Workers = cpus
	}
}
