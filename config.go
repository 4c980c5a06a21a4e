package rocketsim

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Scenario is a complete flight definition as read from a scenario file.
type Scenario struct {
	Vehicle     Vehicle
	Simulation  SimulationConfig
	Engine      Engine
	Export      ExportConfig
	Dispersion  Dispersion
	Plots       bool   // Render the figures next to the CSV export.
	MetricsFile string // Prometheus textfile, disabled when empty.
}

// LoadScenario reads the scenario file at the provided path. The format is deduced from the extension.
func LoadScenario(path string) (Scenario, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	sc, err := scenarioFromViper(v)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// ReadScenario reads a scenario of the provided config type (e.g. "toml").
func ReadScenario(r io.Reader, configType string) (Scenario, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType(configType)
	if err := v.ReadConfig(r); err != nil {
		return Scenario{}, err
	}
	return scenarioFromViper(v)
}

func setDefaults(v *viper.Viper) {
	veh := NewVehicle("rocket")
	sim := NewSimulationConfig()
	v.SetDefault("vehicle.name", veh.Name)
	v.SetDefault("vehicle.drag_coefficient", veh.DragCoefficient)
	v.SetDefault("vehicle.body_area", veh.BodyArea)
	v.SetDefault("vehicle.parachute_area", veh.ParachuteArea)
	v.SetDefault("vehicle.deploy_time", veh.DeployTime)
	v.SetDefault("vehicle.air_density", veh.AirDensity)
	v.SetDefault("vehicle.gravity", veh.Gravity)
	v.SetDefault("vehicle.initial_altitude", veh.InitialAltitude)
	v.SetDefault("vehicle.drag_law", veh.DragLaw.String())
	v.SetDefault("simulation.step", sim.Step.String())
	v.SetDefault("simulation.duration", sim.Duration.String())
	v.SetDefault("simulation.scheme", sim.Scheme.String())
	v.SetDefault("engine.preset", "D12")
	v.SetDefault("export.dir", ".")
	v.SetDefault("dispersion.samples", 100)
	v.SetDefault("dispersion.seed", 1)
}

func scenarioFromViper(v *viper.Viper) (sc Scenario, err error) {
	// Read vehicle
	sc.Vehicle = Vehicle{
		Name:            v.GetString("vehicle.name"),
		DragCoefficient: v.GetFloat64("vehicle.drag_coefficient"),
		BodyArea:        v.GetFloat64("vehicle.body_area"),
		ParachuteArea:   v.GetFloat64("vehicle.parachute_area"),
		DeployTime:      v.GetFloat64("vehicle.deploy_time"),
		AirDensity:      v.GetFloat64("vehicle.air_density"),
		Gravity:         v.GetFloat64("vehicle.gravity"),
		InitialAltitude: v.GetFloat64("vehicle.initial_altitude"),
	}
	if v.IsSet("vehicle.deployed_gravity") {
		sc.Vehicle.ShiftGravity = true
		sc.Vehicle.DeployedGravity = v.GetFloat64("vehicle.deployed_gravity")
	}
	if sc.Vehicle.DragLaw, err = DragLawFromString(v.GetString("vehicle.drag_law")); err != nil {
		return
	}
	if err = sc.Vehicle.Validate(); err != nil {
		return
	}

	// Read simulation
	if sc.Simulation.Step, err = confReadDuration(v, "simulation.step"); err != nil {
		return
	}
	if sc.Simulation.Duration, err = confReadDuration(v, "simulation.duration"); err != nil {
		return
	}
	if sc.Simulation.Scheme, err = SchemeFromString(v.GetString("simulation.scheme")); err != nil {
		return
	}
	if err = sc.Simulation.Validate(); err != nil {
		return
	}

	// Read engine: custom curves take precedence over the preset.
	if v.IsSet("engine.thrust") || v.IsSet("engine.mass") {
		var thrust, mass []Breakpoint
		if thrust, err = confReadBreakpoints(v, "engine.thrust"); err != nil {
			return
		}
		if mass, err = confReadBreakpoints(v, "engine.mass"); err != nil {
			return
		}
		name := v.GetString("engine.name")
		if name == "" {
			name = "custom"
		}
		if sc.Engine, err = NewEngine(name, thrust, mass); err != nil {
			return
		}
	} else if sc.Engine, err = EngineFromString(v.GetString("engine.preset")); err != nil {
		return
	}

	// Read outputs
	sc.Export = ExportConfig{
		Dir:       v.GetString("export.dir"),
		Filename:  v.GetString("export.filename"),
		AsCSV:     v.GetBool("export.csv"),
		Timestamp: v.GetBool("export.timestamp"),
	}
	sc.Plots = v.GetBool("export.plots")
	sc.MetricsFile = v.GetString("export.metrics")

	// Read dispersions
	sc.Dispersion = Dispersion{
		Samples:              v.GetInt("dispersion.samples"),
		Seed:                 v.GetUint64("dispersion.seed"),
		Workers:              v.GetInt("dispersion.workers"),
		DragCoefficientSigma: v.GetFloat64("dispersion.drag_coefficient_sigma"),
		DeployTimeSigma:      v.GetFloat64("dispersion.deploy_time_sigma"),
	}
	return sc, nil
}

// confReadDuration reads a duration either as a Go duration string ("10ms") or as a number of seconds.
func confReadDuration(v *viper.Viper, key string) (time.Duration, error) {
	switch raw := v.Get(key).(type) {
	case string:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return 0, fmt.Errorf("could not understand `%s`: %w", key, err)
		}
		return d, nil
	case time.Duration:
		return raw, nil
	default:
		seconds, err := cast.ToFloat64E(raw)
		if err != nil {
			return 0, fmt.Errorf("could not understand `%s`: %w", key, err)
		}
		return time.Duration(math.Round(seconds * float64(time.Second))), nil
	}
}

// confReadBreakpoints reads an array of [time, value] pairs.
func confReadBreakpoints(v *viper.Viper, key string) ([]Breakpoint, error) {
	rows, err := cast.ToSliceE(v.Get(key))
	if err != nil {
		return nil, fmt.Errorf("`%s` must be an array of [time, value] pairs: %w", key, err)
	}
	pts := make([]Breakpoint, len(rows))
	for i, row := range rows {
		pair, err := cast.ToSliceE(row)
		if err != nil || len(pair) != 2 {
			return nil, fmt.Errorf("`%s` #%d must be a [time, value] pair", key, i)
		}
		t, err := cast.ToFloat64E(pair[0])
		if err != nil {
			return nil, fmt.Errorf("`%s` #%d time: %w", key, i, err)
		}
		val, err := cast.ToFloat64E(pair[1])
		if err != nil {
			return nil, fmt.Errorf("`%s` #%d value: %w", key, i, err)
		}
		pts[i] = Breakpoint{t, val}
	}
	return pts, nil
}
