package rocketsim

// Sample is one record of the flight.
// The time, velocity and altitude are those at the end of the step; the acceleration, thrust, mass,
// drag and area are those which were applied during the step.
type Sample struct {
	Time         float64 // s
	Velocity     float64 // m/s
	Altitude     float64 // m
	Acceleration float64 // m/s^2
	Thrust       float64 // N
	Mass         float64 // kg
	Drag         float64 // N
	Area         float64 // m^2
}

// SampleSeries stores the flight samples as index aligned columns, ready to be plotted.
// It is append only during the flight and must be treated as read only afterward.
type SampleSeries struct {
	Time         []float64
	Velocity     []float64
	Altitude     []float64
	Acceleration []float64
	Thrust       []float64
	Mass         []float64
	Drag         []float64
	Area         []float64
}

// NewSampleSeries returns an empty series with the provided capacity.
func NewSampleSeries(capacity int) *SampleSeries {
	col := func() []float64 { return make([]float64, 0, capacity) }
	return &SampleSeries{col(), col(), col(), col(), col(), col(), col(), col()}
}

// Append adds a sample at the end of each column.
func (s *SampleSeries) Append(smp Sample) {
	s.Time = append(s.Time, smp.Time)
	s.Velocity = append(s.Velocity, smp.Velocity)
	s.Altitude = append(s.Altitude, smp.Altitude)
	s.Acceleration = append(s.Acceleration, smp.Acceleration)
	s.Thrust = append(s.Thrust, smp.Thrust)
	s.Mass = append(s.Mass, smp.Mass)
	s.Drag = append(s.Drag, smp.Drag)
	s.Area = append(s.Area, smp.Area)
}

// Len returns the number of samples.
func (s *SampleSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Time)
}

// At returns the i-th sample.
func (s *SampleSeries) At(i int) Sample {
	return Sample{s.Time[i], s.Velocity[i], s.Altitude[i], s.Acceleration[i], s.Thrust[i], s.Mass[i], s.Drag[i], s.Area[i]}
}

// Last returns the last sample, or false if the series is empty.
func (s *SampleSeries) Last() (Sample, bool) {
	if s.Len() == 0 {
		return Sample{}, false
	}
	return s.At(s.Len() - 1), true
}
