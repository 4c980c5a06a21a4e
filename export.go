package rocketsim

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

var csvHeader = []string{"time", "velocity", "altitude", "acceleration", "thrust", "mass", "drag", "area"}

// ExportConfig configures the exporting of the flight samples.
type ExportConfig struct {
	Dir       string
	Filename  string
	AsCSV     bool
	Timestamp bool
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV || c.Filename == ""
}

// Path returns the path of the CSV file for the provided creation time.
func (c ExportConfig) Path(now time.Time) string {
	filename := c.Filename
	if c.Timestamp {
		filename = fmt.Sprintf("%s-%d-%02d-%02dT%02d.%02d.%02d", filename, now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second())
	}
	return filepath.Join(c.Dir, "flight-"+filename+".csv")
}

// Export writes the series to the configured file and returns its path.
func (c ExportConfig) Export(v Vehicle, series *SampleSeries) (string, error) {
	if c.IsUseless() {
		return "", nil
	}
	now := time.Now()
	path := c.Path(now)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	// Header
	if _, err := fmt.Fprintf(f, "# Creation date (UTC): %s\n# Vehicle: %s\n# Units are s, m/s, m, m/s^2, N, kg, N, m^2\n", now.UTC(), v); err != nil {
		return "", err
	}
	if err := WriteCSV(f, series); err != nil {
		return "", err
	}
	return path, f.Close()
}

// WriteCSV writes the series as CSV, with a header row.
func WriteCSV(w io.Writer, series *SampleSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	record := make([]string, len(csvHeader))
	for i := 0; i < series.Len(); i++ {
		smp := series.At(i)
		for j, val := range []float64{smp.Time, smp.Velocity, smp.Altitude, smp.Acceleration, smp.Thrust, smp.Mass, smp.Drag, smp.Area} {
			record[j] = strconv.FormatFloat(val, 'f', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
