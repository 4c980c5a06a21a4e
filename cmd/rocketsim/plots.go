package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ChristopherRabotin/rocketsim"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// panel is one subplot of a figure.
type panel struct {
	title, ylabel string
	values        []float64
}

// savePlots renders the kinematics and dynamics figures of a flight as PNG files in dir.
func savePlots(dir, name string, series *rocketsim.SampleSeries) ([]string, error) {
	figures := []struct {
		suffix string
		panels []panel
	}{
		{"kinematics", []panel{
			{"Velocity", "Velocity (m/s)", series.Velocity},
			{"Rocket Altitude vs. Time", "Altitude (m)", series.Altitude},
		}},
		{"dynamics", []panel{
			{"Acceleration", "Acceleration (m/s^2)", series.Acceleration},
			{"Thrust", "Thrust (N)", series.Thrust},
			{"Rocket mass change vs. Time", "Mass (kg)", series.Mass},
		}},
	}
	paths := make([]string, 0, len(figures))
	for _, fig := range figures {
		path := filepath.Join(dir, fmt.Sprintf("flight-%s-%s.png", name, fig.suffix))
		if err := saveFigure(path, series.Time, fig.panels); err != nil {
			return paths, fmt.Errorf("%s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func saveFigure(path string, t []float64, panels []panel) error {
	plots := make([][]*plot.Plot, len(panels))
	for i, pnl := range panels {
		p := plot.New()
		p.Title.Text = pnl.title
		p.X.Label.Text = "Time (s)"
		p.Y.Label.Text = pnl.ylabel
		p.Add(plotter.NewGrid())
		line, err := plotter.NewLine(xys(t, pnl.values))
		if err != nil {
			return err
		}
		p.Add(line)
		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.New(4*vg.Inch, vg.Length(len(panels))*2.5*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(panels),
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: 2 * vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return err
	}
	return f.Close()
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range pts {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}
