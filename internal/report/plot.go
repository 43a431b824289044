package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/curvature.report/internal/egomotion"
)

// Wide canvas; a clip holds a few thousand samples and the series are dense.
const (
	plotWidth  = 12 * vg.Inch
	plotHeight = 5 * vg.Inch
)

// SavePlot renders calculated and ground-truth curvature against time step
// index and writes a PNG to path. The calculated series is a solid blue
// line, the ground truth a translucent red dashed line.
func SavePlot(path string, samples []egomotion.Sample) error {
	p := plot.New()
	p.Title.Text = "Roadway Curvature Profile - Sample Analysis"
	p.X.Label.Text = "Time Step Index (approx. 10 Hz)"
	p.Y.Label.Text = "Curvature (rad/m)"
	p.Add(plotter.NewGrid())

	calc := make(plotter.XYs, len(samples))
	truth := make(plotter.XYs, len(samples))
	for i := range samples {
		calc[i] = plotter.XY{X: float64(i), Y: samples[i].CurvatureFeature}
		truth[i] = plotter.XY{X: float64(i), Y: samples[i].Curvature}
	}

	calcLine, err := plotter.NewLine(calc)
	if err != nil {
		return fmt.Errorf("build calculated curvature line: %w", err)
	}
	calcLine.Color = color.RGBA{B: 255, A: 255}
	calcLine.Width = vg.Points(1)

	truthLine, err := plotter.NewLine(truth)
	if err != nil {
		return fmt.Errorf("build ground-truth curvature line: %w", err)
	}
	truthLine.Color = color.NRGBA{R: 255, A: 153}
	truthLine.Width = vg.Points(1)
	truthLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(calcLine, truthLine)
	p.Legend.Add("Calculated Curvature Feature", calcLine)
	p.Legend.Add("Ground Truth Curvature", truthLine)
	p.Legend.Top = true

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("save curvature plot %s: %w", path, err)
	}
	return nil
}
