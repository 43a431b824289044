package report

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/curvature.report/internal/egomotion"
	"github.com/banshee-data/curvature.report/internal/fsutil"
)

// maxChartPoints caps the points per series in the HTML chart. Long clips
// are strided down so the page stays responsive.
const maxChartPoints = 8000

// chartStride returns the sampling stride that keeps n points under
// maxChartPoints.
func chartStride(n int) int {
	if n <= maxChartPoints {
		return 1
	}
	return int(math.Ceil(float64(n) / float64(maxChartPoints)))
}

// SaveChart writes an interactive HTML chart of calculated vs ground-truth
// curvature to path.
func SaveChart(fs fsutil.FileSystem, path string, samples []egomotion.Sample) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Roadway Curvature Profile",
			Width:     "1200px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Roadway Curvature Profile - Sample Analysis",
			Subtitle: "Calculated curvature feature vs recorded ground truth",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:         "Time Step Index (approx. 10 Hz)",
			NameLocation: "middle",
			NameGap:      30,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:         "Curvature (rad/m)",
			NameLocation: "middle",
			NameGap:      45,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	stride := chartStride(len(samples))
	var xAxis []int
	var calc, truth []opts.LineData
	for i := 0; i < len(samples); i += stride {
		xAxis = append(xAxis, i)
		calc = append(calc, opts.LineData{Value: samples[i].CurvatureFeature})
		truth = append(truth, opts.LineData{Value: samples[i].Curvature})
	}

	line.SetXAxis(xAxis).
		AddSeries("Calculated Curvature Feature", calc).
		AddSeries("Ground Truth Curvature", truth)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return fmt.Errorf("render curvature chart: %w", err)
	}
	if err := fs.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write curvature chart %s: %w", path, err)
	}
	return nil
}
