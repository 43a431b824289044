package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/banshee-data/curvature.report/internal/egomotion"
	"github.com/banshee-data/curvature.report/internal/units"
	"github.com/banshee-data/curvature.report/internal/videocue"
)

// Summary bundles everything the console report prints.
type Summary struct {
	InputFile      string
	Samples        []egomotion.Sample
	Stats          CompareStats
	Cue            videocue.CuePoints
	CompanionVideo string
	VideoVerified  bool
	HeadRows       int
}

// PrintSummary writes the human-readable analysis report to w.
func PrintSummary(w io.Writer, s Summary) {
	rule := strings.Repeat("-", 30)

	fmt.Fprintln(w, "========== CURVATURE ANALYSIS ==========")
	fmt.Fprintf(w, "Input: %s\n", s.InputFile)
	fmt.Fprintf(w, "Successfully loaded Ego Motion data with %d time steps.\n", len(s.Samples))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- CURVATURE FEATURE CREATED ---")
	fmt.Fprintln(w, "These values represent the tightness of the road curve over time.")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Calculated curvature vs. existing curvature column:")
	printHead(w, s.Samples, s.HeadRows)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Note: The 'curvature' column already exists in the data.")
	fmt.Fprintln(w, "The 'curvature_feature' is our calculated version for comparison.")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- CURVATURE COMPARISON ---")
	fmt.Fprintf(w, "Samples compared:    %d\n", s.Stats.Count)
	fmt.Fprintf(w, "Mean absolute error: %.6f rad/m\n", s.Stats.MAE)
	fmt.Fprintf(w, "RMSE:                %.6f rad/m\n", s.Stats.RMSE)
	fmt.Fprintf(w, "Correlation:         %.4f\n", s.Stats.Correlation)
	fmt.Fprintf(w, "Calculated range:    [%.6f, %.6f], mean %.6f\n",
		s.Stats.CalculatedMin, s.Stats.CalculatedMax, s.Stats.CalculatedMean)
	fmt.Fprintf(w, "Ground truth range:  [%.6f, %.6f], mean %.6f\n",
		s.Stats.TruthMin, s.Stats.TruthMax, s.Stats.TruthMean)
	meanSpeed := MeanSpeed(s.Samples)
	fmt.Fprintf(w, "Mean speed:          %.2f m/s (%.1f km/h)\n", meanSpeed, units.MPSToKPH(meanSpeed))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- VIDEO CUE POINTS ---")
	fmt.Fprintf(w, "Total event duration (time steps %d to %d): %.2f seconds.\n",
		s.Cue.StartRow, s.Cue.EndRow, s.Cue.Duration)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "EVENT START TIME: %.2f seconds\n", s.Cue.StartSeconds)
	fmt.Fprintf(w, "EVENT END TIME: %.2f seconds\n", s.Cue.EndSeconds)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Your video file name is: %s (or similar camera view)\n", s.CompanionVideo)
	if !s.VideoVerified {
		fmt.Fprintln(w, "Clip name is not a UUID; check the video name against the clip manifest.")
	}
}

// printHead prints the first n rows of the comparison columns in a
// fixed-width table. A zero or negative n prints nothing; head_rows 0 is a
// valid config value meaning no preview.
func printHead(w io.Writer, samples []egomotion.Sample, n int) {
	if n <= 0 {
		return
	}
	if n > len(samples) {
		n = len(samples)
	}

	fmt.Fprintf(w, "%12s %10s %10s %18s %12s\n",
		"timestamp", "velocity", "yaw", "curvature_feature", "curvature")
	for i := 0; i < n; i++ {
		s := samples[i]
		fmt.Fprintf(w, "%12d %10.4f %10.4f %18.6f %12.6f\n",
			s.Timestamp, s.Velocity, s.Yaw, s.CurvatureFeature, s.Curvature)
	}
}
