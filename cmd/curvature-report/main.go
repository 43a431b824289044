// Package main provides the curvature report tool. It loads a vehicle
// ego-motion recording, derives a roadway-curvature signal from the
// orientation and velocity columns, compares it against the recorded ground
// truth, and exports the analysis as CSV, JSON, a PNG plot and an
// interactive HTML chart, together with cue points for finding the analysed
// window in the clip's camera video.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/banshee-data/curvature.report/internal/config"
	"github.com/banshee-data/curvature.report/internal/db"
	"github.com/banshee-data/curvature.report/internal/egomotion"
	"github.com/banshee-data/curvature.report/internal/fsutil"
	"github.com/banshee-data/curvature.report/internal/monitoring"
	"github.com/banshee-data/curvature.report/internal/report"
	"github.com/banshee-data/curvature.report/internal/units"
	"github.com/banshee-data/curvature.report/internal/version"
	"github.com/banshee-data/curvature.report/internal/videocue"
)

// Config holds configuration for one analysis run.
type Config struct {
	InputFile   string
	OutputDir   string
	ConfigPath  string
	DBPath      string
	OpenChart   bool
	Quiet       bool
	Verbose     bool
	ShowVersion bool
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("curvature-report %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if cfg.InputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: ego-motion file is required")
		flag.Usage()
		os.Exit(1)
	}

	if _, err := os.Stat(cfg.InputFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: File not found at %s. Please ensure you have downloaded and extracted the raw ego motion file for your target clip.\n", cfg.InputFile)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the pipeline from output-directory setup through export.
// Failures come back as errors so they reach stderr even after -quiet has
// muted the diagnostic logger.
func run(cfg Config) error {
	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if cfg.Quiet {
		log.SetOutput(io.Discard)
		monitoring.Mute()
	}

	params := config.EmptyAnalysisConfig()
	if cfg.ConfigPath != "" {
		loaded, err := config.Load(cfg.ConfigPath)
		if err != nil {
			return fmt.Errorf("load analysis config: %w", err)
		}
		params = loaded
	}

	result, err := runAnalysis(cfg, params)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if !cfg.Quiet {
		report.PrintSummary(os.Stdout, result.summary)
	}

	if err := exportResults(cfg, params, result); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if cfg.DBPath != "" {
		if err := persistRun(cfg.DBPath, result.run); err != nil {
			log.Printf("Warning: database persistence failed: %v", err)
		}
	}

	return nil
}

func persistRun(path string, run *report.RunSummary) error {
	store, err := db.NewDB(path)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.RecordRun(run)
	return err
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.InputFile, "input", "", "Path to ego-motion Parquet file (required)")
	flag.StringVar(&cfg.OutputDir, "output", ".", "Output directory for results")
	flag.StringVar(&cfg.ConfigPath, "config", "", "Path to analysis config JSON (optional)")
	flag.StringVar(&cfg.DBPath, "db", "", "SQLite database path (optional, for run persistence)")
	flag.BoolVar(&cfg.OpenChart, "open", true, "Open the HTML chart in a browser after export")
	flag.BoolVar(&cfg.Quiet, "quiet", false, "Suppress the console report")
	flag.BoolVar(&cfg.Quiet, "q", false, "Suppress the console report (alias for -quiet)")
	flag.BoolVar(&cfg.Verbose, "v", false, "Verbose output")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Curvature Report Tool for Vehicle Ego-Motion Recordings\n\n")
		fmt.Fprintf(os.Stderr, "This tool runs an ego-motion table through the curvature pipeline:\n")
		fmt.Fprintf(os.Stderr, "  1. Load the Parquet recording and sort it by timestamp\n")
		fmt.Fprintf(os.Stderr, "  2. Extract heading and speed from the quaternion and velocity columns\n")
		fmt.Fprintf(os.Stderr, "  3. Unwrap heading and differentiate it against time\n")
		fmt.Fprintf(os.Stderr, "  4. Divide yaw rate by speed to get roadway curvature\n")
		fmt.Fprintf(os.Stderr, "  5. Compare the result against the recorded curvature column\n")
		fmt.Fprintf(os.Stderr, "  6. Export CSV, JSON, a PNG plot and an interactive HTML chart\n")
		fmt.Fprintf(os.Stderr, "  7. Print video cue points for the clip's camera footage\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -input clip.egomotion.parquet -output ./results\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -input clip.egomotion.parquet -open=false -quiet\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -input clip.egomotion.parquet -config analysis.json -db runs.db\n", os.Args[0])
	}

	flag.Parse()
	return cfg
}

// analysisResult carries everything one run produced.
type analysisResult struct {
	samples []egomotion.Sample
	summary report.Summary
	run     *report.RunSummary
}

func runAnalysis(cfg Config, params *config.AnalysisConfig) (*analysisResult, error) {
	startTime := time.Now()

	samples, err := egomotion.LoadFile(cfg.InputFile)
	if err != nil {
		return nil, err
	}

	if err := egomotion.ValidateSamples(samples); err != nil {
		return nil, fmt.Errorf("validate ego-motion table: %w", err)
	}

	derived, err := egomotion.Derive(samples)
	if err != nil {
		return nil, err
	}

	stats, err := report.Compare(derived)
	if err != nil {
		return nil, err
	}

	window := videocue.Window{Start: params.GetCueWindowStart(), End: params.GetCueWindowEnd()}
	cue, err := videocue.Compute(derived, window)
	if err != nil {
		return nil, err
	}

	video, verified := videocue.CompanionVideo(cfg.InputFile, params.GetEgomotionSuffix(), params.GetCameraSuffix())

	if cfg.Verbose {
		heading := derived[len(derived)-1].YawUnwrapped - derived[0].YawUnwrapped
		monitoring.Logf("heading change over clip: %.3f rad (%.1f deg)", heading, units.RadToDeg(heading))
		monitoring.Logf("analysis completed in %d ms", time.Since(startTime).Milliseconds())
	}

	return &analysisResult{
		samples: derived,
		summary: report.Summary{
			InputFile:      cfg.InputFile,
			Samples:        derived,
			Stats:          stats,
			Cue:            cue,
			CompanionVideo: video,
			VideoVerified:  verified,
			HeadRows:       params.GetHeadRows(),
		},
		run: &report.RunSummary{
			InputFile:      cfg.InputFile,
			SampleCount:    len(derived),
			Stats:          stats,
			CuePoints:      cue,
			CompanionVideo: video,
			VideoVerified:  verified,
			GeneratedAt:    time.Now().UTC(),
		},
	}, nil
}

func exportResults(cfg Config, params *config.AnalysisConfig, res *analysisResult) error {
	fs := fsutil.OSFileSystem{}

	csvPath := filepath.Join(cfg.OutputDir, params.GetCSVName())
	if err := report.WriteCSV(fs, csvPath, res.samples); err != nil {
		return err
	}
	fmt.Printf("Final results saved to %s\n", csvPath)

	plotPath := filepath.Join(cfg.OutputDir, params.GetPlotName())
	if err := report.SavePlot(plotPath, res.samples); err != nil {
		return err
	}
	fmt.Printf("Plot saved successfully as %s\n", plotPath)

	chartPath := filepath.Join(cfg.OutputDir, params.GetChartName())
	if err := report.SaveChart(fs, chartPath, res.samples); err != nil {
		return err
	}
	fmt.Printf("Interactive chart: %s\n", chartPath)

	baseName := strings.TrimSuffix(filepath.Base(cfg.InputFile), filepath.Ext(cfg.InputFile))
	jsonPath := filepath.Join(cfg.OutputDir, baseName+"_analysis.json")
	res.run.Outputs = report.RunOutputs{CSV: csvPath, Plot: plotPath, Chart: chartPath}
	if err := report.WriteJSON(fs, jsonPath, res.run); err != nil {
		return err
	}
	fmt.Printf("JSON results: %s\n", jsonPath)

	if cfg.OpenChart {
		if err := report.OpenBrowser(chartPath); err != nil {
			log.Printf("Warning: could not open chart in browser: %v", err)
		}
	}

	return nil
}
