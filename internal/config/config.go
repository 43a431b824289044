// Package config loads the optional JSON analysis configuration.
//
// All fields are pointers so a partial config file only overrides what it
// names; the Get* methods supply defaults for everything left unset. The
// defaults reproduce the canonical clip analysis (cue window rows 1000-1500,
// front wide camera, fixed deliverable names).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Default output names. The CSV and plot names are fixed deliverable names
// downstream tooling greps for; override them only for side-by-side runs.
const (
	DefaultCSVName   = "Curvature_Feature_Analysis_Final.csv"
	DefaultPlotName  = "Curvature_Profile_Plot.png"
	DefaultChartName = "Curvature_Profile_Chart.html"
)

// Default cue window and naming values.
const (
	DefaultCueWindowStart  = 1000
	DefaultCueWindowEnd    = 1500
	DefaultCameraSuffix    = ".camera_front_wide_120fov.mp4"
	DefaultEgomotionSuffix = ".egomotion"
	DefaultHeadRows        = 10
)

// AnalysisConfig holds the tunable parameters of a report run.
// Fields omitted from the JSON file keep their defaults, so partial
// configs are safe.
type AnalysisConfig struct {
	// Cue window, in row indices of the sorted table.
	CueWindowStart *int `json:"cue_window_start,omitempty"`
	CueWindowEnd   *int `json:"cue_window_end,omitempty"`

	// Companion video naming.
	CameraSuffix    *string `json:"camera_suffix,omitempty"`
	EgomotionSuffix *string `json:"egomotion_suffix,omitempty"`

	// Output file names, relative to the output directory.
	CSVName   *string `json:"csv_name,omitempty"`
	PlotName  *string `json:"plot_name,omitempty"`
	ChartName *string `json:"chart_name,omitempty"`

	// Rows shown in the console comparison preview.
	HeadRows *int `json:"head_rows,omitempty"`
}

// EmptyAnalysisConfig returns an AnalysisConfig with all fields unset.
// The Get* methods turn unset fields into defaults.
func EmptyAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{}
}

// Load reads an AnalysisConfig from a JSON file.
// The file must have a .json extension and be under the max file size.
func Load(path string) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAnalysisConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid. It validates the
// effective values, so a config that sets only cue_window_start still fails
// if the result inverts the window.
func (c *AnalysisConfig) Validate() error {
	if c.CueWindowStart != nil && *c.CueWindowStart < 0 {
		return fmt.Errorf("cue_window_start must be non-negative, got %d", *c.CueWindowStart)
	}
	if c.CueWindowEnd != nil && *c.CueWindowEnd < 0 {
		return fmt.Errorf("cue_window_end must be non-negative, got %d", *c.CueWindowEnd)
	}
	if c.GetCueWindowEnd() < c.GetCueWindowStart() {
		return fmt.Errorf("cue window inverted: start %d > end %d", c.GetCueWindowStart(), c.GetCueWindowEnd())
	}

	if c.HeadRows != nil && *c.HeadRows < 0 {
		return fmt.Errorf("head_rows must be non-negative, got %d", *c.HeadRows)
	}

	// Output names are joined onto the output directory; they must be bare
	// file names.
	for field, name := range map[string]*string{
		"csv_name":   c.CSVName,
		"plot_name":  c.PlotName,
		"chart_name": c.ChartName,
	} {
		if name == nil {
			continue
		}
		if *name == "" || filepath.Base(*name) != *name {
			return fmt.Errorf("%s must be a bare file name, got %q", field, *name)
		}
	}

	return nil
}

// GetCueWindowStart returns the cue window start row or the default.
func (c *AnalysisConfig) GetCueWindowStart() int {
	if c.CueWindowStart == nil {
		return DefaultCueWindowStart
	}
	return *c.CueWindowStart
}

// GetCueWindowEnd returns the cue window end row or the default.
func (c *AnalysisConfig) GetCueWindowEnd() int {
	if c.CueWindowEnd == nil {
		return DefaultCueWindowEnd
	}
	return *c.CueWindowEnd
}

// GetCameraSuffix returns the companion video suffix or the default.
func (c *AnalysisConfig) GetCameraSuffix() string {
	if c.CameraSuffix == nil || *c.CameraSuffix == "" {
		return DefaultCameraSuffix
	}
	return *c.CameraSuffix
}

// GetEgomotionSuffix returns the recording name suffix or the default.
func (c *AnalysisConfig) GetEgomotionSuffix() string {
	if c.EgomotionSuffix == nil || *c.EgomotionSuffix == "" {
		return DefaultEgomotionSuffix
	}
	return *c.EgomotionSuffix
}

// GetCSVName returns the CSV output name or the default.
func (c *AnalysisConfig) GetCSVName() string {
	if c.CSVName == nil || *c.CSVName == "" {
		return DefaultCSVName
	}
	return *c.CSVName
}

// GetPlotName returns the plot output name or the default.
func (c *AnalysisConfig) GetPlotName() string {
	if c.PlotName == nil || *c.PlotName == "" {
		return DefaultPlotName
	}
	return *c.PlotName
}

// GetChartName returns the HTML chart output name or the default.
func (c *AnalysisConfig) GetChartName() string {
	if c.ChartName == nil || *c.ChartName == "" {
		return DefaultChartName
	}
	return *c.ChartName
}

// GetHeadRows returns the console preview row count or the default.
func (c *AnalysisConfig) GetHeadRows() int {
	if c.HeadRows == nil {
		return DefaultHeadRows
	}
	return *c.HeadRows
}
