package config

import (
	"os"
	"path/filepath"
	"testing"
)

func ptrInt(v int) *int          { return &v }
func ptrString(v string) *string { return &v }

func TestEmptyAnalysisConfigDefaults(t *testing.T) {
	cfg := EmptyAnalysisConfig()

	if got := cfg.GetCueWindowStart(); got != 1000 {
		t.Errorf("GetCueWindowStart() = %d, want 1000", got)
	}
	if got := cfg.GetCueWindowEnd(); got != 1500 {
		t.Errorf("GetCueWindowEnd() = %d, want 1500", got)
	}
	if got := cfg.GetCameraSuffix(); got != ".camera_front_wide_120fov.mp4" {
		t.Errorf("GetCameraSuffix() = %q, want .camera_front_wide_120fov.mp4", got)
	}
	if got := cfg.GetEgomotionSuffix(); got != ".egomotion" {
		t.Errorf("GetEgomotionSuffix() = %q, want .egomotion", got)
	}
	if got := cfg.GetCSVName(); got != "Curvature_Feature_Analysis_Final.csv" {
		t.Errorf("GetCSVName() = %q, want Curvature_Feature_Analysis_Final.csv", got)
	}
	if got := cfg.GetPlotName(); got != "Curvature_Profile_Plot.png" {
		t.Errorf("GetPlotName() = %q, want Curvature_Profile_Plot.png", got)
	}
	if got := cfg.GetChartName(); got != "Curvature_Profile_Chart.html" {
		t.Errorf("GetChartName() = %q, want Curvature_Profile_Chart.html", got)
	}
	if got := cfg.GetHeadRows(); got != 10 {
		t.Errorf("GetHeadRows() = %d, want 10", got)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.json")

	testJSON := `{
  "cue_window_start": 200,
  "cue_window_end": 450,
  "camera_suffix": ".camera_rear.mp4",
  "csv_name": "run_7.csv",
  "head_rows": 5
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GetCueWindowStart() != 200 {
		t.Errorf("GetCueWindowStart() = %d, want 200", cfg.GetCueWindowStart())
	}
	if cfg.GetCueWindowEnd() != 450 {
		t.Errorf("GetCueWindowEnd() = %d, want 450", cfg.GetCueWindowEnd())
	}
	if cfg.GetCameraSuffix() != ".camera_rear.mp4" {
		t.Errorf("GetCameraSuffix() = %q, want .camera_rear.mp4", cfg.GetCameraSuffix())
	}
	if cfg.GetCSVName() != "run_7.csv" {
		t.Errorf("GetCSVName() = %q, want run_7.csv", cfg.GetCSVName())
	}
	if cfg.GetHeadRows() != 5 {
		t.Errorf("GetHeadRows() = %d, want 5", cfg.GetHeadRows())
	}

	// Unset fields keep defaults
	if cfg.GetPlotName() != "Curvature_Profile_Plot.png" {
		t.Errorf("GetPlotName() = %q, want default", cfg.GetPlotName())
	}
	if cfg.GetEgomotionSuffix() != ".egomotion" {
		t.Errorf("GetEgomotionSuffix() = %q, want default", cfg.GetEgomotionSuffix())
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/nonexistent/path/to/config.json")
	if err == nil {
		t.Error("Expected error when loading missing file, got nil")
	}
}

func TestLoadWrongExtension(t *testing.T) {
	_, err := Load("/etc/passwd")
	if err == nil {
		t.Error("Expected error for non-.json extension, got nil")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_config.json")

	invalidJSON := `{
  "cue_window_start": "not a number"
`
	if err := os.WriteFile(configPath, []byte(invalidJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid JSON, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AnalysisConfig
		wantErr bool
	}{
		{"empty config valid", AnalysisConfig{}, false},
		{"explicit valid window", AnalysisConfig{CueWindowStart: ptrInt(0), CueWindowEnd: ptrInt(10)}, false},
		{"equal start and end valid", AnalysisConfig{CueWindowStart: ptrInt(5), CueWindowEnd: ptrInt(5)}, false},
		{"negative start", AnalysisConfig{CueWindowStart: ptrInt(-1)}, true},
		{"negative end", AnalysisConfig{CueWindowEnd: ptrInt(-5)}, true},
		{"inverted window", AnalysisConfig{CueWindowStart: ptrInt(100), CueWindowEnd: ptrInt(50)}, true},
		{"start set past default end", AnalysisConfig{CueWindowStart: ptrInt(2000)}, true},
		{"negative head rows", AnalysisConfig{HeadRows: ptrInt(-1)}, true},
		{"csv name with path separator", AnalysisConfig{CSVName: ptrString("out/run.csv")}, true},
		{"empty plot name", AnalysisConfig{PlotName: ptrString("")}, true},
		{"bare chart name valid", AnalysisConfig{ChartName: ptrString("chart.html")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
