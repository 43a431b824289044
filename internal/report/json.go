package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/banshee-data/curvature.report/internal/fsutil"
	"github.com/banshee-data/curvature.report/internal/videocue"
)

// RunOutputs records where each artifact of a run was written.
type RunOutputs struct {
	CSV   string `json:"csv"`
	Plot  string `json:"plot"`
	Chart string `json:"chart"`
}

// RunSummary is the machine-readable record of one analysis run, written
// alongside the CSV export.
type RunSummary struct {
	InputFile      string             `json:"input_file"`
	SampleCount    int                `json:"sample_count"`
	Stats          CompareStats       `json:"curvature_comparison"`
	CuePoints      videocue.CuePoints `json:"video_cue_points"`
	CompanionVideo string             `json:"companion_video"`
	VideoVerified  bool               `json:"companion_video_verified"`
	Outputs        RunOutputs         `json:"outputs"`
	GeneratedAt    time.Time          `json:"generated_at"`
}

// WriteJSON writes the run summary as indented JSON.
func WriteJSON(fs fsutil.FileSystem, path string, summary *RunSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}
	if err := fs.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write run summary %s: %w", path, err)
	}
	return nil
}
