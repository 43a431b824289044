// Package videocue locates a row window of an ego-motion table on the
// timeline of the clip's companion camera video, so an event found in the
// data can be scrubbed to in the footage.
package videocue

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/banshee-data/curvature.report/internal/egomotion"
	"github.com/banshee-data/curvature.report/internal/units"
)

// Window selects an inclusive range of row indices, 0-based.
type Window struct {
	Start int
	End   int
}

// CuePoints are video timeline offsets for a row window. Offsets are seconds
// from the earliest timestamp in the table, which is where the companion
// video starts.
type CuePoints struct {
	StartRow       int     `json:"start_row"`
	EndRow         int     `json:"end_row"`
	StartTimestamp int64   `json:"start_timestamp_us"`
	EndTimestamp   int64   `json:"end_timestamp_us"`
	StartSeconds   float64 `json:"start_seconds"`
	EndSeconds     float64 `json:"end_seconds"`
	Duration       float64 `json:"duration_seconds"`
	MinTimestamp   int64   `json:"min_timestamp_us"`
}

// Compute maps a row window onto the video timeline. The samples should
// already be sorted by timestamp; the zero point is still taken as the
// minimum timestamp in the table rather than trusting row 0.
func Compute(samples []egomotion.Sample, w Window) (CuePoints, error) {
	if len(samples) == 0 {
		return CuePoints{}, fmt.Errorf("cue window [%d, %d]: ego-motion table is empty", w.Start, w.End)
	}
	if w.Start < 0 || w.End < w.Start || w.End >= len(samples) {
		return CuePoints{}, fmt.Errorf("cue window [%d, %d] out of range for %d rows (indices are 0-based)",
			w.Start, w.End, len(samples))
	}

	minTS := samples[0].Timestamp
	for i := 1; i < len(samples); i++ {
		if samples[i].Timestamp < minTS {
			minTS = samples[i].Timestamp
		}
	}

	start := samples[w.Start].Timestamp
	end := samples[w.End].Timestamp

	cp := CuePoints{
		StartRow:       w.Start,
		EndRow:         w.End,
		StartTimestamp: start,
		EndTimestamp:   end,
		StartSeconds:   units.MicrosToSeconds(start - minTS),
		EndSeconds:     units.MicrosToSeconds(end - minTS),
		MinTimestamp:   minTS,
	}
	cp.Duration = cp.EndSeconds - cp.StartSeconds
	return cp, nil
}

// CompanionVideo derives the camera video file name that was recorded
// alongside an ego-motion file. Recordings are named by clip UUID, so the
// table "<uuid>.egomotion.parquet" pairs with the front camera video
// "<uuid>.camera_front_wide_120fov.mp4".
//
// The returned flag reports whether the clip stem parsed as a UUID; a name
// is still produced when it did not, since some exports rename clips.
func CompanionVideo(inputPath, egomotionSuffix, cameraSuffix string) (string, bool) {
	stem := filepath.Base(inputPath)
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	stem = strings.TrimSuffix(stem, egomotionSuffix)

	_, err := uuid.Parse(stem)
	return stem + cameraSuffix, err == nil
}
