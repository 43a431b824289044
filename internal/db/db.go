// Package db persists analysis run summaries to SQLite so repeated runs
// over a clip library can be compared later.
package db

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/curvature.report/internal/report"
)

type DB struct {
	*sql.DB
}

// NewDB opens (creating if needed) the run database at path.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS analysis_runs (
			run_id            INTEGER PRIMARY KEY,
			input_file        TEXT NOT NULL,
			analysis_time     TEXT NOT NULL,
			sample_count      INTEGER,
			mae               REAL,
			rmse              REAL,
			correlation       REAL,
			cue_start_row     INTEGER,
			cue_end_row       INTEGER,
			cue_start_seconds REAL,
			cue_end_seconds   REAL,
			cue_duration      REAL,
			companion_video   TEXT,
			video_verified    INTEGER,
			csv_path          TEXT,
			plot_path         TEXT,
			chart_path        TEXT
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &DB{db}, nil
}

// RecordRun inserts one run summary and returns its row id.
func (db *DB) RecordRun(run *report.RunSummary) (int64, error) {
	res, err := db.Exec(`
		INSERT INTO analysis_runs (
			input_file, analysis_time, sample_count, mae, rmse, correlation,
			cue_start_row, cue_end_row, cue_start_seconds, cue_end_seconds, cue_duration,
			companion_video, video_verified, csv_path, plot_path, chart_path
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.InputFile,
		run.GeneratedAt.UTC().Format(time.RFC3339),
		run.SampleCount,
		nullableFloat(run.Stats.MAE),
		nullableFloat(run.Stats.RMSE),
		nullableFloat(run.Stats.Correlation),
		run.CuePoints.StartRow,
		run.CuePoints.EndRow,
		run.CuePoints.StartSeconds,
		run.CuePoints.EndSeconds,
		run.CuePoints.Duration,
		run.CompanionVideo,
		run.VideoVerified,
		run.Outputs.CSV,
		run.Outputs.Plot,
		run.Outputs.Chart,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// RunRecord is one persisted analysis run.
type RunRecord struct {
	RunID           int64
	InputFile       string
	AnalysisTime    string
	SampleCount     int
	MAE             float64
	RMSE            float64
	Correlation     float64
	CueStartRow     int
	CueEndRow       int
	CueStartSeconds float64
	CueEndSeconds   float64
	CueDuration     float64
	CompanionVideo  string
	VideoVerified   bool
	CSVPath         string
	PlotPath        string
	ChartPath       string
}

// RecentRuns returns up to limit runs, newest first.
func (db *DB) RecentRuns(limit int) ([]RunRecord, error) {
	rows, err := db.Query(`
		SELECT run_id, input_file, analysis_time, sample_count, mae, rmse, correlation,
			cue_start_row, cue_end_row, cue_start_seconds, cue_end_seconds, cue_duration,
			companion_video, video_verified, csv_path, plot_path, chart_path
		FROM analysis_runs ORDER BY run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var mae, rmse, correlation sql.NullFloat64
		if err := rows.Scan(
			&r.RunID, &r.InputFile, &r.AnalysisTime, &r.SampleCount,
			&mae, &rmse, &correlation,
			&r.CueStartRow, &r.CueEndRow, &r.CueStartSeconds, &r.CueEndSeconds, &r.CueDuration,
			&r.CompanionVideo, &r.VideoVerified, &r.CSVPath, &r.PlotPath, &r.ChartPath,
		); err != nil {
			return nil, err
		}
		r.MAE = floatOrNaN(mae)
		r.RMSE = floatOrNaN(rmse)
		r.Correlation = floatOrNaN(correlation)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// nullableFloat maps non-finite values to NULL before binding. Correlation
// is NaN for a constant series and a zero time step pushes MAE and RMSE to
// ±Inf; neither survives a REAL column round trip.
func nullableFloat(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

func floatOrNaN(v sql.NullFloat64) float64 {
	if v.Valid {
		return v.Float64
	}
	return math.NaN()
}
