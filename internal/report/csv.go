package report

import (
	"encoding/csv"
	"fmt"

	"github.com/banshee-data/curvature.report/internal/egomotion"
	"github.com/banshee-data/curvature.report/internal/fsutil"
)

// WriteCSV exports every recorded and derived column, one row per sample in
// table order, with no index column. Columns follow egomotion.CSVHeader.
func WriteCSV(fs fsutil.FileSystem, path string, samples []egomotion.Sample) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(egomotion.CSVHeader()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range samples {
		if err := w.Write(samples[i].CSVRow()); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv %s: %w", path, err)
	}
	return nil
}
