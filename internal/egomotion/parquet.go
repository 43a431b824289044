package egomotion

import (
	"fmt"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/banshee-data/curvature.report/internal/monitoring"
)

// parquetSample mirrors the recorded ego-motion schema. Tag names match the
// recording's lowercase column names.
type parquetSample struct {
	Timestamp int64   `parquet:"timestamp"`
	QX        float64 `parquet:"qx"`
	QY        float64 `parquet:"qy"`
	QZ        float64 `parquet:"qz"`
	QW        float64 `parquet:"qw"`
	VX        float64 `parquet:"vx"`
	VY        float64 `parquet:"vy"`
	VZ        float64 `parquet:"vz"`
	Curvature float64 `parquet:"curvature"`
}

// requiredColumns are the leaf columns a recording must carry. Extra columns
// are ignored.
var requiredColumns = []string{
	"timestamp", "qx", "qy", "qz", "qw", "vx", "vy", "vz", "curvature",
}

// LoadFile reads an ego-motion Parquet recording into memory. The schema is
// checked before any rows are decoded, so a missing column is reported by
// name instead of surfacing as a decode failure.
func LoadFile(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ego-motion table: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat ego-motion table: %w", err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parse parquet file %s: %w", path, err)
	}

	if err := checkSchema(pf.Schema()); err != nil {
		return nil, fmt.Errorf("ego-motion table %s: %w", path, err)
	}

	rows, err := parquet.Read[parquetSample](f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("read ego-motion rows: %w", err)
	}

	samples := make([]Sample, len(rows))
	for i, r := range rows {
		samples[i] = Sample{
			Timestamp: r.Timestamp,
			QX:        r.QX,
			QY:        r.QY,
			QZ:        r.QZ,
			QW:        r.QW,
			VX:        r.VX,
			VY:        r.VY,
			VZ:        r.VZ,
			Curvature: r.Curvature,
		}
	}

	monitoring.Logf("loaded %d ego-motion samples from %s", len(samples), path)
	return samples, nil
}

// checkSchema verifies every required column is present, naming all missing
// columns in a single error.
func checkSchema(schema *parquet.Schema) error {
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := schema.Lookup(col); !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing column(s): %s", strings.Join(missing, ", "))
	}
	return nil
}
