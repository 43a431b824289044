// Package egomotion models a recorded vehicle ego-motion table and derives an
// instantaneous roadway-curvature signal from it.
package egomotion

import (
	"fmt"
	"math"
	"strconv"
)

// Sample is one row of an ego-motion recording, one pose per tick
// (approx. 10 Hz), plus the columns the pipeline derives from it.
type Sample struct {
	// Recorded columns
	Timestamp int64   // microseconds relative to clip start; may arrive unsorted
	QX        float64 // orientation quaternion x component
	QY        float64 // orientation quaternion y component
	QZ        float64 // orientation quaternion z component
	QW        float64 // orientation quaternion w component
	VX        float64 // velocity x component (m/s)
	VY        float64 // velocity y component (m/s)
	VZ        float64 // velocity z component (m/s)
	Curvature float64 // ground-truth curvature (rad/m); opaque to derivation

	// Derived columns, populated by Derive
	Yaw              float64 // heading in (-pi, pi] radians
	Velocity         float64 // speed magnitude (m/s), always >= 0
	YawUnwrapped     float64 // yaw with the +-pi seam removed
	DeltaYaw         float64 // first difference of unwrapped yaw (radians)
	DeltaT           float64 // first difference of timestamp (seconds)
	YawRate          float64 // DeltaYaw / DeltaT (rad/s)
	CurvatureFeature float64 // YawRate / (|Velocity| + SpeedEpsilon) (rad/m)
}

// CSVHeader returns the export column names: the recorded columns in file
// order followed by the derived columns in derivation order.
func CSVHeader() []string {
	return []string{
		"timestamp", "qx", "qy", "qz", "qw", "vx", "vy", "vz", "curvature",
		"yaw", "velocity", "yaw_unwrapped", "delta_yaw", "delta_t", "yaw_rate", "curvature_feature",
	}
}

// CSVRow returns the sample as CSV fields, aligned with CSVHeader.
func (s *Sample) CSVRow() []string {
	return []string{
		strconv.FormatInt(s.Timestamp, 10),
		ftoa(s.QX),
		ftoa(s.QY),
		ftoa(s.QZ),
		ftoa(s.QW),
		ftoa(s.VX),
		ftoa(s.VY),
		ftoa(s.VZ),
		ftoa(s.Curvature),
		ftoa(s.Yaw),
		ftoa(s.Velocity),
		ftoa(s.YawUnwrapped),
		ftoa(s.DeltaYaw),
		ftoa(s.DeltaT),
		ftoa(s.YawRate),
		ftoa(s.CurvatureFeature),
	}
}

// ftoa formats a float with the shortest representation that round-trips.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ValidateSamples rejects rows containing NaN or infinite recorded values.
// Derivation assumes finite inputs; one bad row would poison every
// difference downstream of it.
func ValidateSamples(samples []Sample) error {
	for i := range samples {
		s := &samples[i]
		cols := [...]struct {
			name  string
			value float64
		}{
			{"qx", s.QX}, {"qy", s.QY}, {"qz", s.QZ}, {"qw", s.QW},
			{"vx", s.VX}, {"vy", s.VY}, {"vz", s.VZ},
			{"curvature", s.Curvature},
		}
		for _, c := range cols {
			if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
				return fmt.Errorf("sample %d: column %s is not finite (%v)", i, c.name, c.value)
			}
		}
	}
	return nil
}
