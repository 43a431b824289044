// Package units provides shared constants and conversions for the quantities
// the pipeline handles: clip time in microseconds, angles in radians, speeds
// in metres per second.
package units

import "math"

// MicrosPerSecond is the number of microseconds in one second. Ego-motion
// timestamps are recorded in microseconds relative to clip start.
const MicrosPerSecond = 1e6

// MicrosToSeconds converts a microsecond count to seconds.
func MicrosToSeconds(us int64) float64 {
	return float64(us) / MicrosPerSecond
}

// RadToDeg converts radians to degrees. Headings are computed in radians;
// degrees are display-only.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// MPSToKPH converts a speed in metres per second to kilometres per hour.
// Speeds are stored in m/s; km/h is display-only.
func MPSToKPH(speedMPS float64) float64 {
	return speedMPS * 3.6
}
