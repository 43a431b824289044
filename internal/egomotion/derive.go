package egomotion

import (
	"errors"
	"math"
	"sort"

	"github.com/banshee-data/curvature.report/internal/units"
)

const (
	// SpeedEpsilon regularises the curvature quotient so a stationary
	// vehicle divides by 0.01 m/s instead of zero.
	SpeedEpsilon = 0.01

	// FirstDeltaTSeconds is the time difference assigned to the first row,
	// which has no predecessor. Its DeltaYaw is zero, so the first row's
	// yaw rate and curvature come out exactly zero.
	FirstDeltaTSeconds = 1e-5
)

// Derive computes the derived columns for every sample and returns a new
// slice sorted ascending by timestamp. The input slice is not modified.
//
// Algorithm:
//  1. Stable-sort by timestamp; rows with equal timestamps keep their
//     input order.
//  2. Extract yaw from the orientation quaternion and speed magnitude from
//     the velocity components.
//  3. Unwrap yaw so heading is continuous across the +-pi seam.
//  4. Take first differences of unwrapped yaw and of timestamp.
//  5. Yaw rate is DeltaYaw / DeltaT; curvature is yaw rate divided by
//     (|speed| + SpeedEpsilon).
//
// Duplicate timestamps give DeltaT == 0 and the rate follows IEEE float
// division (+-Inf, or NaN when DeltaYaw is also zero); such rows are
// preserved, not rejected.
func Derive(samples []Sample) ([]Sample, error) {
	if len(samples) == 0 {
		return nil, errors.New("ego-motion table is empty")
	}

	out := make([]Sample, len(samples))
	copy(out, samples)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})

	yaw := make([]float64, len(out))
	for i := range out {
		s := &out[i]
		s.Yaw = YawFromQuaternion(s.QX, s.QY, s.QZ, s.QW)
		s.Velocity = math.Sqrt(s.VX*s.VX + s.VY*s.VY + s.VZ*s.VZ)
		yaw[i] = s.Yaw
	}

	unwrapped := UnwrapAngles(yaw)

	for i := range out {
		s := &out[i]
		s.YawUnwrapped = unwrapped[i]
		if i == 0 {
			s.DeltaYaw = 0
			s.DeltaT = FirstDeltaTSeconds
		} else {
			s.DeltaYaw = unwrapped[i] - unwrapped[i-1]
			s.DeltaT = units.MicrosToSeconds(s.Timestamp - out[i-1].Timestamp)
		}
		s.YawRate = s.DeltaYaw / s.DeltaT
		s.CurvatureFeature = s.YawRate / (math.Abs(s.Velocity) + SpeedEpsilon)
	}

	return out, nil
}

// YawFromQuaternion extracts the rotation about the vertical axis from an
// orientation quaternion:
//
//	yaw = atan2(2*(qw*qz + qx*qy), 1 - 2*(qy^2 + qz^2))
//
// The result lies in (-pi, pi].
func YawFromQuaternion(qx, qy, qz, qw float64) float64 {
	return math.Atan2(2*(qw*qz+qx*qy), 1-2*(qy*qy+qz*qz))
}

// UnwrapAngles removes 2*pi discontinuities from a sequence of angles in
// radians. Whenever consecutive values step by more than pi, the remainder
// of the sequence is shifted by a multiple of 2*pi, so consecutive unwrapped
// values never differ by more than pi.
func UnwrapAngles(angles []float64) []float64 {
	out := make([]float64, len(angles))
	if len(angles) == 0 {
		return out
	}

	out[0] = angles[0]
	offset := 0.0
	for i := 1; i < len(angles); i++ {
		dd := angles[i] - angles[i-1]

		// Wrap the step into [-pi, pi).
		ddmod := math.Mod(dd+math.Pi, 2*math.Pi)
		if ddmod < 0 {
			ddmod += 2 * math.Pi
		}
		ddmod -= math.Pi

		// A step of exactly +pi must stay +pi, not alias to -pi.
		if ddmod == -math.Pi && dd > 0 {
			ddmod = math.Pi
		}

		corr := ddmod - dd
		if math.Abs(dd) < math.Pi {
			corr = 0
		}
		offset += corr
		out[i] = angles[i] + offset
	}
	return out
}
