package egomotion

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// yawSample builds a sample with a pure-yaw orientation quaternion.
func yawSample(ts int64, yaw, vx, vy, vz float64) Sample {
	return Sample{
		Timestamp: ts,
		QZ:        math.Sin(yaw / 2),
		QW:        math.Cos(yaw / 2),
		VX:        vx,
		VY:        vy,
		VZ:        vz,
	}
}

func TestDeriveEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Derive(nil)
	require.Error(t, err)

	_, err = Derive([]Sample{})
	require.Error(t, err)
}

func TestDeriveConstantPose(t *testing.T) {
	t.Parallel()

	// Straight-line travel at 1 m/s with no rotation.
	in := []Sample{
		yawSample(0, 0, 1, 0, 0),
		yawSample(100000, 0, 1, 0, 0),
		yawSample(200000, 0, 1, 0, 0),
	}

	out, err := Derive(in)
	require.NoError(t, err)
	require.Len(t, out, 3)

	for i, s := range out {
		assert.Equal(t, 0.0, s.Yaw, "row %d yaw", i)
		assert.Equal(t, 1.0, s.Velocity, "row %d velocity", i)
		assert.Equal(t, 0.0, s.DeltaYaw, "row %d delta yaw", i)
		assert.Equal(t, 0.0, s.YawRate, "row %d yaw rate", i)
		assert.Equal(t, 0.0, s.CurvatureFeature, "row %d curvature", i)
	}

	assert.Equal(t, FirstDeltaTSeconds, out[0].DeltaT)
	assert.InDelta(t, 0.1, out[1].DeltaT, 1e-12)
	assert.InDelta(t, 0.1, out[2].DeltaT, 1e-12)
}

func TestDeriveQuarterTurn(t *testing.T) {
	t.Parallel()

	// A 90 degree left turn over 0.1 s at 2 m/s.
	in := []Sample{
		yawSample(0, 0, 2, 0, 0),
		yawSample(100000, math.Pi/2, 2, 0, 0),
	}

	out, err := Derive(in)
	require.NoError(t, err)
	require.Len(t, out, 2)

	wantRate := (math.Pi / 2) / 0.1
	assert.InDelta(t, math.Pi/2, out[1].DeltaYaw, 1e-9)
	assert.InDelta(t, 0.1, out[1].DeltaT, 1e-12)
	assert.InDelta(t, wantRate, out[1].YawRate, 1e-9)
	assert.InDelta(t, wantRate/2.01, out[1].CurvatureFeature, 1e-9)
}

func TestDeriveZeroSpeed(t *testing.T) {
	t.Parallel()

	// A stationary vehicle rotating in place. The divisor must be exactly
	// SpeedEpsilon, not zero.
	in := []Sample{
		yawSample(0, 0, 0, 0, 0),
		yawSample(100000, 0.1, 0, 0, 0),
	}

	out, err := Derive(in)
	require.NoError(t, err)

	assert.Equal(t, 0.0, out[1].Velocity)
	assert.InDelta(t, 1.0, out[1].YawRate, 1e-9)
	assert.InDelta(t, 100.0, out[1].CurvatureFeature, 1e-6)
}

func TestDeriveFirstRowBoundary(t *testing.T) {
	t.Parallel()

	// The first row after sorting gets fixed differences regardless of its
	// pose so no predecessor is ever invented.
	in := []Sample{
		yawSample(500, 1.2, 3, 4, 0),
		yawSample(1500, 1.3, 3, 4, 0),
	}

	out, err := Derive(in)
	require.NoError(t, err)

	first := out[0]
	assert.Equal(t, int64(500), first.Timestamp)
	assert.Equal(t, 0.0, first.DeltaYaw)
	assert.Equal(t, FirstDeltaTSeconds, first.DeltaT)
	assert.Equal(t, 0.0, first.YawRate)
	assert.Equal(t, 0.0, first.CurvatureFeature)
}

func TestDeriveSortsAndLeavesInputAlone(t *testing.T) {
	t.Parallel()

	shuffled := []Sample{
		yawSample(200000, 0.2, 1, 0, 0),
		yawSample(0, 0, 1, 0, 0),
		yawSample(100000, 0.1, 1, 0, 0),
	}
	ordered := []Sample{
		yawSample(0, 0, 1, 0, 0),
		yawSample(100000, 0.1, 1, 0, 0),
		yawSample(200000, 0.2, 1, 0, 0),
	}

	fromShuffled, err := Derive(shuffled)
	require.NoError(t, err)
	fromOrdered, err := Derive(ordered)
	require.NoError(t, err)

	// Input order must not matter.
	assert.Empty(t, cmp.Diff(fromOrdered, fromShuffled))

	for i := 1; i < len(fromShuffled); i++ {
		assert.LessOrEqual(t, fromShuffled[i-1].Timestamp, fromShuffled[i].Timestamp)
	}

	// The caller's slice is untouched.
	assert.Equal(t, int64(200000), shuffled[0].Timestamp)
	assert.Equal(t, 0.0, shuffled[0].Yaw)
}

func TestDeriveDuplicateTimestamps(t *testing.T) {
	t.Parallel()

	// Two rows sharing a timestamp produce DeltaT == 0; the rate follows
	// float division rather than being rejected.
	in := []Sample{
		yawSample(0, 0, 1, 0, 0),
		yawSample(100000, 0.1, 1, 0, 0),
		yawSample(100000, 0.5, 1, 0, 0),
	}

	out, err := Derive(in)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, 0.0, out[2].DeltaT)
	assert.True(t, math.IsInf(out[2].YawRate, 1))
	assert.True(t, math.IsInf(out[2].CurvatureFeature, 1))
}

func TestDeriveVelocityMagnitude(t *testing.T) {
	t.Parallel()

	in := []Sample{
		yawSample(0, 0, -3, 4, -12),
		yawSample(100000, 0, -3, 4, -12),
	}

	out, err := Derive(in)
	require.NoError(t, err)

	for i, s := range out {
		assert.InDelta(t, 13.0, s.Velocity, 1e-12, "row %d", i)
		assert.GreaterOrEqual(t, s.Velocity, 0.0, "row %d", i)
	}
}

func TestDerivePreservesRecordedColumns(t *testing.T) {
	t.Parallel()

	in := []Sample{
		{Timestamp: 0, QW: 1, VX: 1, Curvature: 0.042},
		{Timestamp: 100000, QW: 1, VX: 1, Curvature: -0.007},
	}

	out, err := Derive(in)
	require.NoError(t, err)

	assert.Equal(t, 0.042, out[0].Curvature)
	assert.Equal(t, -0.007, out[1].Curvature)
	assert.Equal(t, 1.0, out[0].QW)
	assert.Equal(t, 1.0, out[0].VX)
}

func TestYawFromQuaternion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaw  float64
	}{
		{"identity", 0},
		{"quarter turn left", math.Pi / 2},
		{"quarter turn right", -math.Pi / 2},
		{"half turn", math.Pi},
		{"small angle", 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := YawFromQuaternion(0, 0, math.Sin(tt.yaw/2), math.Cos(tt.yaw/2))
			assert.InDelta(t, tt.yaw, got, 1e-9)
		})
	}
}

func TestUnwrapAngles(t *testing.T) {
	t.Parallel()

	t.Run("empty and single element", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, UnwrapAngles(nil))
		assert.Equal(t, []float64{1.5}, UnwrapAngles([]float64{1.5}))
	})

	t.Run("small steps pass through", func(t *testing.T) {
		t.Parallel()

		in := []float64{0, 0.5, 1.0, 0.8}
		assert.Equal(t, in, UnwrapAngles(in))
	})

	t.Run("seam crossing is lifted", func(t *testing.T) {
		t.Parallel()

		out := UnwrapAngles([]float64{3.0, -3.0})
		assert.Equal(t, 3.0, out[0])
		assert.InDelta(t, -3.0+2*math.Pi, out[1], 1e-12)
	})

	t.Run("recovers a continuous ramp", func(t *testing.T) {
		t.Parallel()

		// Heading ramps through several full turns; the wrapped version
		// jumps at the seam, the unwrapped version must match the ramp.
		var wrapped, ramp []float64
		for i := 0; i < 40; i++ {
			angle := 0.4 * float64(i)
			ramp = append(ramp, angle)
			wrapped = append(wrapped, math.Atan2(math.Sin(angle), math.Cos(angle)))
		}

		out := UnwrapAngles(wrapped)
		for i := range out {
			assert.InDelta(t, ramp[i], out[i], 1e-9, "index %d", i)
			if i > 0 {
				assert.LessOrEqual(t, math.Abs(out[i]-out[i-1]), math.Pi+1e-9)
			}
		}
	})
}

func TestValidateSamples(t *testing.T) {
	t.Parallel()

	valid := []Sample{
		yawSample(0, 0, 1, 0, 0),
		yawSample(100000, 0.2, 1, 0, 0),
	}
	require.NoError(t, ValidateSamples(valid))

	nanRow := append([]Sample{}, valid...)
	nanRow[1].QY = math.NaN()
	err := ValidateSamples(nanRow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample 1")
	assert.Contains(t, err.Error(), "qy")

	infRow := append([]Sample{}, valid...)
	infRow[0].VZ = math.Inf(-1)
	err = ValidateSamples(infRow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample 0")
	assert.Contains(t, err.Error(), "vz")
}

func TestCSVRowMatchesHeader(t *testing.T) {
	t.Parallel()

	header := CSVHeader()
	s := Sample{Timestamp: 123, QW: 1, VX: 2.5, Curvature: 0.25}
	row := s.CSVRow()

	require.Len(t, row, len(header))
	assert.Equal(t, "timestamp", header[0])
	assert.Equal(t, "123", row[0])
	assert.Equal(t, "curvature_feature", header[len(header)-1])
	assert.Equal(t, "2.5", row[5])
	assert.Equal(t, "0.25", row[8])
}
