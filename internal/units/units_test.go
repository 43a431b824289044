package units

import (
	"math"
	"testing"
)

func TestMicrosToSeconds(t *testing.T) {
	tests := []struct {
		name     string
		us       int64
		expected float64
	}{
		{"zero", 0, 0.0},
		{"one second", 1_000_000, 1.0},
		{"one tick at 10 Hz", 100_000, 0.1},
		{"sub-microsecond rounding not needed", 1, 1e-6},
		{"negative difference", -500_000, -0.5},
		{"long clip", 3_600_000_000, 3600.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MicrosToSeconds(tt.us)
			if math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("MicrosToSeconds(%d) = %g, want %g", tt.us, result, tt.expected)
			}
		})
	}
}

func TestRadToDeg(t *testing.T) {
	tests := []struct {
		name string
		rad  float64
		deg  float64
	}{
		{"zero", 0, 0},
		{"right angle", math.Pi / 2, 90},
		{"straight", math.Pi, 180},
		{"full turn", 2 * math.Pi, 360},
		{"negative", -math.Pi / 4, -45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RadToDeg(tt.rad); math.Abs(got-tt.deg) > 1e-9 {
				t.Errorf("RadToDeg(%g) = %g, want %g", tt.rad, got, tt.deg)
			}
		})
	}
}

func TestMPSToKPH(t *testing.T) {
	tests := []struct {
		name     string
		speedMPS float64
		expected float64
	}{
		{"zero", 0.0, 0.0},
		{"city speed 13.89 m/s", 13.89, 50.004}, // ~50 km/h
		{"highway speed 27.78 m/s", 27.78, 100.008},
		{"walking speed 1.4 m/s", 1.4, 5.04},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MPSToKPH(tt.speedMPS)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("MPSToKPH(%f) = %f, want %f", tt.speedMPS, result, tt.expected)
			}
		})
	}
}
