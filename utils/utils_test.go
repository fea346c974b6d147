// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToPCM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    float32
		bitDepth int
		want     int
	}{
		{name: "zero 16", input: 0, bitDepth: 16, want: 0},
		{name: "full 16", input: 1, bitDepth: 16, want: math.MaxInt16},
		{name: "negative full 16", input: -1, bitDepth: 16, want: -math.MaxInt16},
		{name: "half 16", input: 0.5, bitDepth: 16, want: 16383},
		{name: "clamp 16", input: 3, bitDepth: 16, want: math.MaxInt16},
		{name: "clamp negative 16", input: -3, bitDepth: 16, want: -math.MaxInt16},
		{name: "full 24", input: 1, bitDepth: 24, want: 8388607},
		{name: "negative full 24", input: -1, bitDepth: 24, want: -8388607},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToPCM(tt.input, tt.bitDepth); got != tt.want {
				t.Errorf("Float32ToPCM(%v, %d) = %d, want %d", tt.input, tt.bitDepth, got, tt.want)
			}
		})
	}
}

func TestFloat32ToInt16_Symmetry(t *testing.T) {
	t.Parallel()

	for _, x := range []float32{0.1, 0.25, 0.75, 0.999} {
		if pos, neg := Float32ToInt16(x), Float32ToInt16(-x); pos != -neg {
			t.Errorf("Float32ToInt16(%v) = %d, Float32ToInt16(-%v) = %d, want mirrored", x, pos, x, neg)
		}
	}
}

func TestDecibelsToGain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		db   float64
		want float64
	}{
		{db: 0, want: 1},
		{db: 20, want: 10},
		{db: -20, want: 0.1},
		{db: -6.0206, want: 0.5},
	}

	for _, tt := range tests {
		if got := DecibelsToGain(tt.db); math.Abs(got-tt.want) > 1e-4 {
			t.Errorf("DecibelsToGain(%v) = %v, want %v", tt.db, got, tt.want)
		}
	}
}

func TestGainToDecibels_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, db := range []float64{-48, -12, 0, 3.5, 12} {
		if got := GainToDecibels(DecibelsToGain(db)); math.Abs(got-db) > 1e-9 {
			t.Errorf("GainToDecibels(DecibelsToGain(%v)) = %v", db, got)
		}
	}

	if got := GainToDecibels(0); !math.IsInf(got, -1) {
		t.Errorf("GainToDecibels(0) = %v, want -Inf", got)
	}
}

func TestCubicInterpolate_Endpoints(t *testing.T) {
	t.Parallel()

	p0, p1, p2, p3 := float32(0.1), float32(0.4), float32(-0.2), float32(0.3)

	if got := CubicInterpolate(p0, p1, p2, p3, 0); got != p1 {
		t.Errorf("t=0: got %v, want %v", got, p1)
	}

	if got := CubicInterpolate(p0, p1, p2, p3, 1); math.Abs(float64(got-p2)) > 1e-6 {
		t.Errorf("t=1: got %v, want %v", got, p2)
	}
}

func TestCubicInterpolate_Linear(t *testing.T) {
	t.Parallel()

	// A straight line stays a straight line.
	for _, x := range []float32{0, 0.25, 0.5, 0.75} {
		want := 1 + x
		if got := CubicInterpolate(0, 1, 2, 3, x); math.Abs(float64(got-want)) > 1e-6 {
			t.Errorf("CubicInterpolate(line, %v) = %v, want %v", x, got, want)
		}
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	for i := 0; b.Loop(); i++ {
		_ = CubicInterpolate(0.1, 0.2, 0.3, 0.4, float32(i%100)/100)
	}
}
