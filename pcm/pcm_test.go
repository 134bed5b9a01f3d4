// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"math"
	"testing"
)

func TestMidpoint_RoundHalfDown(t *testing.T) {
	t.Parallel()

	if got := Midpoint(10, 11); got != 10 {
		t.Errorf("Midpoint(10, 11) = %d, want 10", got)
	}

	if got := Midpoint(10, 10); got != 10 {
		t.Errorf("Midpoint(10, 10) = %d, want 10", got)
	}
}

func TestMidpoint_NoOverflow(t *testing.T) {
	t.Parallel()

	// Both operands at full scale must not wrap in 8 bits
	if got := Midpoint(255, 255); got != 255 {
		t.Errorf("Midpoint(255, 255) = %d, want 255", got)
	}

	if got := Midpoint(255, 254); got != 254 {
		t.Errorf("Midpoint(255, 254) = %d, want 254", got)
	}
}

func TestFloat32ToU8_Clamping(t *testing.T) {
	t.Parallel()

	if got := Float32ToU8(2.0); got != Float32ToU8(1.0) {
		t.Errorf("Float32ToU8(2.0) = %d, want clamp to %d", got, Float32ToU8(1.0))
	}

	if got := Float32ToU8(-2.0); got != Float32ToU8(-1.0) {
		t.Errorf("Float32ToU8(-2.0) = %d, want clamp to %d", got, Float32ToU8(-1.0))
	}

	if got := Float32ToU8(0); got != Silence {
		t.Errorf("Float32ToU8(0) = %d, want %d", got, Silence)
	}
}

func TestU8Float32_RoundTrip(t *testing.T) {
	t.Parallel()

	// Round-tripping through float32 must stay within one quantization step
	for v := 0; v <= 255; v++ {
		f := U8ToFloat32(byte(v))
		back := Float32ToU8(f)

		diff := int(back) - v
		if diff < -1 || diff > 1 {
			t.Errorf("round trip %d -> %v -> %d, drift %d", v, f, back, diff)
		}
	}
}

func TestCubicInterpolate_Endpoints(t *testing.T) {
	t.Parallel()

	// At x=0 the spline passes through y1, at x=1 through y2
	if got := CubicInterpolate(0, 0.5, 1.0, 1.5, 0); got != 0.5 {
		t.Errorf("CubicInterpolate(..., 0) = %v, want 0.5", got)
	}

	got := CubicInterpolate(0, 0.5, 1.0, 1.5, 1)
	if math.Abs(float64(got)-1.0) > 1e-6 {
		t.Errorf("CubicInterpolate(..., 1) = %v, want 1.0", got)
	}
}

func TestCubicInterpolate_LinearSegment(t *testing.T) {
	t.Parallel()

	// Catmull-Rom reproduces a straight line exactly
	got := CubicInterpolate(0, 1, 2, 3, 0.5)
	if math.Abs(float64(got)-1.5) > 1e-6 {
		t.Errorf("CubicInterpolate(0,1,2,3, 0.5) = %v, want 1.5", got)
	}
}

func BenchmarkFloat32ToU8(b *testing.B) {
	var result byte
	x := float32(0.37)

	b.ResetTimer()
	b.ReportAllocs()

	for it := 0; it < b.N; it++ {
		result = Float32ToU8(x)
	}

	_ = result
}

func BenchmarkMidpoint(b *testing.B) {
	var result byte

	b.ResetTimer()
	b.ReportAllocs()

	for it := 0; it < b.N; it++ {
		result = Midpoint(result, 200)
	}

	_ = result
}
