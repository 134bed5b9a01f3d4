// SPDX-License-Identifier: EPL-2.0

// Package pcm provides sample-format helpers shared across the recorder:
// conversions between unsigned 8-bit samples and normalized float32,
// midpoint computation for the 3:2 playback expansion, and cubic
// interpolation used by the import resampler.
package pcm

// Silence is the unsigned 8-bit level corresponding to a zero signal.
const Silence byte = 0x80

// Float32ToU8 converts a normalized sample in [-1, 1] to an unsigned
// 8-bit level centered on Silence. Input is clamped.
func Float32ToU8(x float32) byte {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 127 for positive max to avoid overflow past 255
	return byte(int16(x*127.0) + int16(Silence))
}

// U8ToFloat32 converts an unsigned 8-bit level to a normalized sample.
func U8ToFloat32(b byte) float32 {
	return (float32(b) - float32(Silence)) / 128.0
}

// Midpoint returns the arithmetic mean of two unsigned 8-bit samples.
// The sum is promoted to uint16 before the division, and the division
// truncates (round-half-down), so Midpoint(10, 11) == 10.
func Midpoint(a, b byte) byte {
	return byte((uint16(a) + uint16(b)) / 2)
}

// CubicInterpolate evaluates a Catmull-Rom segment at fraction x of
// the way from y1 to y2. The outer samples y0 and y3 only shape the
// tangents, so the curve passes through y1 at x=0 and y2 at x=1.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	x2 := x * x
	return a0*x2*x + a1*x2 + a2*x + y1
}
