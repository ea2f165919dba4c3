package math

import (
	gomath "math"

	"github.com/chewxy/math32"
)

// GoldenAngle is π·(3−√5) radians, about 137.508°.
const GoldenAngle = float32(2.399963229728653)

// TwoPi is 2π as float32.
const TwoPi = float32(2 * gomath.Pi)

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * (math32.Pi / 180)
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float32) float32 {
	return rad * (180 / math32.Pi)
}

// Lerp linearly interpolates from a to b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Fract returns the fractional part of x in [0, 1), also for negative x.
func Fract(x float64) float64 {
	f := x - gomath.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float32) bool {
	return !math32.IsNaN(x) && !math32.IsInf(x, 0)
}

// WrapAngle maps an angle in radians into [0, 2π).
func WrapAngle(a float32) float32 {
	a = math32.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	if a >= TwoPi {
		a = 0
	}
	return a
}

// AngleDistance returns the absolute shortest distance between two angles
// in radians, in [0, π].
func AngleDistance(a, b float32) float32 {
	d := WrapAngle(a - b)
	if d > math32.Pi {
		d = TwoPi - d
	}
	return d
}
