// Package variation provides the deterministic per-instance noise used to
// vary petals, sepals and leaves. Values are reproducible across runs.
package variation

import (
	gomath "math"

	"github.com/Faultbox/flora/pkg/math"
)

const (
	indexMul = 12.9898
	ringMul  = 78.233
	saltMul  = 37.719
	hashMul  = 43758.5453
)

// Seed returns a value in [0,1) determined only by (i, ring).
func Seed(i, ring int) float32 {
	return SeedN(i, ring, 0)
}

// SeedN is Seed with an extra salt so one instance can draw several
// independent values (droop, twist, jitter) from the same coordinates.
func SeedN(i, ring, salt int) float32 {
	h := gomath.Sin(float64(i)*indexMul+float64(ring)*ringMul+float64(salt)*saltMul) * hashMul
	v := float32(math.Fract(h))
	// float32 rounding can push 0.99999999 up to 1.
	if v >= 1 {
		v = 0
	}
	return v
}

// Signed maps a seed value from [0,1) to [-1,1).
func Signed(v float32) float32 {
	return v*2 - 1
}
