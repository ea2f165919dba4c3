// Package layout places petals, sepals and leaves using phyllotaxis: even
// spacing inside a ring, with each ring rotated by a golden-angle fraction so
// consecutive rings never line up.
package layout

import (
	"github.com/Faultbox/flora/internal/flower/quality"
	"github.com/Faultbox/flora/internal/flower/variation"
	"github.com/Faultbox/flora/pkg/math"
)

// Seed salts keep sepal and leaf noise independent of the petal rings.
const (
	sepalSalt = 11
	leafSalt  = 23
)

// Time offsets desynchronise sway phase between instances.
const (
	instanceTimeStep = 0.37
	ringTimeBias     = 1.3
	sepalTimeBias    = 0.9
	leafTimeStep     = 0.61
	leafTimeBias     = 2.1
)

// Instance fully determines where one petal, sepal or leaf sits and how its
// shape varies. It is created once per flower build and never modified.
type Instance struct {
	Index       int
	RingIndex   int
	CountInRing int
	RingRadius  float32
	// AngularOffset is the rotation of the whole ring; see Angle.
	AngularOffset float32
	TimeOffset    float32
	Seed          float32
	// Along is the position on the stem in [0,1]. Only leaves use it.
	Along float32
}

// Angle returns the instance's angle around the flower axis in radians:
// (index / count)·2π + AngularOffset.
func (in Instance) Angle() float32 {
	if in.CountInRing <= 0 {
		return in.AngularOffset
	}
	return float32(in.Index)/float32(in.CountInRing)*math.TwoPi + in.AngularOffset
}

// RingOffsets returns the rotation of every ring for the given per-ring
// instance counts. Each ring turns GoldenAngle/lcm(c[r-1], c[r]) further than
// the ring inside it. The angles two rings share repeat every 2π/lcm, so this
// puts ring r a golden fraction (about 38%) of that period away from ring
// r-1, whether the counts match or not.
func RingOffsets(counts []int) []float32 {
	out := make([]float32, len(counts))
	for r := 1; r < len(counts); r++ {
		out[r] = out[r-1] + math.GoldenAngle/float32(lcm(counts[r-1], counts[r]))
	}
	return out
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// lcm is at least 1 so a bad count still yields a finite offset.
func lcm(a, b int) int {
	if a <= 0 || b <= 0 {
		return 1
	}
	return a / gcd(a, b) * b
}

// Rings lays out every petal ring of the tier, inner ring first.
func Rings(tier quality.Tier) []Instance {
	rings := tier.RingCount()
	offsets := RingOffsets(tier.InstanceCountsPerRing)
	out := make([]Instance, 0, tier.PetalCount())
	for r := 0; r < rings; r++ {
		c := tier.InstanceCountsPerRing[r]
		for i := 0; i < c; i++ {
			out = append(out, Instance{
				Index:         i,
				RingIndex:     r,
				CountInRing:   c,
				RingRadius:    tier.RingRadii[r],
				AngularOffset: offsets[r],
				TimeOffset:    float32(i)*instanceTimeStep + float32(r)*ringTimeBias,
				Seed:          variation.Seed(i, r),
			})
		}
	}
	return out
}

// Sepals lays out a single ring below the petals, rotated half a petal
// spacing so each sepal shows between two inner petals.
func Sepals(tier quality.Tier) []Instance {
	c := tier.SepalCount
	if c <= 0 {
		return nil
	}
	var offset, radius float32
	if tier.RingCount() > 0 {
		offset = math.TwoPi / float32(tier.InstanceCountsPerRing[0]) / 2
		radius = tier.RingRadii[0] * 0.8
	}
	out := make([]Instance, c)
	for i := range out {
		out[i] = Instance{
			Index:         i,
			CountInRing:   c,
			RingRadius:    radius,
			AngularOffset: offset,
			TimeOffset:    float32(i)*instanceTimeStep + sepalTimeBias,
			Seed:          variation.SeedN(i, 0, sepalSalt),
		}
	}
	return out
}

// Leaves spreads the tier's leaves along the lower stem. Each leaf turns a
// full golden angle from the previous one around the stem.
func Leaves(tier quality.Tier) []Instance {
	n := tier.LeafCount
	if n <= 0 {
		return nil
	}
	out := make([]Instance, n)
	for i := range out {
		out[i] = Instance{
			Index:         i,
			CountInRing:   1,
			AngularOffset: float32(i) * math.GoldenAngle,
			TimeOffset:    float32(i)*leafTimeStep + leafTimeBias,
			Seed:          variation.SeedN(i, 0, leafSalt),
			Along:         0.2 + 0.5*float32(i+1)/float32(n+1),
		}
	}
	return out
}
