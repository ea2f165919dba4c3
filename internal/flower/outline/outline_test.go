package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/flora/pkg/math"
)

func signedArea(pts []math.Vec2) float32 {
	var a float32
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].Cross(pts[j])
	}
	return a / 2
}

func TestPetalIsClosedSixSegments(t *testing.T) {
	o := Petal(1)
	segs := o.Segments()
	require.Len(t, segs, 6)
	assert.Equal(t, KindPetal, o.Kind())

	for i := range segs {
		next := segs[(i+1)%len(segs)]
		assert.InDelta(t, 0, segs[i].P3.Distance(next.P0), 1e-6, "segment %d not connected", i)
	}
	assert.Equal(t, math.Vec2{}, segs[0].P0)
	assert.InDelta(t, 1, segs[2].P3.Y, 1e-6)
}

func TestPetalMirrored(t *testing.T) {
	pts := Petal(1.3).Sample(8)
	n := len(pts)
	require.Equal(t, 6*8, n)
	// Point k on the right side mirrors point n-k on the left side.
	for k := 1; k < n/2; k++ {
		r, l := pts[k], pts[n-k]
		assert.InDelta(t, r.X, -l.X, 1e-5, "k=%d", k)
		assert.InDelta(t, r.Y, l.Y, 1e-5, "k=%d", k)
	}
}

func TestPetalWidthScale(t *testing.T) {
	maxX := func(pts []math.Vec2) float32 {
		var m float32
		for _, p := range pts {
			if p.X > m {
				m = p.X
			}
		}
		return m
	}
	narrow := maxX(Petal(1).Sample(16))
	wide := maxX(Petal(2).Sample(16))
	assert.InDelta(t, 2*narrow, wide, 1e-5)
}

func TestOutlinesCounterClockwise(t *testing.T) {
	for _, o := range []Outline{Petal(1), Sepal(), Leaf(8)} {
		assert.Greater(t, signedArea(o.Sample(6)), float32(0), o.Kind().String())
	}
}

func TestLeafSerration(t *testing.T) {
	const teeth = 5
	o := Leaf(teeth)
	pts := o.Sample(10)
	// Linear segments sample once: 2 sides * 2*teeth edges.
	require.Len(t, pts, 4*teeth)

	// Right side margin: indices 1..2*teeth-1 alternate out / in.
	for k := 1; k < 2*teeth; k++ {
		base := LeafHalfWidth(pts[k].Y)
		if k%2 == 1 {
			assert.Greater(t, pts[k].X, base, "tooth %d should point out", k)
		} else {
			assert.Less(t, pts[k].X, base, "tooth %d should point in", k)
		}
		assert.Greater(t, pts[k].X, float32(0))
	}
}

func TestLeafSerrationDepthFollowsSine(t *testing.T) {
	pts := Leaf(10).Sample(1)
	depth := func(k int) float32 {
		d := pts[k].X - LeafHalfWidth(pts[k].Y)
		if d < 0 {
			d = -d
		}
		return d
	}
	// Depth near the middle exceeds depth near the base and the tip.
	mid := depth(10)
	assert.Greater(t, mid, depth(1))
	assert.Greater(t, mid, depth(19))
}

func TestLeafClampsSerrations(t *testing.T) {
	assert.Len(t, Leaf(0).Sample(1), 4)
}

func TestSampleMinimumDivisions(t *testing.T) {
	assert.Len(t, Sepal().Sample(0), 4)
}
