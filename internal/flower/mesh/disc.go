package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/flora/internal/flower/quality"
	"github.com/Faultbox/flora/internal/geom"
	"github.com/Faultbox/flora/pkg/math"
)

// DiscParams describes the domed flower centre.
type DiscParams struct {
	Radius float32
	Height float32
	// Centre and rim colours, used when the tier enables secondary detail.
	CenterColor math.Vec3
	RimColor    math.Vec3
}

// DefaultDisc is a low yellow-brown dome sized to sit inside the first ring.
var DefaultDisc = DiscParams{
	Radius:      0.07,
	Height:      0.025,
	CenterColor: math.Vec3{X: 0.35, Y: 0.22, Z: 0.05},
	RimColor:    math.Vec3{X: 0.85, Y: 0.65, Z: 0.15},
}

// Disc builds a paraboloid dome facing +Y: ring k of tier.DiscRings sits at
// radius R*s and height H*(1-s²), s = k/rings.
func Disc(tier quality.Tier, p DiscParams) *geom.Mesh {
	segs := tier.DiscRadialSegments
	rings := tier.DiscRings
	colored := tier.EnableSecondaryDetail

	var b geom.Builder
	var colors []float32

	// Apex.
	apex := b.Vertex(math.Vec3{X: 0, Y: p.Height, Z: 0}, 0.5, 0.5)
	if colored {
		colors = append(colors, p.CenterColor.X, p.CenterColor.Y, p.CenterColor.Z)
	}

	ringStart := make([]uint32, rings+1)
	for k := 1; k <= rings; k++ {
		s := float32(k) / float32(rings)
		r := p.Radius * s
		y := p.Height * (1 - s*s)
		c := p.CenterColor.Lerp(p.RimColor, s)
		ringStart[k] = uint32(b.VertexCount())
		for j := 0; j < segs; j++ {
			a := float32(j) / float32(segs) * math.TwoPi
			x, z := r*math32.Cos(a), r*math32.Sin(a)
			b.Vertex(math.Vec3{X: x, Y: y, Z: z}, 0.5+x/(2*p.Radius), 0.5+z/(2*p.Radius))
			if colored {
				colors = append(colors, c.X, c.Y, c.Z)
			}
		}
	}

	seg := uint32(segs)
	// Apex fan. Angle increases from +X toward +Z, so (apex, j+1, j) faces +Y.
	for j := uint32(0); j < seg; j++ {
		b.Tri(apex, ringStart[1]+(j+1)%seg, ringStart[1]+j)
	}
	for k := 1; k < rings; k++ {
		in, out := ringStart[k], ringStart[k+1]
		for j := uint32(0); j < seg; j++ {
			j1 := (j + 1) % seg
			b.Tri(in+j, in+j1, out+j1)
			b.Tri(in+j, out+j1, out+j)
		}
	}

	m := b.Finish("disc")
	if colored {
		m.Colors = colors
	}
	geom.RecomputeNormals(m)
	return m
}
