// Package mesh builds petal, sepal, leaf and disc geometry: flat outlines
// extruded into thin solids and bent by a depth field, and the domed centre.
package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/flora/internal/flower/outline"
	"github.com/Faultbox/flora/internal/flower/quality"
	"github.com/Faultbox/flora/internal/flower/variation"
	"github.com/Faultbox/flora/internal/geom"
	"github.com/Faultbox/flora/pkg/math"
)

// DeformParams shapes the Z (depth) displacement field applied to an
// extruded outline. All terms are additive.
type DeformParams struct {
	// Longitudinal curl: y^CurlPower * (CurlBase + ring*CurlPerRing + seed*CurlJitter).
	CurlBase    float32
	CurlPerRing float32
	CurlJitter  float32
	CurlPower   float32

	// Transverse channel: (|x|*ChannelK)^2 * ChannelDepth * (1 - y*ChannelTaper).
	ChannelK     float32
	ChannelDepth float32
	ChannelTaper float32

	// Twist: x*y*Twist*signed(seed).
	Twist float32

	// Lateral wave amplitude, only used with secondary detail.
	WaveAmplitude float32
}

// PetalDeform is the deformation used for petals.
var PetalDeform = DeformParams{
	CurlBase: 0.12, CurlPerRing: 0.06, CurlJitter: 0.08, CurlPower: 2.1,
	ChannelK: 2.5, ChannelDepth: 0.1, ChannelTaper: 0.45,
	Twist:         0.08,
	WaveAmplitude: 0.012,
}

// SepalDeform is the deformation used for sepals.
var SepalDeform = DeformParams{
	CurlBase: 0.2, CurlJitter: 0.05, CurlPower: 2.0,
	ChannelK: 3, ChannelDepth: 0.06, ChannelTaper: 0.4,
	Twist: 0.04,
}

// LeafDeform is the deformation used for leaves.
var LeafDeform = DeformParams{
	CurlBase: 0.08, CurlJitter: 0.05, CurlPower: 2.2,
	ChannelK: 2, ChannelDepth: 0.08, ChannelTaper: 0.5,
	Twist:         0.1,
	WaveAmplitude: 0.008,
}

// DeformFor returns the preset for an outline kind.
func DeformFor(k outline.Kind) DeformParams {
	switch k {
	case outline.KindSepal:
		return SepalDeform
	case outline.KindLeaf:
		return LeafDeform
	default:
		return PetalDeform
	}
}

// Displace returns the deformed position of a local point (x, y, z).
func (p DeformParams) Displace(pos math.Vec3, ring int, seed float32, secondary bool) math.Vec3 {
	x, y := pos.X, pos.Y
	yy := math.Clamp(y, 0, 1)

	curl := math32.Pow(yy, p.CurlPower) * (p.CurlBase + float32(ring)*p.CurlPerRing + seed*p.CurlJitter)
	ch := math32.Abs(x) * p.ChannelK
	channel := ch * ch * p.ChannelDepth * (1 - y*p.ChannelTaper)
	twist := x * y * p.Twist * variation.Signed(seed)

	out := math.Vec3{X: x, Y: y, Z: pos.Z + curl + channel + twist}
	if secondary && p.WaveAmplitude != 0 {
		out.X += math32.Sin(y*math.TwoPi) * p.WaveAmplitude
	}
	return out
}

// ExtrudeAndDeform extrudes an outline into a thin solid of the given depth
// and bends it with the preset matching the outline kind.
func ExtrudeAndDeform(o outline.Outline, depth float32, tier quality.Tier, ring int, seed float32) *geom.Mesh {
	return ExtrudeAndDeformWith(o, depth, tier, ring, seed, DeformFor(o.Kind()))
}

// layer is one ring of the side wall: the outline, optionally inset, at a
// given depth.
type layer struct {
	inset bool
	z     float32
}

// ExtrudeAndDeformWith is ExtrudeAndDeform with explicit deformation
// parameters. Output is a pure function of its inputs.
func ExtrudeAndDeformWith(o outline.Outline, depth float32, tier quality.Tier, ring int, seed float32, params DeformParams) *geom.Mesh {
	pts := o.Sample(tier.CurveSegments)
	n := len(pts)
	if n < 3 {
		return &geom.Mesh{Name: o.Kind().String()}
	}
	tris := geom.Triangulate(pts)

	half := depth / 2
	layers := []layer{{false, half}, {false, -half}}
	var insetPts []math.Vec2
	if tier.ExtrudeBevel {
		bevel := depth * 0.5
		insetPts = inset(pts, tris, bevel)
		layers = []layer{{true, half + bevel}, {false, half}, {false, -half}, {true, -half - bevel}}
	}
	at := func(l layer, i int) math.Vec2 {
		if l.inset {
			return insetPts[i]
		}
		return pts[i]
	}

	minX, maxX, minY, maxY := extents(pts)
	uv := func(p math.Vec2) (float32, float32) {
		return (p.X - minX) / nonZero(maxX-minX), (p.Y - minY) / nonZero(maxY-minY)
	}

	var b geom.Builder

	// Front cap, facing +Z.
	front := layers[0]
	frontBase := uint32(0)
	for i := 0; i < n; i++ {
		p := at(front, i)
		u, v := uv(p)
		b.Vertex(math.Vec3{X: p.X, Y: p.Y, Z: front.z}, u, v)
	}
	for t := 0; t+2 < len(tris); t += 3 {
		b.Tri(frontBase+tris[t], frontBase+tris[t+1], frontBase+tris[t+2])
	}

	// Back cap, facing -Z.
	back := layers[len(layers)-1]
	backBase := uint32(n)
	for i := 0; i < n; i++ {
		p := at(back, i)
		u, v := uv(p)
		b.Vertex(math.Vec3{X: p.X, Y: p.Y, Z: back.z}, 1-u, v)
	}
	for t := 0; t+2 < len(tris); t += 3 {
		b.Tri(backBase+tris[t], backBase+tris[t+2], backBase+tris[t+1])
	}

	// Side walls. Each layer repeats its first point so the U seam closes.
	perim := perimeter(pts)
	ringBase := make([]uint32, len(layers))
	for li, l := range layers {
		ringBase[li] = uint32(b.VertexCount())
		var walked float32
		for i := 0; i <= n; i++ {
			if i > 0 {
				walked += pts[i%n].Distance(pts[i-1])
			}
			p := at(l, i%n)
			b.Vertex(math.Vec3{X: p.X, Y: p.Y, Z: l.z}, walked/nonZero(perim), float32(li)/float32(len(layers)-1))
		}
	}
	for li := 0; li+1 < len(layers); li++ {
		a, c := ringBase[li], ringBase[li+1]
		for i := uint32(0); i < uint32(n); i++ {
			b.Tri(c+i, c+i+1, a+i+1)
			b.Tri(c+i, a+i+1, a+i)
		}
	}

	m := b.Finish(o.Kind().String())
	for i := 0; i < m.VertexCount(); i++ {
		m.SetPosition(i, params.Displace(m.Position(i), ring, seed, tier.EnableSecondaryDetail))
	}
	geom.RecomputeNormals(m)
	return m
}

// miterLimit caps how far a sharp vertex may be pushed, as a multiple of d.
const miterLimit = 2

// inset moves each point of the polygon inward by d along its corner
// bisector, miter-corrected up to miterLimit. The caps reuse tris,
// so any vertex of a triangle that would flip is pulled back toward the
// outline until every triangle keeps its winding.
func inset(pts []math.Vec2, tris []uint32, d float32) []math.Vec2 {
	n := len(pts)
	// Left of a counter-clockwise edge is inside.
	side := float32(1)
	if geom.PolygonArea(pts) < 0 {
		side = -1
	}
	dirs := make([]math.Vec2, n)
	dist := make([]float32, n)
	for i := range pts {
		prev, next := pts[(i+n-1)%n], pts[(i+1)%n]
		e0 := pts[i].Sub(prev).Normalize()
		e1 := next.Sub(pts[i]).Normalize()
		n0 := math.Vec2{X: -e0.Y, Y: e0.X}.Scale(side)
		n1 := math.Vec2{X: -e1.Y, Y: e1.X}.Scale(side)
		dirs[i] = n0.Add(n1).Normalize()
		if c := dirs[i].Dot(n0); c > 1/float32(miterLimit) {
			dist[i] = d / c
		} else {
			dist[i] = d * miterLimit
		}
	}

	out := make([]math.Vec2, n)
	place := func() {
		for i := range pts {
			out[i] = pts[i].Add(dirs[i].Scale(dist[i]))
		}
	}
	place()
	floor := d / 16
	for {
		moved := false
		for t := 0; t+2 < len(tris); t += 3 {
			a, b, c := tris[t], tris[t+1], tris[t+2]
			if geom.TriangleArea(pts[a], pts[b], pts[c]) <= 0 || geom.TriangleArea(out[a], out[b], out[c]) > 0 {
				continue
			}
			for _, k := range [3]uint32{a, b, c} {
				if dist[k] == 0 {
					continue
				}
				dist[k] /= 2
				if dist[k] < floor {
					dist[k] = 0
				}
				moved = true
			}
		}
		if !moved {
			return out
		}
		place()
	}
}

func extents(pts []math.Vec2) (minX, maxX, minY, maxY float32) {
	minX, minY = pts[0].X, pts[0].Y
	maxX, maxY = minX, minY
	for _, p := range pts[1:] {
		minX = math32.Min(minX, p.X)
		maxX = math32.Max(maxX, p.X)
		minY = math32.Min(minY, p.Y)
		maxY = math32.Max(maxY, p.Y)
	}
	return minX, maxX, minY, maxY
}

func perimeter(pts []math.Vec2) float32 {
	var total float32
	for i := range pts {
		total += pts[i].Distance(pts[(i+1)%len(pts)])
	}
	return total
}

func nonZero(x float32) float32 {
	if x == 0 {
		return 1
	}
	return x
}
