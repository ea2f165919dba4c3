// Package stem builds the flower stem: a tube swept along a spline with
// parallel-transport frames and a tapered radius, falling back to a plain
// uniform tube whenever the frames cannot be computed.
package stem

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/flora/internal/flower/quality"
	"github.com/Faultbox/flora/internal/geom"
	"github.com/Faultbox/flora/internal/logger"
	"github.com/Faultbox/flora/pkg/math"
)

var (
	ErrEmptySpline     = errors.New("spline needs at least two control points")
	ErrDegenerateFrame = errors.New("degenerate stem frame")
)

// tangentEpsilon is the shortest derivative accepted as a direction.
const tangentEpsilon = 1e-6

// FallbackHeight is the length of the fallback tube when the spline has no
// usable extent.
const FallbackHeight = 1.0

// Params controls stem thickness, surface irregularity and colouring.
type Params struct {
	BaseRadius float32
	TipRadius  float32
	// Irregularity is the relative radius wobble per angle; 0 disables it.
	Irregularity float32
	Colored      bool
	BaseColor    math.Vec3
	TipColor     math.Vec3
}

// DefaultParams is a slim green stem, darker at the base.
var DefaultParams = Params{
	BaseRadius: 0.018,
	TipRadius:  0.011,
	BaseColor:  math.Vec3{X: 0.18, Y: 0.32, Z: 0.12},
	TipColor:   math.Vec3{X: 0.36, Y: 0.55, Z: 0.22},
}

// ParamsFor returns DefaultParams with the tier's secondary detail applied.
func ParamsFor(tier quality.Tier) Params {
	p := DefaultParams
	if tier.EnableSecondaryDetail {
		p.Irregularity = 0.06
		p.Colored = true
	}
	return p
}

// Radius returns the tapered radius at t in [0,1]: r0 - t*(r0 - r1).
func (p Params) Radius(t float32) float32 {
	return p.BaseRadius - t*(p.BaseRadius-p.TipRadius)
}

// Frame is an orthonormal basis at one sample along the spline.
type Frame struct {
	Point    math.Vec3
	Tangent  math.Vec3
	Normal   math.Vec3
	Binormal math.Vec3
}

func (f Frame) finite() bool {
	return f.Point.IsFinite() && f.Tangent.IsFinite() && f.Normal.IsFinite() && f.Binormal.IsFinite()
}

// Frames samples the spline at segments+1 evenly spaced parameters and
// carries a normal along it by parallel transport, so cross-sections do not
// twist. It fails with ErrDegenerateFrame when a tangent vanishes, flips, or
// any basis vector is not finite.
func Frames(s math.Spline, segments int) ([]Frame, error) {
	if s.Len() < 2 {
		return nil, ErrEmptySpline
	}
	if segments < 1 {
		segments = 1
	}

	frames := make([]Frame, segments+1)
	for i := range frames {
		t := float32(i) / float32(segments)
		d := s.Derivative(t)
		if l := d.Length(); l < tangentEpsilon || !math.IsFinite(l) {
			return nil, fmt.Errorf("%w: zero tangent at t=%.3f", ErrDegenerateFrame, t)
		}
		frames[i] = Frame{Point: s.Point(t), Tangent: d.Normalize()}
	}

	// Initial normal: perpendicular to the tangent, built from the world
	// axis the tangent is least aligned with.
	t0 := frames[0].Tangent
	axis := math.Vec3{X: 1}
	minAbs := math32.Abs(t0.X)
	if a := math32.Abs(t0.Y); a <= minAbs {
		minAbs = a
		axis = math.Vec3{Y: 1}
	}
	if a := math32.Abs(t0.Z); a <= minAbs {
		axis = math.Vec3{Z: 1}
	}
	v := t0.Cross(axis).Normalize()
	frames[0].Normal = t0.Cross(v)
	frames[0].Binormal = t0.Cross(frames[0].Normal)

	for i := 1; i < len(frames); i++ {
		prev, cur := frames[i-1].Tangent, frames[i].Tangent
		n := frames[i-1].Normal
		dot := math.Clamp(prev.Dot(cur), -1, 1)
		if dot < -0.999 {
			return nil, fmt.Errorf("%w: tangent reverses between samples %d and %d", ErrDegenerateFrame, i-1, i)
		}
		if ax := prev.Cross(cur); ax.Length() > tangentEpsilon {
			n = n.RotateAround(ax.Normalize(), math32.Acos(dot))
		}
		frames[i].Normal = n
		frames[i].Binormal = cur.Cross(n)
	}

	for i, f := range frames {
		if !f.finite() {
			return nil, fmt.Errorf("%w: non-finite basis at sample %d", ErrDegenerateFrame, i)
		}
	}
	return frames, nil
}

// TaperedTube sweeps a tapered, optionally irregular and coloured tube along
// the spline. Errors are ErrEmptySpline or ErrDegenerateFrame.
func TaperedTube(s math.Spline, tier quality.Tier, p Params) (*geom.Mesh, error) {
	frames, err := Frames(s, tier.StemLengthSegments)
	if err != nil {
		return nil, err
	}
	radius := func(t, angle float32) float32 {
		r := p.Radius(t)
		if p.Irregularity != 0 {
			r *= 1 + p.Irregularity*math32.Sin(3*angle+7*t)*math32.Cos(5*angle)
		}
		return r
	}
	m := sweep(frames, tier.StemRadialSegments, radius, p)
	geom.RecomputeNormals(m)
	geom.SmoothNormals(m)
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateFrame, err)
	}
	return m, nil
}

// UniformTube is the fallback: a constant-radius tube whose cross-sections
// stay in the horizontal plane. It never fails. Splines with no extent are
// replaced by a vertical segment of FallbackHeight from their first point.
func UniformTube(s math.Spline, tier quality.Tier, p Params) *geom.Mesh {
	segments := tier.StemLengthSegments
	if segments < 1 {
		segments = 1
	}
	var origin math.Vec3
	if s.Len() > 0 {
		origin = s.Points()[0]
	}
	if !origin.IsFinite() {
		origin = math.Vec3{}
	}
	straight := s.Len() < 2 || s.ChordLength() < tangentEpsilon || !math.IsFinite(s.ChordLength())

	frames := make([]Frame, segments+1)
	for i := range frames {
		t := float32(i) / float32(segments)
		pt := origin.Add(math.Vec3{Y: t * FallbackHeight})
		if !straight {
			if q := s.Point(t); q.IsFinite() {
				pt = q
			}
		}
		frames[i] = Frame{
			Point:    pt,
			Tangent:  math.Vec3{Y: 1},
			Normal:   math.Vec3{X: 1},
			Binormal: math.Vec3{Z: -1},
		}
	}

	r := (p.BaseRadius + p.TipRadius) / 2
	if r <= 0 || !math.IsFinite(r) {
		r = DefaultParams.BaseRadius
	}
	radial := tier.StemRadialSegments
	if radial < 3 {
		radial = 3
	}
	m := sweep(frames, radial, func(float32, float32) float32 { return r }, p)

	// Analytic normals: rings are horizontal circles.
	m.Normals = make([]float32, len(m.Positions))
	for i := range frames {
		for j := 0; j <= radial; j++ {
			a := float32(j) / float32(radial) * math.TwoPi
			k := 3 * (i*(radial+1) + j)
			m.Normals[k], m.Normals[k+1], m.Normals[k+2] = math32.Cos(a), 0, -math32.Sin(a)
		}
	}
	return m
}

// Build returns the tapered stem, or the uniform fallback tube when the
// tapered build fails. It always returns a renderable mesh.
func Build(s math.Spline, tier quality.Tier, p Params) *geom.Mesh {
	m, err := TaperedTube(s, tier, p)
	if err == nil {
		return m
	}
	logger.Named("stem").Warn("tapered stem failed, using uniform tube",
		zap.Error(err),
		zap.Int("control_points", s.Len()),
		zap.Float32("chord_length", s.ChordLength()),
	)
	return UniformTube(s, tier, p)
}

// sweep emits radial+1 vertices per frame (the first repeated for the UV
// seam) and stitches consecutive rings with two triangles per quad.
func sweep(frames []Frame, radial int, radius func(t, angle float32) float32, p Params) *geom.Mesh {
	rows := len(frames)
	cols := radial + 1
	m := &geom.Mesh{
		Name:      "stem",
		Positions: make([]float32, 0, 3*rows*cols),
		UVs:       make([]float32, 0, 2*rows*cols),
		Indices:   make([]uint32, 0, 6*(rows-1)*radial),
	}
	if p.Colored {
		m.Colors = make([]float32, 0, 3*rows*cols)
	}

	for i, f := range frames {
		t := float32(i) / float32(rows-1)
		c := p.BaseColor.Lerp(p.TipColor, t)
		for j := 0; j < cols; j++ {
			a := float32(j) / float32(radial) * math.TwoPi
			dir := f.Normal.Scale(math32.Cos(a)).Add(f.Binormal.Scale(math32.Sin(a)))
			pos := f.Point.Add(dir.Scale(radius(t, a)))
			m.Positions = append(m.Positions, pos.X, pos.Y, pos.Z)
			m.UVs = append(m.UVs, float32(j)/float32(radial), t)
			if p.Colored {
				m.Colors = append(m.Colors, c.X, c.Y, c.Z)
			}
		}
	}

	for i := 0; i+1 < rows; i++ {
		for j := 0; j < radial; j++ {
			a := uint32(i*cols + j)
			b := uint32((i+1)*cols + j)
			m.Indices = append(m.Indices, a, a+1, b+1, a, b+1, b)
		}
	}
	return m
}
