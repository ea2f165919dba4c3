// Package outline builds the closed 2D silhouettes of petals, sepals and
// leaves. Every outline lies in the XY plane with its base at the origin and
// its tip at (0, 1); x is the half-width axis.
package outline

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/flora/pkg/math"
)

// Kind identifies which organ an outline describes.
type Kind int

const (
	KindPetal Kind = iota
	KindSepal
	KindLeaf
)

func (k Kind) String() string {
	switch k {
	case KindPetal:
		return "petal"
	case KindSepal:
		return "sepal"
	case KindLeaf:
		return "leaf"
	}
	return "unknown"
}

// Segment is a cubic Bezier span. Linear segments are straight edges whose
// control points sit on the chord; they are sampled once.
type Segment struct {
	P0, P1, P2, P3 math.Vec2
	Linear         bool
}

// At evaluates the segment at u in [0,1].
func (s Segment) At(u float32) math.Vec2 {
	if s.Linear {
		return s.P0.Lerp(s.P3, u)
	}
	v := 1 - u
	b0 := v * v * v
	b1 := 3 * v * v * u
	b2 := 3 * v * u * u
	b3 := u * u * u
	return s.P0.Scale(b0).Add(s.P1.Scale(b1)).Add(s.P2.Scale(b2)).Add(s.P3.Scale(b3))
}

// mirror reflects the segment across the Y axis and reverses its direction,
// turning a right-hand span (base to tip) into the matching left-hand span
// (tip to base).
func (s Segment) mirror() Segment {
	flip := func(p math.Vec2) math.Vec2 { return math.Vec2{X: -p.X, Y: p.Y} }
	return Segment{P0: flip(s.P3), P1: flip(s.P2), P2: flip(s.P1), P3: flip(s.P0), Linear: s.Linear}
}

func line(a, b math.Vec2) Segment {
	return Segment{P0: a, P1: a.Lerp(b, 1.0/3), P2: a.Lerp(b, 2.0/3), P3: b, Linear: true}
}

// Outline is an immutable closed curve made of connected segments. The last
// segment ends where the first begins.
type Outline struct {
	kind     Kind
	segments []Segment
}

// Kind returns the organ this outline belongs to.
func (o Outline) Kind() Kind { return o.kind }

// Segments returns a copy of the curve segments.
func (o Outline) Segments() []Segment {
	return append([]Segment(nil), o.segments...)
}

// Sample flattens the outline into a closed polygon without a repeated end
// point. Curved segments contribute divisions points each, linear segments
// one.
func (o Outline) Sample(divisions int) []math.Vec2 {
	if divisions < 1 {
		divisions = 1
	}
	pts := make([]math.Vec2, 0, len(o.segments)*divisions)
	for _, s := range o.segments {
		if s.Linear {
			pts = append(pts, s.P0)
			continue
		}
		for k := 0; k < divisions; k++ {
			pts = append(pts, s.At(float32(k)/float32(divisions)))
		}
	}
	return pts
}

// closeSide appends the mirrored left side to a right side that runs from
// the base to the tip.
func closeSide(kind Kind, right []Segment) Outline {
	segs := make([]Segment, 0, 2*len(right))
	segs = append(segs, right...)
	for i := len(right) - 1; i >= 0; i-- {
		segs = append(segs, right[i].mirror())
	}
	return Outline{kind: kind, segments: segs}
}

// Petal returns the petal silhouette: narrow claw at the base, a wide body
// just above the middle and a tapered tip. Six segments, mirrored.
// widthScale multiplies every x coordinate.
func Petal(widthScale float32) Outline {
	w := widthScale
	p := func(x, y float32) math.Vec2 { return math.Vec2{X: x * w, Y: y} }
	right := []Segment{
		{P0: p(0, 0), P1: p(0.04, 0.03), P2: p(0.10, 0.12), P3: p(0.16, 0.25)},
		{P0: p(0.16, 0.25), P1: p(0.22, 0.38), P2: p(0.34, 0.47), P3: p(0.34, 0.60)},
		{P0: p(0.34, 0.60), P1: p(0.34, 0.76), P2: p(0.18, 0.93), P3: p(0, 1)},
	}
	return closeSide(KindPetal, right)
}

// Sepal returns a narrow pointed sepal silhouette. Four segments, mirrored.
func Sepal() Outline {
	right := []Segment{
		{P0: math.Vec2{X: 0, Y: 0}, P1: math.Vec2{X: 0.06, Y: 0.05}, P2: math.Vec2{X: 0.13, Y: 0.2}, P3: math.Vec2{X: 0.12, Y: 0.42}},
		{P0: math.Vec2{X: 0.12, Y: 0.42}, P1: math.Vec2{X: 0.11, Y: 0.65}, P2: math.Vec2{X: 0.05, Y: 0.86}, P3: math.Vec2{X: 0, Y: 1}},
	}
	return closeSide(KindSepal, right)
}

const (
	leafHalfWidth    = 0.26
	leafTaper        = 0.2
	leafToothDepth   = 0.035
	minLeafSerration = 1
)

// LeafHalfWidth is the un-serrated half-width of the leaf blade at t in [0,1]
// along its long axis.
func LeafHalfWidth(t float32) float32 {
	return leafHalfWidth * math32.Sin(math32.Pi*t) * (1 - leafTaper*t)
}

// Leaf returns a serrated leaf silhouette with serrationCount teeth per side.
// Margin vertices alternate tooth out / tooth in; the tooth depth follows
// sin(π·t) so teeth vanish at the base and the tip.
func Leaf(serrationCount int) Outline {
	if serrationCount < minLeafSerration {
		serrationCount = minLeafSerration
	}
	n := 2 * serrationCount
	margin := make([]math.Vec2, 0, n+1)
	margin = append(margin, math.Vec2{})
	for k := 1; k < n; k++ {
		t := float32(k) / float32(n)
		depth := leafToothDepth * math32.Sin(math32.Pi*t)
		x := LeafHalfWidth(t)
		if k%2 == 1 {
			x += depth
		} else {
			x -= depth
		}
		margin = append(margin, math.Vec2{X: x, Y: t})
	}
	margin = append(margin, math.Vec2{X: 0, Y: 1})

	right := make([]Segment, 0, n)
	for i := 1; i < len(margin); i++ {
		right = append(right, line(margin[i-1], margin[i]))
	}
	return closeSide(KindLeaf, right)
}
