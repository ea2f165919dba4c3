package geom

import "github.com/Faultbox/flora/pkg/math"

// Triangulate splits a simple polygon into triangles by ear clipping.
// The returned indices address pts and wind counter-clockwise. Either input
// winding is accepted. Polygons with fewer than three points yield nil.
func Triangulate(pts []math.Vec2) []uint32 {
	n := len(pts)
	if n < 3 {
		return nil
	}

	// Work on a counter-clockwise index ring.
	ring := make([]int, n)
	if PolygonArea(pts) >= 0 {
		for i := range ring {
			ring[i] = i
		}
	} else {
		for i := range ring {
			ring[i] = n - 1 - i
		}
	}

	out := make([]uint32, 0, 3*(n-2))
	guard := 0
	i := 0
	for len(ring) > 3 {
		m := len(ring)
		prev, cur, next := ring[(i+m-1)%m], ring[i%m], ring[(i+1)%m]
		if isEar(pts, ring, prev, cur, next) || guard >= m {
			// guard >= m means a full lap found no ear (collinear or
			// self-touching input); clip anyway so the loop terminates.
			out = append(out, uint32(prev), uint32(cur), uint32(next))
			ring = append(ring[:i%m], ring[i%m+1:]...)
			guard = 0
			if i >= len(ring) {
				i = 0
			}
			continue
		}
		guard++
		i = (i + 1) % m
	}
	return append(out, uint32(ring[0]), uint32(ring[1]), uint32(ring[2]))
}

// PolygonArea returns the signed area of a closed polygon, positive when it
// winds counter-clockwise.
func PolygonArea(pts []math.Vec2) float32 {
	var a float32
	for i := range pts {
		a += pts[i].Cross(pts[(i+1)%len(pts)])
	}
	return a / 2
}

// TriangleArea returns the signed area of triangle abc, positive when it
// winds counter-clockwise.
func TriangleArea(a, b, c math.Vec2) float32 {
	return b.Sub(a).Cross(c.Sub(a)) / 2
}

func isEar(pts []math.Vec2, ring []int, prev, cur, next int) bool {
	a, b, c := pts[prev], pts[cur], pts[next]
	if b.Sub(a).Cross(c.Sub(b)) <= 0 {
		return false // reflex or collinear
	}
	for _, k := range ring {
		if k == prev || k == cur || k == next {
			continue
		}
		if pointInTriangle(pts[k], a, b, c) {
			return false
		}
	}
	return true
}

func pointInTriangle(p, a, b, c math.Vec2) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	return d1 >= 0 && d2 >= 0 && d3 >= 0
}
