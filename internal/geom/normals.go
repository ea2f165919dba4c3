package geom

import "github.com/Faultbox/flora/pkg/math"

// RecomputeNormals rebuilds vertex normals from the final positions by
// averaging the normals of adjacent faces, weighted by face area.
// Vertices touching only degenerate faces get +Y.
func RecomputeNormals(m *Mesh) {
	n := m.VertexCount()
	acc := make([]math.Vec3, n)
	for t := 0; t+2 < len(m.Indices); t += 3 {
		i0, i1, i2 := int(m.Indices[t]), int(m.Indices[t+1]), int(m.Indices[t+2])
		p0, p1, p2 := m.Position(i0), m.Position(i1), m.Position(i2)
		// Unnormalized cross product is twice the face area.
		fn := p1.Sub(p0).Cross(p2.Sub(p0))
		if !fn.IsFinite() {
			continue
		}
		acc[i0] = acc[i0].Add(fn)
		acc[i1] = acc[i1].Add(fn)
		acc[i2] = acc[i2].Add(fn)
	}

	if len(m.Normals) != len(m.Positions) {
		m.Normals = make([]float32, len(m.Positions))
	}
	for i, v := range acc {
		nv := normalize(v)
		m.Normals[3*i], m.Normals[3*i+1], m.Normals[3*i+2] = nv.X, nv.Y, nv.Z
	}
}

// SmoothNormals averages normals at shared vertex positions.
// Used where a ring of vertices is duplicated for UV seams.
func SmoothNormals(m *Mesh) {
	const epsilon float32 = 0.0001

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	order := make([][3]int32, 0)
	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(i)
		key := [3]int32{int32(p.X / epsilon), int32(p.Y / epsilon), int32(p.Z / epsilon)}
		if _, ok := posMap[key]; !ok {
			order = append(order, key)
		}
		posMap[key] = append(posMap[key], i)
	}

	// Walk keys in insertion order so the result does not depend on map order.
	for _, key := range order {
		idxs := posMap[key]
		if len(idxs) < 2 {
			continue
		}
		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(m.Normal(idx))
		}
		avg := normalize(sum)
		for _, idx := range idxs {
			m.Normals[3*idx], m.Normals[3*idx+1], m.Normals[3*idx+2] = avg.X, avg.Y, avg.Z
		}
	}
}

func normalize(v math.Vec3) math.Vec3 {
	if v.Length() < 1e-12 || !v.IsFinite() {
		return math.Vec3{X: 0, Y: 1, Z: 0}
	}
	return v.Normalize()
}
