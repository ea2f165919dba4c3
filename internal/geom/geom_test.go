package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/flora/pkg/math"
)

func TestTriangulateConcave(t *testing.T) {
	// An L shape, clockwise.
	pts := []math.Vec2{
		{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 1, Y: 2},
		{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 0},
	}
	idx := Triangulate(pts)
	require.Len(t, idx, 3*(len(pts)-2))

	var area float32
	for i := 0; i < len(idx); i += 3 {
		a, b, c := pts[idx[i]], pts[idx[i+1]], pts[idx[i+2]]
		tri := b.Sub(a).Cross(c.Sub(a)) / 2
		assert.GreaterOrEqual(t, tri, float32(0), "triangle %d winds clockwise", i/3)
		area += tri
	}
	assert.InDelta(t, 3, area, 1e-5)
}

func TestTriangulateTooFew(t *testing.T) {
	assert.Nil(t, Triangulate([]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}}))
}

func TestRecomputeNormalsFlatQuad(t *testing.T) {
	m := &Mesh{
		Positions: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
		UVs:       make([]float32, 8),
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
	RecomputeNormals(m)
	require.NoError(t, m.Validate())
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 1, m.Normal(i).Z, 1e-6)
	}
}

func TestRecomputeNormalsDegenerate(t *testing.T) {
	m := &Mesh{
		Positions: []float32{0, 0, 0, 0, 0, 0, 0, 0, 0},
		UVs:       make([]float32, 6),
		Indices:   []uint32{0, 1, 2},
	}
	RecomputeNormals(m)
	assert.NoError(t, m.Validate())
	assert.Equal(t, math.Vec3{Y: 1}, m.Normal(0))
}

func TestValidate(t *testing.T) {
	good := func() *Mesh {
		return &Mesh{
			Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
			Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
			UVs:       []float32{0, 0, 1, 0, 0, 1},
			Indices:   []uint32{0, 1, 2},
		}
	}
	require.NoError(t, good().Validate())

	m := good()
	m.Indices[2] = 3
	assert.ErrorIs(t, m.Validate(), ErrIndexOutOfRange)

	m = good()
	m.Normals = m.Normals[:6]
	assert.ErrorIs(t, m.Validate(), ErrInconsistentBuffers)

	m = good()
	m.UVs = m.UVs[:4]
	assert.ErrorIs(t, m.Validate(), ErrInconsistentBuffers)

	m = good()
	m.Positions[0] = float32(nan())
	assert.ErrorIs(t, m.Validate(), ErrNonFinite)

	assert.ErrorIs(t, (&Mesh{}).Validate(), ErrEmpty)
}

func TestSmoothNormalsWeldsSeam(t *testing.T) {
	m := &Mesh{
		Positions: []float32{0, 0, 0, 0, 0, 0},
		Normals:   []float32{1, 0, 0, 0, 1, 0},
		UVs:       make([]float32, 4),
	}
	SmoothNormals(m)
	assert.Equal(t, m.Normal(0), m.Normal(1))
	assert.InDelta(t, 1, m.Normal(0).Length(), 1e-6)
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestBuilder(t *testing.T) {
	var b Builder
	a := b.Vertex(math.Vec3{}, 0, 0)
	c := b.Vertex(math.Vec3{X: 1}, 1, 0)
	d := b.Vertex(math.Vec3{Y: 1}, 0, 1)
	b.Tri(a, c, d)
	assert.Equal(t, 3, b.VertexCount())

	m := b.Finish("tri")
	assert.Equal(t, "tri", m.Name)
	assert.Nil(t, m.Normals)
	RecomputeNormals(m)
	require.NoError(t, m.Validate())
	assert.Equal(t, 1, m.TriangleCount())
	assert.InDelta(t, 1, m.Normal(0).Z, 1e-6)
}

func TestBoundsCorners(t *testing.T) {
	m := &Mesh{Positions: []float32{-1, 0, 2, 3, 4, -5}}
	b := m.Bounds()
	assert.Equal(t, math.Vec3{X: -1, Y: 0, Z: -5}, b.Min)
	assert.Equal(t, math.Vec3{X: 3, Y: 4, Z: 2}, b.Max)

	c := b.Corners()
	assert.Equal(t, b.Min, c[0])
	assert.Equal(t, b.Max, c[7])
	assert.Equal(t, math.Vec3{X: 3, Y: 0, Z: -5}, c[1])
}

func TestTriangleArea(t *testing.T) {
	a, b, c := math.Vec2{}, math.Vec2{X: 2}, math.Vec2{Y: 1}
	assert.InDelta(t, 1, TriangleArea(a, b, c), 1e-6)
	assert.InDelta(t, -1, TriangleArea(a, c, b), 1e-6)
}
