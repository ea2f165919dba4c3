// Package geom holds the flat-buffer triangle mesh every generator emits,
// with the buffer checks, normal passes and polygon triangulation that work
// on it independent of what the mesh depicts.
package geom

import (
	"errors"
	"fmt"

	"github.com/Faultbox/flora/pkg/math"
)

var (
	ErrInconsistentBuffers = errors.New("inconsistent mesh buffers")
	ErrIndexOutOfRange     = errors.New("mesh index out of range")
	ErrNonFinite           = errors.New("mesh contains non-finite values")
	ErrEmpty               = errors.New("mesh has no triangles")
)

// Mesh is a triangle mesh ready for GPU upload.
// Positions and Normals hold 3 floats per vertex, UVs 2, Colors 3 (optional),
// Indices 3 per triangle.
type Mesh struct {
	Name      string
	Positions []float32
	Normals   []float32
	UVs       []float32
	Colors    []float32
	Indices   []uint32
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Corners returns the eight corners of the box.
func (b Bounds) Corners() [8]math.Vec3 {
	var c [8]math.Vec3
	for i := range c {
		c[i] = b.Min
		if i&1 != 0 {
			c[i].X = b.Max.X
		}
		if i&2 != 0 {
			c[i].Y = b.Max.Y
		}
		if i&4 != 0 {
			c[i].Z = b.Max.Z
		}
	}
	return c
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Positions) == 0 || len(m.Indices) == 0
}

// Position returns vertex i's position.
func (m *Mesh) Position(i int) math.Vec3 {
	return math.Vec3{X: m.Positions[3*i], Y: m.Positions[3*i+1], Z: m.Positions[3*i+2]}
}

// Normal returns vertex i's normal.
func (m *Mesh) Normal(i int) math.Vec3 {
	return math.Vec3{X: m.Normals[3*i], Y: m.Normals[3*i+1], Z: m.Normals[3*i+2]}
}

// SetPosition overwrites vertex i's position.
func (m *Mesh) SetPosition(i int, p math.Vec3) {
	m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2] = p.X, p.Y, p.Z
}

// Bounds computes the bounding box of all vertices.
func (m *Mesh) Bounds() Bounds {
	b := Bounds{
		Min: math.Vec3{X: 1e10, Y: 1e10, Z: 1e10},
		Max: math.Vec3{X: -1e10, Y: -1e10, Z: -1e10},
	}
	for i := 0; i < m.VertexCount(); i++ {
		updateBounds(&b, m.Position(i))
	}
	return b
}

// Validate checks the buffer invariants: normals match positions, one UV per
// vertex, optional colours match, every index addresses a vertex, and no
// value is NaN or infinite.
func (m *Mesh) Validate() error {
	if m.IsEmpty() {
		return ErrEmpty
	}
	n := m.VertexCount()
	switch {
	case len(m.Positions)%3 != 0:
		return fmt.Errorf("%w: %d position floats", ErrInconsistentBuffers, len(m.Positions))
	case len(m.Normals) != len(m.Positions):
		return fmt.Errorf("%w: %d normal floats for %d position floats", ErrInconsistentBuffers, len(m.Normals), len(m.Positions))
	case len(m.UVs) != 2*n:
		return fmt.Errorf("%w: %d uv floats for %d vertices", ErrInconsistentBuffers, len(m.UVs), n)
	case m.Colors != nil && len(m.Colors) != len(m.Positions):
		return fmt.Errorf("%w: %d colour floats for %d position floats", ErrInconsistentBuffers, len(m.Colors), len(m.Positions))
	case len(m.Indices)%3 != 0:
		return fmt.Errorf("%w: %d indices is not a triangle list", ErrInconsistentBuffers, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d = %d, %d vertices", ErrIndexOutOfRange, i, idx, n)
		}
	}
	for _, buf := range [][]float32{m.Positions, m.Normals, m.UVs, m.Colors} {
		for _, v := range buf {
			if !math.IsFinite(v) {
				return ErrNonFinite
			}
		}
	}
	return nil
}

// Release drops the buffers so the garbage collector can reclaim them.
func (m *Mesh) Release() {
	m.Positions = nil
	m.Normals = nil
	m.UVs = nil
	m.Colors = nil
	m.Indices = nil
}

// Builder accumulates vertices and triangles for a mesh under construction.
// The zero value is ready to use.
type Builder struct {
	m Mesh
}

// Vertex appends a vertex and returns its index.
func (b *Builder) Vertex(p math.Vec3, u, v float32) uint32 {
	idx := uint32(len(b.m.Positions) / 3)
	b.m.Positions = append(b.m.Positions, p.X, p.Y, p.Z)
	b.m.UVs = append(b.m.UVs, u, v)
	return idx
}

// Tri appends one triangle.
func (b *Builder) Tri(a, c, d uint32) {
	b.m.Indices = append(b.m.Indices, a, c, d)
}

// VertexCount returns the number of vertices added so far.
func (b *Builder) VertexCount() int {
	return b.m.VertexCount()
}

// Finish returns the mesh built so far under the given name. Normals are
// left for the caller to compute.
func (b *Builder) Finish(name string) *Mesh {
	out := b.m
	out.Name = name
	return &out
}

func updateBounds(b *Bounds, p math.Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}
