package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/flora/internal/geom"
	"github.com/Faultbox/flora/pkg/math"
)

func vecNear(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5)
	assert.InDelta(t, want.Y, got.Y, 1e-5)
	assert.InDelta(t, want.Z, got.Z, 1e-5)
}

func TestNewNodeIdentity(t *testing.T) {
	n := NewNode("root")
	assert.Equal(t, math.Identity(), n.Local())
	assert.Equal(t, math.Identity(), n.World())
	assert.Nil(t, n.Parent())
}

func TestWorldComposesHierarchy(t *testing.T) {
	root := NewNode("root")
	root.Position = math.Vec3{Y: 1}

	ring := NewNode("ring")
	ring.Rotation = math.Vec3{Y: math32.Pi / 2}
	require.NoError(t, root.Add(ring))

	petal := NewNode("petal")
	petal.Position = math.Vec3{X: 0.1}
	petal.SetUniformScale(2)
	require.NoError(t, ring.Add(petal))

	want := root.Local().Mul(ring.Local()).Mul(petal.Local())
	assert.Equal(t, want, petal.World())

	// The petal's local +X tip, scaled then swung by the ring's yaw.
	tip := petal.World().TransformPoint(math.Vec3{X: 1})
	expect := math.Translate(0, 1, 0).Mul(math.RotateY(math32.Pi / 2)).TransformPoint(math.Vec3{X: 2.1})
	vecNear(t, expect, tip)
}

func TestAddReparents(t *testing.T) {
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	require.NoError(t, a.Add(c))
	require.NoError(t, b.Add(c))
	assert.Empty(t, a.Children())
	assert.Equal(t, []*Node{c}, b.Children())
	assert.Same(t, b, c.Parent())
}

func TestAddRejectsCycle(t *testing.T) {
	a, b := NewNode("a"), NewNode("b")
	require.NoError(t, a.Add(b))
	assert.ErrorIs(t, b.Add(a), ErrCycle)
	assert.ErrorIs(t, a.Add(a), ErrCycle)
}

func TestDetach(t *testing.T) {
	root, x, y := NewNode("root"), NewNode("x"), NewNode("y")
	require.NoError(t, root.Add(x))
	require.NoError(t, root.Add(y))
	x.Detach()
	assert.Equal(t, []*Node{y}, root.Children())
	assert.Nil(t, x.Parent())
	x.Detach()
}

func TestFindAndMeshes(t *testing.T) {
	root := NewNode("flower")
	group := NewNode("ring-0")
	require.NoError(t, root.Add(group))
	for _, name := range []string{"petal-0-0", "petal-0-1"} {
		n := NewNode(name)
		n.Mesh = &geom.Mesh{Name: name}
		require.NoError(t, group.Add(n))
	}

	assert.Same(t, group.Children()[1], root.Find("petal-0-1"))
	assert.Nil(t, root.Find("missing"))
	assert.Len(t, root.Meshes(), 2)
}

func TestWalkSkipsSubtree(t *testing.T) {
	root := NewNode("root")
	skip := NewNode("skip")
	require.NoError(t, root.Add(skip))
	require.NoError(t, skip.Add(NewNode("hidden")))

	var seen []string
	root.Walk(func(n *Node) bool {
		seen = append(seen, n.Name)
		return n.Name != "skip"
	})
	assert.Equal(t, []string{"root", "skip"}, seen)
}
