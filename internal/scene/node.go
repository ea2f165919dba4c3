// Package scene provides the transform hierarchy the flower is assembled
// in: root → ring group → instance. Geometry stays in each node's local
// space; world matrices are composed on demand.
package scene

import (
	"errors"

	"github.com/Faultbox/flora/internal/geom"
	"github.com/Faultbox/flora/pkg/math"
)

var ErrCycle = errors.New("node would become its own ancestor")

// Texture is an opaque texture handle owned by the renderer. Nodes carry it
// to the material slot untouched.
type Texture any

// Node is one transform in the hierarchy. Rotation is Euler XYZ in radians,
// applied as Y·X·Z.
type Node struct {
	Name     string
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3

	Mesh    *geom.Mesh
	Texture Texture

	parent   *Node
	children []*Node
}

// NewNode returns a node at the origin with unit scale.
func NewNode(name string) *Node {
	return &Node{Name: name, Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children in insertion order.
func (n *Node) Children() []*Node {
	return n.children
}

// Add attaches child under n, detaching it from any previous parent.
func (n *Node) Add(child *Node) error {
	for p := n; p != nil; p = p.parent {
		if p == child {
			return ErrCycle
		}
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// Detach removes n from its parent. Its own subtree stays intact.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// SetUniformScale sets all three scale components to s.
func (n *Node) SetUniformScale(s float32) {
	n.Scale = math.Vec3{X: s, Y: s, Z: s}
}

// Local returns T·R·S for this node alone.
func (n *Node) Local() math.Mat4 {
	return math.Compose(n.Position, n.Rotation, n.Scale)
}

// World returns the node's local matrix premultiplied by every ancestor's.
func (n *Node) World() math.Mat4 {
	visited := make(map[*Node]bool)
	return n.world(visited)
}

func (n *Node) world(visited map[*Node]bool) math.Mat4 {
	// Prevent infinite recursion
	if visited[n] {
		return math.Identity()
	}
	visited[n] = true

	local := n.Local()
	if n.parent != nil {
		return n.parent.world(visited).Mul(local)
	}
	return local
}

// Walk visits n and its subtree depth first. Returning false from fn skips
// that node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Find returns the first node named name in n's subtree.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// Meshes returns every node in the subtree that carries a mesh.
func (n *Node) Meshes() []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Mesh != nil {
			out = append(out, c)
		}
		return true
	})
	return out
}
