package flower

import (
	"github.com/Faultbox/flora/internal/flower/anim"
	"github.com/Faultbox/flora/internal/scene"
)

// Update advances the animation by one frame. It changes only node
// rotations and scales. Missing or invalid inputs degrade to neutral
// defaults; Update never fails.
func (f *Flower) Update(in anim.FrameInput) {
	if f.released {
		return
	}
	f.state = anim.Step(f.state, in, f.params)
	f.Root.Rotation.Y = f.state.Yaw

	if f.swayDue() {
		f.pose(in.Time)
	}
	hb := f.state.Heartbeat.Scale
	for _, p := range f.Petals {
		p.Node.SetUniformScale(p.Length * hb)
	}
	f.frame++
}

// swayDue reports whether wind sway is recomputed this frame.
func (f *Flower) swayDue() bool {
	if !f.frameSkip || f.Tier.SwayStride <= 1 {
		return true
	}
	return f.frame%f.Tier.SwayStride == 0
}

// pose applies wind sway at time t to petals and leaves.
func (f *Flower) pose(t float32) {
	for _, o := range f.Petals {
		applyPose(o.Node, o.Sway.Pose(t))
	}
	for _, o := range f.Leaves {
		applyPose(o.Node, o.Sway.Pose(t))
	}
}

func applyPose(n *scene.Node, p anim.Pose) {
	n.Rotation.X = p.Pitch
	n.Rotation.Z = p.Roll
}

// State returns the current per-flower animation state.
func (f *Flower) State() anim.State {
	return f.state
}

// Yaw returns the smoothed yaw of the flower root in radians.
func (f *Flower) Yaw() float32 {
	return f.state.Yaw
}

// PulseScale returns the heartbeat factor applied to petal length.
func (f *Flower) PulseScale() float32 {
	return f.state.Heartbeat.Scale
}

// Meshes returns every node that carries a mesh: stem, leaves, sepals,
// petals and disc.
func (f *Flower) Meshes() []*scene.Node {
	if f.released {
		return nil
	}
	return f.Root.Meshes()
}

// Stats summarises the flower's geometry.
type Stats struct {
	Meshes    int
	Vertices  int
	Triangles int
}

// Stats counts meshes, vertices and triangles.
func (f *Flower) Stats() Stats {
	var s Stats
	for _, n := range f.Meshes() {
		s.Meshes++
		s.Vertices += n.Mesh.VertexCount()
		s.Triangles += n.Mesh.TriangleCount()
	}
	return s
}

// Release frees every owned buffer and dismantles the hierarchy. The flower
// ignores Update afterwards.
func (f *Flower) Release() {
	if f.released {
		return
	}
	for _, n := range f.Root.Meshes() {
		n.Mesh.Release()
		n.Mesh = nil
		n.Texture = nil
	}
	for _, c := range append([]*scene.Node(nil), f.Root.Children()...) {
		c.Detach()
	}
	f.Petals, f.Sepals, f.Leaves = nil, nil, nil
	f.Disc, f.Stem = nil, nil
	f.released = true
}
