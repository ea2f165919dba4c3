// Package flower assembles a complete procedural flower: it builds every
// mesh once from a quality tier, hangs the meshes in a transform hierarchy
// (root → ring group → instance) and animates that hierarchy frame by frame.
// Animation only ever changes node transforms; geometry is never rebuilt.
package flower

import (
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/flora/internal/flower/anim"
	"github.com/Faultbox/flora/internal/flower/layout"
	"github.com/Faultbox/flora/internal/flower/mesh"
	"github.com/Faultbox/flora/internal/flower/outline"
	"github.com/Faultbox/flora/internal/flower/quality"
	"github.com/Faultbox/flora/internal/flower/stem"
	"github.com/Faultbox/flora/internal/logger"
	"github.com/Faultbox/flora/internal/scene"
	"github.com/Faultbox/flora/pkg/math"
)

// Organ shapes, in the units of the unit-length outlines.
const (
	petalDepth = 0.02
	sepalDepth = 0.025
	leafDepth  = 0.015

	petalLength        = 0.14
	petalLengthPerRing = 0.02
	sepalLength        = 0.09
	leafLength         = 0.24

	// Rest pitch: π/2 lays an organ flat, less cups it upward.
	petalTilt        = 1.05
	petalTiltPerRing = 0.12
	sepalTilt        = 1.9
	leafTilt         = 0.9

	sepalDrop = 0.01
)

// Textures are the renderer's texture handles, passed to the meshes'
// material slots untouched. Leaf may be nil.
type Textures struct {
	Petal scene.Texture
	Disc  scene.Texture
	Leaf  scene.Texture
}

// Options configures a flower build.
type Options struct {
	Textures Textures
	Anim     anim.Params
	// FrameSkip honours the tier's SwayStride.
	FrameSkip bool
	// Stem is the stem curve from base to flower head. Empty means
	// DefaultStem.
	Stem math.Spline
}

// DefaultOptions animates with the stock parameters and allows frame skipping.
func DefaultOptions() Options {
	return Options{Anim: anim.DefaultParams, FrameSkip: true}
}

// DefaultStem is a gently bent stem, one unit long, ending at the origin.
func DefaultStem() math.Spline {
	return math.NewSpline(
		math.Vec3{X: 0, Y: -1, Z: 0},
		math.Vec3{X: 0.04, Y: -0.7, Z: 0.01},
		math.Vec3{X: -0.02, Y: -0.35, Z: -0.015},
		math.Vec3{X: 0, Y: 0, Z: 0},
	)
}

// Organ is one laid out petal, sepal or leaf and the node that shows it.
type Organ struct {
	Instance layout.Instance
	Node     *scene.Node
	Sway     anim.Sway
	// Length is the resting uniform scale of the node.
	Length float32
}

// Flower owns its meshes and animation state. It is not safe for
// concurrent use; drive it from the render loop.
type Flower struct {
	Tier quality.Tier
	Root *scene.Node

	Petals []*Organ
	Sepals []*Organ
	Leaves []*Organ
	Disc   *scene.Node
	Stem   *scene.Node

	params    anim.Params
	frameSkip bool
	stemCurve math.Spline
	state     anim.State
	frame     int
	released  bool
}

// New builds a flower for tier. The only error is an invalid tier; geometry
// failures fall back to simpler meshes.
func New(tier quality.Tier, opts Options) (*Flower, error) {
	if err := tier.Validate(); err != nil {
		return nil, fmt.Errorf("build flower: %w", err)
	}
	if opts.Stem.Len() == 0 {
		opts.Stem = DefaultStem()
	}
	if opts.Anim == (anim.Params{}) {
		opts.Anim = anim.DefaultParams
	}

	f := &Flower{
		Tier:      tier,
		Root:      scene.NewNode("flower"),
		params:    opts.Anim,
		frameSkip: opts.FrameSkip,
		stemCurve: opts.Stem,
		state:     anim.NewState(),
	}

	f.buildStem(opts.Textures.Leaf)
	f.buildLeaves(opts.Textures.Leaf)
	f.buildSepals(opts.Textures.Leaf)
	f.buildPetals(opts.Textures.Petal)
	f.buildDisc(opts.Textures.Disc)
	f.pose(0)

	s := f.Stats()
	logger.Named("flower").Debug("flower built",
		zap.Stringer("tier", tier.Capability),
		zap.Int("petals", len(f.Petals)),
		zap.Int("sepals", len(f.Sepals)),
		zap.Int("leaves", len(f.Leaves)),
		zap.Int("vertices", s.Vertices),
		zap.Int("triangles", s.Triangles),
	)
	return f, nil
}

func (f *Flower) buildStem(tex scene.Texture) {
	f.Stem = scene.NewNode("stem")
	f.Stem.Mesh = stem.Build(f.stemCurve, f.Tier, stem.ParamsFor(f.Tier))
	f.Stem.Texture = tex
	mustAdd(f.Root, f.Stem)
}

func (f *Flower) buildLeaves(tex scene.Texture) {
	instances := layout.Leaves(f.Tier)
	if len(instances) == 0 {
		return
	}
	group := scene.NewNode("leaves")
	mustAdd(f.Root, group)

	shape := outline.Leaf(f.Tier.LeafSerrations)
	for _, in := range instances {
		n := scene.NewNode(fmt.Sprintf("leaf-%d", in.Index))
		n.Mesh = mesh.ExtrudeAndDeform(shape, leafDepth, f.Tier, 0, in.Seed)
		n.Mesh.Name = n.Name
		n.Texture = tex
		n.Position = f.stemCurve.Point(in.Along)
		n.Rotation.Y = in.Angle()
		n.SetUniformScale(leafLength)
		mustAdd(group, n)

		f.Leaves = append(f.Leaves, &Organ{
			Instance: in,
			Node:     n,
			Sway:     anim.NewSway(in, leafTilt, f.params.WindScale),
			Length:   leafLength,
		})
	}
}

func (f *Flower) buildSepals(tex scene.Texture) {
	instances := layout.Sepals(f.Tier)
	if len(instances) == 0 {
		return
	}
	group := scene.NewNode("sepals")
	group.Position = math.Vec3{Y: -sepalDrop}
	mustAdd(f.Root, group)

	shape := outline.Sepal()
	for _, in := range instances {
		n := scene.NewNode(fmt.Sprintf("sepal-%d", in.Index))
		n.Mesh = mesh.ExtrudeAndDeform(shape, sepalDepth, f.Tier, in.RingIndex, in.Seed)
		n.Mesh.Name = n.Name
		n.Texture = tex
		place(n, in)
		n.SetUniformScale(sepalLength)
		mustAdd(group, n)

		// Sepals hold their rest pose.
		sw := anim.NewSway(in, sepalTilt, 0)
		rest := sw.Pose(0)
		n.Rotation.X, n.Rotation.Z = rest.Pitch, rest.Roll

		f.Sepals = append(f.Sepals, &Organ{Instance: in, Node: n, Sway: sw, Length: sepalLength})
	}
}

func (f *Flower) buildPetals(tex scene.Texture) {
	groups := make([]*scene.Node, f.Tier.RingCount())
	for r := range groups {
		groups[r] = scene.NewNode(fmt.Sprintf("ring-%d", r))
		mustAdd(f.Root, groups[r])
	}

	for _, in := range layout.Rings(f.Tier) {
		// Outer rings and seeds widen the silhouette a little.
		width := 0.9 + 0.08*float32(in.RingIndex) + 0.2*in.Seed
		length := petalLength + petalLengthPerRing*float32(in.RingIndex)

		n := scene.NewNode(fmt.Sprintf("petal-%d-%d", in.RingIndex, in.Index))
		n.Mesh = mesh.ExtrudeAndDeform(outline.Petal(width), petalDepth, f.Tier, in.RingIndex, in.Seed)
		n.Mesh.Name = n.Name
		n.Texture = tex
		place(n, in)
		n.SetUniformScale(length)
		mustAdd(groups[in.RingIndex], n)

		tilt := petalTilt + petalTiltPerRing*float32(in.RingIndex)
		f.Petals = append(f.Petals, &Organ{
			Instance: in,
			Node:     n,
			Sway:     anim.NewSway(in, tilt, f.params.WindScale),
			Length:   length,
		})
	}
}

func (f *Flower) buildDisc(tex scene.Texture) {
	f.Disc = scene.NewNode("disc")
	f.Disc.Mesh = mesh.Disc(f.Tier, mesh.DefaultDisc)
	f.Disc.Mesh.Name = f.Disc.Name
	f.Disc.Texture = tex
	mustAdd(f.Root, f.Disc)
}

// place puts an organ on its ring: yaw to the instance angle, base on the
// ring radius. At zero pitch the organ points up (+Y) with its face to +Z.
func place(n *scene.Node, in layout.Instance) {
	a := in.Angle()
	n.Rotation.Y = a
	n.Position = math.Vec3{X: in.RingRadius * math32.Sin(a), Z: in.RingRadius * math32.Cos(a)}
}

// mustAdd links freshly created nodes; a cycle there is a programming error.
func mustAdd(parent, child *scene.Node) {
	if err := parent.Add(child); err != nil {
		panic(err)
	}
}
