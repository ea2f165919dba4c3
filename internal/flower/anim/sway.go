package anim

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/flora/internal/flower/layout"
	"github.com/Faultbox/flora/internal/flower/variation"
	"github.com/Faultbox/flora/pkg/math"
)

const (
	droopSalt = 101
	twistSalt = 102

	maxDroop = 0.08
	maxTwist = 0.12

	baseWind    = 0.02
	windPerRing = 0.015
)

// Sway is the constant part of one instance's wind motion.
type Sway struct {
	Index      int
	TimeOffset float32
	BaseTilt   float32
	Droop      float32
	Twist      float32
	// Strength grows with ring index so outer petals move more.
	Strength float32
}

// Pose is an instance's animated rotation in radians.
type Pose struct {
	Pitch float32
	Roll  float32
}

// NewSway derives the sway of a laid out instance. baseTilt is the rest
// pitch of the organ; windScale multiplies the wind strength.
func NewSway(in layout.Instance, baseTilt, windScale float32) Sway {
	return Sway{
		Index:      in.Index,
		TimeOffset: in.TimeOffset,
		BaseTilt:   baseTilt,
		Droop:      variation.Signed(variation.SeedN(in.Index, in.RingIndex, droopSalt)) * maxDroop,
		Twist:      variation.Signed(variation.SeedN(in.Index, in.RingIndex, twistSalt)) * maxTwist,
		Strength:   (baseWind + float32(in.RingIndex)*windPerRing) * windScale,
	}
}

// Pose returns the rotation at session time t.
func (s Sway) Pose(t float32) Pose {
	if !math.IsFinite(t) {
		t = 0
	}
	tt := t + s.TimeOffset
	i := float32(s.Index)
	return Pose{
		Pitch: s.BaseTilt + s.Droop + math32.Sin(tt*0.55+i*0.45)*s.Strength,
		Roll:  s.Twist + math32.Cos(tt*0.4+i*0.35)*s.Strength*0.6,
	}
}
