// Package anim is the per-frame animation layer of a flower: wind sway per
// instance, a distance driven heartbeat pulse, and damped yaw tracking
// toward a bearing. Every update is a pure step from the previous state and
// the frame's inputs to the next state; nothing here touches geometry.
package anim

import (
	"github.com/Faultbox/flora/pkg/math"
)

// Distance to the target in meters. The zero value is unknown.
type Distance struct {
	Meters float32
	Known  bool
}

// Meters returns a known distance.
func Meters(m float32) Distance {
	return Distance{Meters: m, Known: true}
}

// Unknown is a distance the presence layer could not provide.
var Unknown = Distance{}

// usable reports whether d can drive the pulse. Negative and non-finite
// readings count as unknown.
func (d Distance) usable() bool {
	return d.Known && math.IsFinite(d.Meters) && d.Meters >= 0
}

// FrameInput carries the external scalars for one frame. Angles are in
// degrees clockwise from north.
type FrameInput struct {
	// Time is the elapsed session time in seconds.
	Time float32
	// Delta is the time since the previous frame in seconds.
	Delta float32

	Bearing    float32
	HasBearing bool
	Heading    float32
	HasHeading bool

	Distance Distance
}

// delta returns the frame delta, or 0 when it is negative or not finite.
func (in FrameInput) delta() float32 {
	if !math.IsFinite(in.Delta) || in.Delta < 0 {
		return 0
	}
	return in.Delta
}

// Params tunes the animation layer.
type Params struct {
	Heartbeat HeartbeatParams
	// WindScale multiplies every instance's wind strength.
	WindScale float32
}

// DefaultParams are the stock animation settings.
var DefaultParams = Params{
	Heartbeat: DefaultHeartbeat,
	WindScale: 1,
}

// State is the per-flower animation state carried between frames.
type State struct {
	Heartbeat HeartbeatState
	Yaw       float32
}

// NewState returns the resting state: idle heartbeat at scale 1, yaw 0.
func NewState() State {
	return State{Heartbeat: HeartbeatState{Scale: 1}}
}

// Step advances the per-flower state by one frame.
func Step(s State, in FrameInput, p Params) State {
	return State{
		Heartbeat: p.Heartbeat.Step(s.Heartbeat, in.Distance, in.delta()),
		Yaw:       StepYaw(s.Yaw, in),
	}
}
