package anim

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/flora/pkg/math"
)

const (
	// yawRetention is the fraction of the gap a full second of damping leaves.
	yawRetention = 0.001
	yawGain      = 0.8
)

// RelativeAngle is the bearing seen from the device heading, in radians in
// [0, 2π): ((bearing − heading + 360) mod 360) converted to radians.
func RelativeAngle(bearing, heading float32) float32 {
	deg := math32.Mod(bearing-heading+360, 360)
	if deg < 0 {
		deg += 360
	}
	return math.WrapAngle(math.DegToRad(deg))
}

// DampingFactor is the frame-rate independent smoothing weight 1 − 0.001^dt.
func DampingFactor(dt float32) float32 {
	if !math.IsFinite(dt) || dt <= 0 {
		return 0
	}
	return 1 - math32.Pow(yawRetention, dt)
}

// StepYaw moves yaw toward the relative angle of the frame's bearing. A
// missing bearing leaves yaw unchanged; a missing heading counts as north.
func StepYaw(yaw float32, in FrameInput) float32 {
	if !math.IsFinite(yaw) {
		yaw = 0
	}
	if !in.HasBearing || !math.IsFinite(in.Bearing) {
		return yaw
	}
	heading := in.Heading
	if !in.HasHeading || !math.IsFinite(heading) {
		heading = 0
	}
	target := RelativeAngle(in.Bearing, heading)
	return math.Lerp(yaw, target, DampingFactor(in.delta())*yawGain)
}
