package anim

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/flora/pkg/math"
)

// PulseState is the heartbeat state machine: Idle ⇄ Pulsing.
type PulseState int

const (
	Idle PulseState = iota
	Pulsing
)

func (s PulseState) String() string {
	if s == Pulsing {
		return "pulsing"
	}
	return "idle"
}

// HeartbeatParams tunes the distance driven pulse.
type HeartbeatParams struct {
	// Threshold is the distance in meters beyond which the flower is idle.
	Threshold float32
	// MinBPM at Threshold, MaxBPM at zero distance.
	MinBPM float32
	MaxBPM float32
	// MaxIntensity is the pulse amplitude at zero distance. Intensity falls
	// linearly to 0 at Threshold.
	MaxIntensity float32
	// Relax is the per-frame fraction of the remaining deviation from 1
	// removed while idle.
	Relax float32
	// EntryBlend is the time in seconds over which a fresh pulse fades in
	// from the scale it found.
	EntryBlend float32
}

// DefaultHeartbeat: 60 BPM at 1 km rising to 120 BPM on arrival.
var DefaultHeartbeat = HeartbeatParams{
	Threshold:    1000,
	MinBPM:       60,
	MaxBPM:       120,
	MaxIntensity: 0.15,
	Relax:        0.05,
	EntryBlend:   0.5,
}

// HeartbeatState is carried from frame to frame.
type HeartbeatState struct {
	State PulseState
	// Phase in radians, kept in [0, 2π).
	Phase float32
	// Scale is the uniform factor applied to petal length.
	Scale float32
	// Blend runs from 0 to 1 after entering Pulsing.
	Blend float32
	// Carry is the scale found on entry, relaxing toward 1 while it fades out.
	Carry float32
}

// closeness maps distance to [0,1]: 0 at Threshold, 1 at zero.
func (p HeartbeatParams) closeness(d Distance) float32 {
	if p.Threshold <= 0 {
		return 0
	}
	return 1 - math.Clamp(d.Meters/p.Threshold, 0, 1)
}

// Active reports whether d drives a pulse: known and within Threshold.
func (p HeartbeatParams) Active(d Distance) bool {
	return d.usable() && d.Meters <= p.Threshold
}

// BPM returns the beat rate for a distance, or 0 when idle.
func (p HeartbeatParams) BPM(d Distance) float32 {
	if !p.Active(d) {
		return 0
	}
	return math.Lerp(p.MinBPM, p.MaxBPM, p.closeness(d))
}

// Intensity returns the pulse amplitude for a distance, or 0 when idle.
func (p HeartbeatParams) Intensity(d Distance) float32 {
	if !p.Active(d) {
		return 0
	}
	return p.MaxIntensity * p.closeness(d)
}

// Wave is the double-bump beat shape at a phase, in [0, 1.5].
func Wave(phase float32) float32 {
	beat1 := math32.Pow(math32.Max(0, math32.Sin(phase)), 4)
	beat2 := math32.Pow(math32.Max(0, math32.Sin(phase+0.6)), 8) * 0.5
	return beat1 + beat2
}

// Step advances the heartbeat by one frame of dt seconds.
func (p HeartbeatParams) Step(s HeartbeatState, d Distance, dt float32) HeartbeatState {
	if !math.IsFinite(s.Scale) || s.Scale <= 0 {
		s.Scale = 1
	}
	if !math.IsFinite(dt) || dt < 0 {
		dt = 0
	}

	if !p.Active(d) {
		s.State = Idle
		s.Blend = 0
		s.Scale += (1 - s.Scale) * p.Relax
		return s
	}

	if s.State != Pulsing {
		s.State = Pulsing
		s.Blend = 0
		s.Carry = s.Scale
	}

	bpm := p.BPM(d)
	s.Phase = math.WrapAngle(s.Phase + math.TwoPi*(bpm/60)*dt)

	if p.EntryBlend > 0 {
		s.Blend = math32.Min(1, s.Blend+dt/p.EntryBlend)
	} else {
		s.Blend = 1
	}
	s.Carry += (1 - s.Carry) * p.Relax

	target := 1 + Wave(s.Phase)*p.Intensity(d)
	s.Scale = math.Lerp(s.Carry, target, s.Blend)
	return s
}
