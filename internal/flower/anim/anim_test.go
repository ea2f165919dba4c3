package anim

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/flora/internal/flower/layout"
	"github.com/Faultbox/flora/pkg/math"
)

func TestHeartbeatScenarioPoints(t *testing.T) {
	p := DefaultHeartbeat

	assert.InDelta(t, 120, p.BPM(Meters(0)), 1e-5)
	assert.InDelta(t, p.MaxIntensity, p.Intensity(Meters(0)), 1e-6)

	assert.InDelta(t, 60, p.BPM(Meters(1000)), 1e-5)
	assert.Zero(t, p.Intensity(Meters(1000)))

	assert.InDelta(t, 90, p.BPM(Meters(500)), 1e-4)

	for _, d := range []Distance{Meters(1500), Unknown, Meters(-3), Meters(math32.NaN()), Meters(math32.Inf(1))} {
		assert.False(t, p.Active(d), "%+v", d)
		assert.Zero(t, p.BPM(d))
		assert.Zero(t, p.Intensity(d))
	}
}

func TestHeartbeatPulsesAtZeroDistance(t *testing.T) {
	p := DefaultHeartbeat
	s := HeartbeatState{Scale: 1}
	dt := float32(1) / 60

	var maxScale, minScale float32 = 1, 1
	for i := 0; i < 240; i++ {
		s = p.Step(s, Meters(0), dt)
		require.Equal(t, Pulsing, s.State)
		if i < 60 {
			continue
		}
		maxScale = math32.Max(maxScale, s.Scale)
		minScale = math32.Min(minScale, s.Scale)
	}
	assert.Greater(t, maxScale-1, float32(0.1))
	assert.LessOrEqual(t, maxScale-1, p.MaxIntensity*1.5+1e-4)
	assert.GreaterOrEqual(t, minScale, float32(1)-1e-4)
}

func TestHeartbeatSettlesWhenFarOrUnknown(t *testing.T) {
	p := DefaultHeartbeat
	for _, d := range []Distance{Meters(1500), Unknown} {
		s := HeartbeatState{Scale: 1}
		for i := 0; i < 90; i++ {
			s = p.Step(s, Meters(0), 1.0/60)
		}
		s.Scale = 1.2

		for i := 0; i < 200; i++ {
			s = p.Step(s, d, 1.0/60)
		}
		assert.Equal(t, Idle, s.State)
		assert.InDelta(t, 1, s.Scale, 1e-3)
	}
}

func TestHeartbeatContinuousAcrossThreshold(t *testing.T) {
	p := DefaultHeartbeat
	s := HeartbeatState{Scale: 1}
	dt := float32(1) / 60

	// Walk in from 1100m to 900m and back out, one meter per frame.
	var path []float32
	for d := float32(1100); d >= 900; d-- {
		path = append(path, d)
	}
	for d := float32(900); d <= 1100; d++ {
		path = append(path, d)
	}

	prev := s.Scale
	for _, d := range path {
		s = p.Step(s, Meters(d), dt)
		assert.Less(t, math32.Abs(s.Scale-prev), float32(0.01), "at %vm", d)
		prev = s.Scale
	}
}

func TestHeartbeatEntryBlendsFromCurrentScale(t *testing.T) {
	p := DefaultHeartbeat
	s := HeartbeatState{Scale: 1.2}
	next := p.Step(s, Meters(0), 1.0/60)
	assert.Equal(t, Pulsing, next.State)
	assert.Less(t, math32.Abs(next.Scale-s.Scale), float32(0.02))
}

func TestHeartbeatBadInputs(t *testing.T) {
	p := DefaultHeartbeat
	s := p.Step(HeartbeatState{Scale: math32.NaN()}, Meters(10), math32.NaN())
	assert.True(t, math.IsFinite(s.Scale))
	assert.True(t, math.IsFinite(s.Phase))

	s = p.Step(HeartbeatState{Scale: 1}, Meters(10), -1)
	assert.Zero(t, s.Phase)
}

func TestWaveRange(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		w := Wave(float32(i) / 1000 * math.TwoPi)
		assert.GreaterOrEqual(t, w, float32(0))
		assert.LessOrEqual(t, w, float32(1.5))
	}
}

func TestRelativeAngle(t *testing.T) {
	tests := []struct {
		name             string
		bearing, heading float32
		want             float32
	}{
		{"east from north", 90, 0, math32.Pi / 2},
		{"same", 45, 45, 0},
		{"wraps negative", 0, 90, 3 * math32.Pi / 2},
		{"beyond 360", 450, 0, math32.Pi / 2},
		{"south", 180, 0, math32.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RelativeAngle(tt.bearing, tt.heading), 1e-5)
		})
	}
}

func TestYawConvergesIndependentOfFrameRate(t *testing.T) {
	oneDegree := math.DegToRad(1)
	for _, fps := range []float32{30, 60, 90, 120, 144, 240} {
		dt := 1 / fps
		yaw := float32(0)
		elapsed := float32(0)
		in := FrameInput{Delta: dt, Bearing: 90, HasBearing: true, Heading: 0, HasHeading: true}
		for elapsed < 3 {
			yaw = StepYaw(yaw, in)
			elapsed += dt
		}
		assert.Less(t, math32.Abs(yaw-math32.Pi/2), oneDegree, "fps %v", fps)
	}
}

func TestYawSettleTimeSimilarAcrossRates(t *testing.T) {
	settle := func(fps float32) float32 {
		dt := 1 / fps
		yaw := float32(0)
		in := FrameInput{Delta: dt, Bearing: 90, HasBearing: true}
		for elapsed := float32(0); elapsed < 10; elapsed += dt {
			if math32.Abs(yaw-math32.Pi/2) < math.DegToRad(1) {
				return elapsed
			}
			yaw = StepYaw(yaw, in)
		}
		return 10
	}
	slow, fast := settle(30), settle(240)
	assert.Less(t, slow, float32(3))
	assert.Less(t, fast, float32(3))
	assert.InDelta(t, slow, fast, 0.25)
}

func TestYawMissingInputs(t *testing.T) {
	// No bearing: yaw holds.
	assert.Equal(t, float32(0.7), StepYaw(0.7, FrameInput{Delta: 0.1}))
	assert.Equal(t, float32(0.7), StepYaw(0.7, FrameInput{Delta: 0.1, HasBearing: true, Bearing: math32.NaN()}))

	// No heading: treated as north.
	a := StepYaw(0, FrameInput{Delta: 0.1, Bearing: 90, HasBearing: true})
	b := StepYaw(0, FrameInput{Delta: 0.1, Bearing: 90, HasBearing: true, HasHeading: true})
	assert.Equal(t, a, b)

	// Bad delta: no movement.
	assert.Zero(t, StepYaw(0, FrameInput{Delta: math32.Inf(1), Bearing: 90, HasBearing: true}))
	assert.Zero(t, StepYaw(0, FrameInput{Delta: -1, Bearing: 90, HasBearing: true}))

	// Non-finite state recovers.
	assert.True(t, math.IsFinite(StepYaw(math32.NaN(), FrameInput{Delta: 0.1})))
}

func TestDampingFactor(t *testing.T) {
	assert.Zero(t, DampingFactor(0))
	assert.InDelta(t, 0.999, DampingFactor(1), 1e-6)
	assert.Less(t, DampingFactor(1.0/240), DampingFactor(1.0/30))
}

func TestStepNeutralDefaults(t *testing.T) {
	s := NewState()
	for i := 0; i < 100; i++ {
		s = Step(s, FrameInput{Time: float32(i) / 60, Delta: 1.0 / 60}, DefaultParams)
	}
	assert.Equal(t, float32(1), s.Heartbeat.Scale)
	assert.Equal(t, Idle, s.Heartbeat.State)
	assert.Zero(t, s.Yaw)
}

func TestStepCombines(t *testing.T) {
	s := NewState()
	in := FrameInput{Delta: 1.0 / 60, Bearing: 90, HasBearing: true, Distance: Meters(100)}
	for i := 0; i < 300; i++ {
		in.Time = float32(i) / 60
		s = Step(s, in, DefaultParams)
	}
	assert.Equal(t, Pulsing, s.Heartbeat.State)
	assert.InDelta(t, math32.Pi/2, s.Yaw, 1e-3)
}

func TestSway(t *testing.T) {
	inner := layout.Instance{Index: 2, RingIndex: 0, TimeOffset: 0.74}
	outer := layout.Instance{Index: 2, RingIndex: 3, TimeOffset: 0.74}

	si := NewSway(inner, 0.3, 1)
	so := NewSway(outer, 0.3, 1)
	assert.Greater(t, so.Strength, si.Strength)
	assert.InDelta(t, 0.02, si.Strength, 1e-6)
	assert.LessOrEqual(t, math32.Abs(si.Droop), float32(maxDroop))
	assert.LessOrEqual(t, math32.Abs(si.Twist), float32(maxTwist))

	for i := 0; i < 200; i++ {
		p := si.Pose(float32(i) * 0.1)
		assert.LessOrEqual(t, math32.Abs(p.Pitch-si.BaseTilt-si.Droop), si.Strength+1e-6)
		assert.LessOrEqual(t, math32.Abs(p.Roll-si.Twist), si.Strength*0.6+1e-6)
	}

	assert.Equal(t, si.Pose(1.5), NewSway(inner, 0.3, 1).Pose(1.5))
	assert.Equal(t, si.Pose(0), si.Pose(math32.NaN()))

	calm := NewSway(inner, 0.3, 0)
	assert.Equal(t, Pose{Pitch: 0.3 + calm.Droop, Roll: calm.Twist}, calm.Pose(12))
}
