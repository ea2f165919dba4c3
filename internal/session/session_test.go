package session

import (
	"os"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/flora/internal/config"
	"github.com/Faultbox/flora/internal/flower/anim"
)

func ptr(v float32) *float32 { return &v }

func TestRunTracksBearingAndPulses(t *testing.T) {
	cfg := config.Default()
	cfg.Session.FPS = 30
	cfg.Session.Seconds = 4
	cfg.Session.Bearing = ptr(90)
	cfg.Session.Heading = ptr(0)
	cfg.Session.Distance = 0

	s, err := New(cfg)
	require.NoError(t, err)
	defer s.Close()

	sum, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, 120, sum.Frames)
	assert.InDelta(t, math32.Pi/2, sum.Yaw, 1e-3)
	assert.Equal(t, anim.Pulsing, sum.Pulse)
	assert.Empty(t, sum.Export)
}

func TestRunNeutralWithoutSensors(t *testing.T) {
	cfg := config.Default()
	cfg.Session.Seconds = 1

	s, err := New(cfg)
	require.NoError(t, err)
	defer s.Close()

	sum, err := s.Run()
	require.NoError(t, err)
	assert.Zero(t, sum.Yaw)
	assert.Equal(t, float32(1), sum.PulseScale)
	assert.Equal(t, anim.Idle, sum.Pulse)
}

func TestRunExports(t *testing.T) {
	cfg := config.Default()
	cfg.Quality.Tier = "low"
	cfg.Session.Seconds = 0.5
	cfg.Export.OBJ = true
	cfg.Export.Dir = t.TempDir()

	s, err := New(cfg)
	require.NoError(t, err)
	defer s.Close()

	sum, err := s.Run()
	require.NoError(t, err)
	require.NotEmpty(t, sum.Export)
	info, err := os.Stat(sum.Export)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestNewRejectsUnknownTier(t *testing.T) {
	cfg := config.Default()
	cfg.Quality.Tier = "ultra"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Animation.WindStrength = 2
	cfg.Animation.MaxPulseIntensity = 0.3
	cfg.Animation.FrameSkip = false

	opts := Options(cfg)
	assert.Equal(t, float32(2), opts.Anim.WindScale)
	assert.Equal(t, float32(0.3), opts.Anim.Heartbeat.MaxIntensity)
	assert.Equal(t, float32(1000), opts.Anim.Heartbeat.Threshold)
	assert.False(t, opts.FrameSkip)
}

func TestInput(t *testing.T) {
	cfg := config.Default()
	cfg.Session.FPS = 50

	in := Input(cfg, 9)
	assert.InDelta(t, 0.2, in.Time, 1e-6)
	assert.InDelta(t, 0.02, in.Delta, 1e-7)
	assert.False(t, in.HasBearing)
	assert.False(t, in.HasHeading)
	assert.False(t, in.Distance.Known)

	cfg.Session.Bearing = ptr(10)
	cfg.Session.Distance = 5
	in = Input(cfg, 0)
	assert.True(t, in.HasBearing)
	assert.Equal(t, float32(10), in.Bearing)
	assert.Equal(t, anim.Meters(5), in.Distance)
}

func TestStatsAndClose(t *testing.T) {
	cfg := config.Default()
	s, err := New(cfg)
	require.NoError(t, err)

	stats := s.Stats()
	assert.Len(t, stats, len(s.Flower().Meshes()))
	s.Close()
	assert.Empty(t, s.Stats())
}
