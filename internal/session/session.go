// Package session drives a flower headlessly: it builds the flower for the
// configured tier and ticks it with a simulated clock and fixed sensor
// inputs, the way a render loop would.
package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/flora/internal/config"
	"github.com/Faultbox/flora/internal/debug"
	"github.com/Faultbox/flora/internal/flower"
	"github.com/Faultbox/flora/internal/flower/anim"
	"github.com/Faultbox/flora/internal/flower/quality"
	"github.com/Faultbox/flora/internal/logger"
)

// Session is one simulated viewing of a flower.
type Session struct {
	cfg    *config.Config
	flower *flower.Flower
	log    *zap.Logger
}

// Summary is the state at the end of a run.
type Summary struct {
	Frames     int
	Yaw        float32
	PulseScale float32
	Pulse      anim.PulseState
	Export     string
}

// New builds the flower described by cfg.
func New(cfg *config.Config) (*Session, error) {
	log := logger.Named("session")

	c, err := cfg.Capability()
	if err != nil {
		return nil, fmt.Errorf("selecting tier: %w", err)
	}
	tier, err := quality.Select(c)
	if err != nil {
		return nil, fmt.Errorf("selecting tier: %w", err)
	}
	log.Info("tier selected",
		zap.Stringer("tier", c),
		zap.Int("petals", tier.PetalCount()),
		zap.Int("curve_segments", tier.CurveSegments),
		zap.Bool("secondary_detail", tier.EnableSecondaryDetail),
	)

	f, err := flower.New(tier, Options(cfg))
	if err != nil {
		return nil, fmt.Errorf("building flower: %w", err)
	}
	return &Session{cfg: cfg, flower: f, log: log}, nil
}

// Options maps the animation section onto flower build options.
func Options(cfg *config.Config) flower.Options {
	opts := flower.DefaultOptions()
	opts.Anim.WindScale = cfg.Animation.WindStrength
	opts.Anim.Heartbeat.MaxIntensity = cfg.Animation.MaxPulseIntensity
	opts.FrameSkip = cfg.Animation.FrameSkip
	return opts
}

// Input returns the frame input for frame i of the configured session.
func Input(cfg *config.Config, i int) anim.FrameInput {
	dt := 1 / float32(cfg.Session.FPS)
	in := anim.FrameInput{
		Time:  float32(i+1) * dt,
		Delta: dt,
	}
	if b := cfg.Session.Bearing; b != nil {
		in.Bearing, in.HasBearing = *b, true
	}
	if h := cfg.Session.Heading; h != nil {
		in.Heading, in.HasHeading = *h, true
	}
	if d := cfg.Session.Distance; d >= 0 {
		in.Distance = anim.Meters(d)
	}
	return in
}

// Flower returns the flower being driven.
func (s *Session) Flower() *flower.Flower {
	return s.flower
}

// Run ticks the flower for the configured duration, logging once per
// simulated second, and exports it when configured.
func (s *Session) Run() (Summary, error) {
	frames := int(s.cfg.Session.Seconds * float32(s.cfg.Session.FPS))
	s.log.Info("starting session",
		zap.Int("fps", s.cfg.Session.FPS),
		zap.Int("frames", frames),
	)

	for i := 0; i < frames; i++ {
		s.flower.Update(Input(s.cfg, i))

		if (i+1)%s.cfg.Session.FPS == 0 {
			st := s.flower.State()
			s.log.Debug("tick",
				zap.Int("frame", i+1),
				zap.Float32("yaw", st.Yaw),
				zap.Float32("pulse_scale", st.Heartbeat.Scale),
				zap.Stringer("pulse", st.Heartbeat.State),
			)
		}
	}

	st := s.flower.State()
	sum := Summary{
		Frames:     frames,
		Yaw:        st.Yaw,
		PulseScale: st.Heartbeat.Scale,
		Pulse:      st.Heartbeat.State,
	}

	if s.cfg.Export.OBJ {
		e := debug.NewOBJExporter(s.cfg.Export.Dir, "flower_"+s.flower.Tier.Capability.String())
		e.Bounds = s.cfg.Export.Bounds
		path, err := e.Export(s.flower.Root)
		if err != nil {
			return sum, fmt.Errorf("export error: %w", err)
		}
		s.log.Info("exported flower", zap.String("path", path))
		sum.Export = path
	}

	s.log.Info("session finished",
		zap.Float32("yaw", sum.Yaw),
		zap.Float32("pulse_scale", sum.PulseScale),
		zap.Stringer("pulse", sum.Pulse),
	)
	return sum, nil
}

// Stats returns per-mesh statistics of the flower.
func (s *Session) Stats() []debug.MeshStat {
	return debug.CollectStats(s.flower.Root)
}

// Close releases the flower.
func (s *Session) Close() {
	s.log.Info("closing session")
	if s.flower != nil {
		s.flower.Release()
	}
}
