// Package quality maps a device capability class to the generation
// parameters every flower generator reads.
package quality

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCapability = errors.New("unknown capability tier")
	ErrInvalidTier       = errors.New("invalid tier configuration")
)

// Capability is the device class reported by device detection.
type Capability int

const (
	Low Capability = iota
	Mobile
	Desktop
)

// String returns the lowercase name used in configuration files.
func (c Capability) String() string {
	switch c {
	case Low:
		return "low"
	case Mobile:
		return "mobile"
	case Desktop:
		return "desktop"
	default:
		return fmt.Sprintf("capability(%d)", int(c))
	}
}

// ParseCapability converts a configuration name into a Capability.
func ParseCapability(s string) (Capability, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "mobile":
		return Mobile, nil
	case "desktop", "full":
		return Desktop, nil
	}
	return Low, fmt.Errorf("%w: %q", ErrUnknownCapability, s)
}

// Tier holds every resolution and feature toggle for one capability class.
// A Tier is a value; generators receive it explicitly and never mutate it.
type Tier struct {
	Capability Capability

	// CurveSegments is the number of samples per Bezier segment of an outline.
	CurveSegments int
	// ExtrudeBevel adds a bevelled rim to extruded petals, sepals and leaves.
	ExtrudeBevel bool

	// RingRadii and InstanceCountsPerRing describe the petal rings, inner first.
	RingRadii             []float32
	InstanceCountsPerRing []int

	SepalCount     int
	LeafCount      int
	LeafSerrations int

	StemRadialSegments int
	StemLengthSegments int
	DiscRadialSegments int
	DiscRings          int

	// EnableSecondaryDetail turns on lateral petal waves, stem irregularity
	// and vertex colour gradients.
	EnableSecondaryDetail bool

	// SwayStride is how many frames pass between wind sway updates.
	SwayStride int
}

// RingCount returns the number of petal rings.
func (t Tier) RingCount() int {
	return len(t.InstanceCountsPerRing)
}

// PetalCount returns the total number of petals over all rings.
func (t Tier) PetalCount() int {
	total := 0
	for _, c := range t.InstanceCountsPerRing {
		total += c
	}
	return total
}

// Select returns the tier for a capability flag. It is the only place tier
// parameters are derived.
func Select(c Capability) (Tier, error) {
	var t Tier
	switch c {
	case Low:
		t = Tier{
			CurveSegments:         4,
			ExtrudeBevel:          false,
			RingRadii:             []float32{0.06, 0.1},
			InstanceCountsPerRing: []int{5, 8},
			SepalCount:            5,
			LeafCount:             1,
			LeafSerrations:        6,
			StemRadialSegments:    5,
			StemLengthSegments:    8,
			DiscRadialSegments:    10,
			DiscRings:             3,
			EnableSecondaryDetail: false,
			SwayStride:            2,
		}
	case Mobile:
		t = Tier{
			CurveSegments:         8,
			ExtrudeBevel:          false,
			RingRadii:             []float32{0.06, 0.1, 0.14},
			InstanceCountsPerRing: []int{8, 13, 13},
			SepalCount:            5,
			LeafCount:             2,
			LeafSerrations:        10,
			StemRadialSegments:    8,
			StemLengthSegments:    16,
			DiscRadialSegments:    16,
			DiscRings:             5,
			EnableSecondaryDetail: false,
			SwayStride:            1,
		}
	case Desktop:
		t = Tier{
			CurveSegments:         16,
			ExtrudeBevel:          true,
			RingRadii:             []float32{0.06, 0.1, 0.14, 0.18},
			InstanceCountsPerRing: []int{13, 21, 21, 21},
			SepalCount:            8,
			LeafCount:             3,
			LeafSerrations:        16,
			StemRadialSegments:    12,
			StemLengthSegments:    32,
			DiscRadialSegments:    32,
			DiscRings:             8,
			EnableSecondaryDetail: true,
			SwayStride:            1,
		}
	default:
		return Tier{}, fmt.Errorf("%w: %d", ErrUnknownCapability, int(c))
	}
	t.Capability = c
	if err := t.Validate(); err != nil {
		return Tier{}, err
	}
	return t, nil
}

// Validate rejects configurations no generator can build from.
func (t Tier) Validate() error {
	switch {
	case t.CurveSegments < 1:
		return fmt.Errorf("%w: curve segments %d < 1", ErrInvalidTier, t.CurveSegments)
	case len(t.InstanceCountsPerRing) == 0:
		return fmt.Errorf("%w: no petal rings", ErrInvalidTier)
	case len(t.RingRadii) != len(t.InstanceCountsPerRing):
		return fmt.Errorf("%w: %d ring radii for %d rings", ErrInvalidTier, len(t.RingRadii), len(t.InstanceCountsPerRing))
	case t.SepalCount < 0 || t.LeafCount < 0:
		return fmt.Errorf("%w: negative sepal or leaf count", ErrInvalidTier)
	case t.LeafCount > 0 && t.LeafSerrations < 1:
		return fmt.Errorf("%w: leaf serrations %d < 1", ErrInvalidTier, t.LeafSerrations)
	case t.StemRadialSegments < 3:
		return fmt.Errorf("%w: stem radial segments %d < 3", ErrInvalidTier, t.StemRadialSegments)
	case t.StemLengthSegments < 1:
		return fmt.Errorf("%w: stem length segments %d < 1", ErrInvalidTier, t.StemLengthSegments)
	case t.DiscRadialSegments < 3 || t.DiscRings < 1:
		return fmt.Errorf("%w: disc needs >= 3 radial segments and >= 1 ring", ErrInvalidTier)
	case t.SwayStride < 1:
		return fmt.Errorf("%w: sway stride %d < 1", ErrInvalidTier, t.SwayStride)
	}
	for i, c := range t.InstanceCountsPerRing {
		if c < 1 {
			return fmt.Errorf("%w: ring %d has %d instances", ErrInvalidTier, i, c)
		}
		if t.RingRadii[i] < 0 {
			return fmt.Errorf("%w: ring %d has negative radius", ErrInvalidTier, i)
		}
	}
	return nil
}
