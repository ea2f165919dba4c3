package math

import "testing"

func TestSplinePassesThroughControlPoints(t *testing.T) {
	s := NewSpline(Vec3{0, 0, 0}, Vec3{0, 1, 0}, Vec3{1, 2, 0})

	if got := s.Point(0); got.Distance(Vec3{0, 0, 0}) > 1e-5 {
		t.Errorf("Point(0) = %v, want first control point", got)
	}
	if got := s.Point(0.5); got.Distance(Vec3{0, 1, 0}) > 1e-5 {
		t.Errorf("Point(0.5) = %v, want middle control point", got)
	}
	if got := s.Point(1); got.Distance(Vec3{1, 2, 0}) > 1e-5 {
		t.Errorf("Point(1) = %v, want last control point", got)
	}
}

func TestSplineDerivativeMatchesFiniteDifference(t *testing.T) {
	s := NewSpline(Vec3{0, 0, 0}, Vec3{0.2, 1, 0}, Vec3{0.1, 2, 0.3}, Vec3{0, 3, 0})
	const h = 1e-3
	for _, u := range []float32{0.1, 0.4, 0.7, 0.9} {
		fd := s.Point(u + h).Sub(s.Point(u - h)).Scale(1 / (2 * h))
		d := s.Derivative(u)
		if fd.Distance(d) > 0.02 {
			t.Errorf("Derivative(%v) = %v, finite difference %v", u, d, fd)
		}
	}
}

func TestSplineDegenerate(t *testing.T) {
	s := NewSpline(Vec3{1, 1, 1}, Vec3{1, 1, 1}, Vec3{1, 1, 1})
	if d := s.Derivative(0.5); d.Length() != 0 {
		t.Errorf("coincident points should give a zero derivative, got %v", d)
	}
	if s.ChordLength() != 0 {
		t.Errorf("ChordLength = %v, want 0", s.ChordLength())
	}
	if got := NewSpline().Point(0.5); got != (Vec3{}) {
		t.Errorf("empty spline Point = %v, want zero", got)
	}
}
