package math

// Spline is a uniform Catmull-Rom curve through an ordered list of control
// points. The end points are duplicated so the curve passes through every
// control point, first to last.
type Spline struct {
	points []Vec3
}

// NewSpline copies points into a new spline.
func NewSpline(points ...Vec3) Spline {
	return Spline{points: append([]Vec3(nil), points...)}
}

// Points returns a copy of the control points.
func (s Spline) Points() []Vec3 {
	return append([]Vec3(nil), s.points...)
}

// Len returns the number of control points.
func (s Spline) Len() int {
	return len(s.points)
}

// segment maps t in [0,1] to a span index and local parameter.
func (s Spline) segment(t float32) (int, float32) {
	spans := len(s.points) - 1
	t = Clamp(t, 0, 1)
	f := t * float32(spans)
	i := int(f)
	if i >= spans {
		i = spans - 1
	}
	return i, f - float32(i)
}

func (s Spline) control(i int) Vec3 {
	if i < 0 {
		i = 0
	}
	if i >= len(s.points) {
		i = len(s.points) - 1
	}
	return s.points[i]
}

// Point evaluates the curve at t in [0,1].
func (s Spline) Point(t float32) Vec3 {
	switch len(s.points) {
	case 0:
		return Vec3{}
	case 1:
		return s.points[0]
	}
	i, u := s.segment(t)
	p0, p1, p2, p3 := s.control(i-1), s.control(i), s.control(i+1), s.control(i+2)

	u2 := u * u
	u3 := u2 * u
	b0 := -0.5*u3 + u2 - 0.5*u
	b1 := 1.5*u3 - 2.5*u2 + 1
	b2 := -1.5*u3 + 2*u2 + 0.5*u
	b3 := 0.5*u3 - 0.5*u2

	return p0.Scale(b0).Add(p1.Scale(b1)).Add(p2.Scale(b2)).Add(p3.Scale(b3))
}

// Derivative returns the unnormalized tangent dP/dt at t in [0,1].
// It is the zero vector wherever the curve does not move.
func (s Spline) Derivative(t float32) Vec3 {
	if len(s.points) < 2 {
		return Vec3{}
	}
	i, u := s.segment(t)
	p0, p1, p2, p3 := s.control(i-1), s.control(i), s.control(i+1), s.control(i+2)

	u2 := u * u
	d0 := -1.5*u2 + 2*u - 0.5
	d1 := 4.5*u2 - 5*u
	d2 := -4.5*u2 + 4*u + 0.5
	d3 := 1.5*u2 - u

	spans := float32(len(s.points) - 1)
	return p0.Scale(d0).Add(p1.Scale(d1)).Add(p2.Scale(d2)).Add(p3.Scale(d3)).Scale(spans)
}

// ChordLength returns the summed distance between consecutive control points.
func (s Spline) ChordLength() float32 {
	var total float32
	for i := 1; i < len(s.points); i++ {
		total += s.points[i].Distance(s.points[i-1])
	}
	return total
}
