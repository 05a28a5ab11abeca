package pathrender

import (
	"fmt"
	"math"
)

// CurveKind discriminates the parametric curve primitives.
type CurveKind int

const (
	LineKind CurveKind = iota
	QuadKind
	CubeKind
	ArcKind
)

func (k CurveKind) String() string {
	switch k {
	case LineKind:
		return "Line"
	case QuadKind:
		return "Quad"
	case CubeKind:
		return "Cube"
	case ArcKind:
		return "Arc"
	}
	return fmt.Sprintf("CurveKind(%d)", int(k))
}

// Curve is a parametric plane curve over t in [0,1]: a line segment, a
// quadratic or cubic Bézier, or an elliptic arc. Curves are immutable value
// types; construct them with Line, Quad, Cube, Arc, ArcFromEndpoints or
// Circle.
type Curve struct {
	kind CurveKind

	// control points for Line (p0,p1), Quad (p0,p1,p2) and Cube (p0..p3)
	p0, p1, p2, p3 Point

	// arc in center form
	center, radii  Point
	crot           Point // unit rotation vector (cos phi, sin phi)
	theta0, dtheta float64
}

// Line returns the line segment from a to b.
func Line(a, b Point) Curve {
	return Curve{kind: LineKind, p0: a, p1: b}
}

// Quad returns the quadratic Bézier with endpoints a, c and control point b.
func Quad(a, b, c Point) Curve {
	return Curve{kind: QuadKind, p0: a, p1: b, p2: c}
}

// Cube returns the cubic Bézier with endpoints a, d and control points b, c.
func Cube(a, b, c, d Point) Curve {
	return Curve{kind: CubeKind, p0: a, p1: b, p2: c, p3: d}
}

// Arc returns the elliptic arc in center form: the ellipse at center with
// the given radii, rotated by phi radians, swept from angle theta0 over
// dtheta (negative dtheta sweeps clockwise).
func Arc(center, radii Point, phi, theta0, dtheta float64) Curve {
	return Curve{kind: ArcKind, center: center, radii: radii, crot: PointFromAngle(phi), theta0: theta0, dtheta: dtheta}
}

// Kind returns the curve's primitive kind.
func (c Curve) Kind() CurveKind {
	return c.kind
}

// Start returns the curve's position at t=0.
func (c Curve) Start() Point {
	return c.At(0.0)
}

// End returns the curve's position at t=1.
func (c Curve) End() Point {
	return c.At(1.0)
}

// At evaluates the curve's position at parameter t. It must be called with
// t in [0,1].
func (c Curve) At(t float64) Point {
	switch c.kind {
	case LineKind:
		return c.p0.Interpolate(c.p1, t)
	case QuadKind:
		ct := 1.0 - t
		return c.p0.Mul(ct * ct).Add(c.p1.Mul(2.0 * ct * t)).Add(c.p2.Mul(t * t))
	case CubeKind:
		ct := 1.0 - t
		return c.p0.Mul(ct * ct * ct).Add(c.p1.Mul(3.0 * ct * ct * t)).Add(c.p2.Mul(3.0 * ct * t * t)).Add(c.p3.Mul(t * t * t))
	case ArcKind:
		return c.arcLocalToGlobal(c.arcDeltaAt(t))
	}
	panic("bug: unknown curve kind")
}

// Derivative returns the curve whose position at t is the derivative of c
// at t. A line's derivative is constant, a quadratic's is a line, a cubic's
// is a quadratic and an arc's is an arc.
func (c Curve) Derivative() Curve {
	switch c.kind {
	case LineKind:
		d := c.p1.Sub(c.p0)
		return Line(d, d)
	case QuadKind:
		return Line(c.p1.Sub(c.p0).Mul(2.0), c.p2.Sub(c.p1).Mul(2.0))
	case CubeKind:
		return Quad(c.p1.Sub(c.p0).Mul(3.0), c.p2.Sub(c.p1).Mul(3.0), c.p3.Sub(c.p2).Mul(3.0))
	case ArcKind:
		d := c
		d.center = Point{}
		d.radii = c.radii.Mul(math.Abs(c.dtheta))
		d.theta0 = c.theta0 + math.Copysign(0.5*math.Pi, c.dtheta)
		return d
	}
	panic("bug: unknown curve kind")
}

// Subcurve returns the restriction of c to [l,r], reparametrized to [0,1].
func (c Curve) Subcurve(l, r float64) Curve {
	switch c.kind {
	case LineKind:
		return Line(c.At(l), c.At(r))
	case QuadKind:
		// endpoints are evaluated exactly, the control point follows from
		// the blossom of the quadratic
		cl, cr := 1.0-l, 1.0-r
		b := c.p0.Mul(cl * cr).Add(c.p1.Mul(l*cr + r*cl)).Add(c.p2.Mul(l * r))
		return Quad(c.At(l), b, c.At(r))
	case CubeKind:
		a := c.At(l)
		d := c.At(r)
		dd := c.Derivative()
		d1 := dd.At(l).Mul(r - l)
		d2 := dd.At(r).Mul(r - l)
		return Cube(a, a.Add(d1.Div(3.0)), d.Sub(d2.Div(3.0)), d)
	case ArcKind:
		sub := c
		sub.theta0 = c.theta0 + l*c.dtheta
		sub.dtheta = (r - l) * c.dtheta
		return sub
	}
	panic("bug: unknown curve kind")
}

// Reverse returns the curve traversed from t=1 to t=0.
func (c Curve) Reverse() Curve {
	switch c.kind {
	case LineKind:
		return Line(c.p1, c.p0)
	case QuadKind:
		return Quad(c.p2, c.p1, c.p0)
	case CubeKind:
		return Cube(c.p3, c.p2, c.p1, c.p0)
	case ArcKind:
		rev := c
		rev.theta0 = c.theta0 + c.dtheta
		rev.dtheta = -c.dtheta
		return rev
	}
	panic("bug: unknown curve kind")
}

// IsDegenerate is true for curves that collapse to a single point within
// tolerance: zero-length lines, Béziers with all control points coincident,
// and arcs with vanishing radii.
func (c Curve) IsDegenerate() bool {
	switch c.kind {
	case LineKind:
		return c.p0.Equals(c.p1)
	case QuadKind:
		return c.p0.Equals(c.p1) && c.p1.Equals(c.p2)
	case CubeKind:
		return c.p0.Equals(c.p1) && c.p1.Equals(c.p2) && c.p2.Equals(c.p3)
	case ArcKind:
		return c.radii.Equals(Point{}) || Equal(c.dtheta, 0.0)
	}
	panic("bug: unknown curve kind")
}

// BoundingBox returns the minimal axis-aligned rect containing the curve,
// obtained by evaluating it at its critical points.
func (c Curve) BoundingBox() Rect {
	ts := c.CriticalPoints()
	r := RectFromPoints(c.At(ts[0]), c.At(ts[0]))
	for _, t := range ts[1:] {
		p := c.At(t)
		x0 := math.Min(r.X, p.X)
		y0 := math.Min(r.Y, p.Y)
		x1 := math.Max(r.X+r.W, p.X)
		y1 := math.Max(r.Y+r.H, p.Y)
		r = Rect{x0, y0, x1 - x0, y1 - y0}
	}
	return r
}

func (c Curve) String() string {
	switch c.kind {
	case LineKind:
		return fmt.Sprintf("Line(%v,%v)", c.p0, c.p1)
	case QuadKind:
		return fmt.Sprintf("Quad(%v,%v,%v)", c.p0, c.p1, c.p2)
	case CubeKind:
		return fmt.Sprintf("Cube(%v,%v,%v,%v)", c.p0, c.p1, c.p2, c.p3)
	case ArcKind:
		return fmt.Sprintf("Arc(center=%v, radii=%v, rot=%g°, theta0=%g°, dtheta=%g°)",
			c.center, c.radii, c.crot.Angle()*180.0/math.Pi, c.theta0*180.0/math.Pi, c.dtheta*180.0/math.Pi)
	}
	return c.kind.String()
}

////////////////////////////////////////////////////////////////

// appendRoot01 appends t when it is a real root inside [0,1] with tolerance.
func appendRoot01(ts []float64, t float64) []float64 {
	if !math.IsNaN(t) && !math.IsInf(t, 0) && Interval(t, 0.0, 1.0) {
		ts = append(ts, t)
	}
	return ts
}

// intersectionX returns all parameter values in [0,1] where the curve
// crosses the vertical line at x. A line yields at most one value, a
// quadratic two, a cubic three and an arc two.
func (c Curve) intersectionX(x float64) []float64 {
	switch c.kind {
	case LineKind:
		r0, _ := solveQuadraticFormula(0.0, c.p1.X-c.p0.X, c.p0.X-x)
		return appendRoot01(nil, r0)
	case QuadKind:
		r0, r1 := solveQuadraticFormula(c.p0.X-2.0*c.p1.X+c.p2.X, 2.0*(c.p1.X-c.p0.X), c.p0.X-x)
		return appendRoot01(appendRoot01(nil, r0), r1)
	case CubeKind:
		r0, r1, r2 := solveCubicFormula(-c.p0.X+3.0*c.p1.X-3.0*c.p2.X+c.p3.X,
			3.0*(c.p0.X-2.0*c.p1.X+c.p2.X), 3.0*(c.p1.X-c.p0.X), c.p0.X-x)
		return appendRoot01(appendRoot01(appendRoot01(nil, r0), r1), r2)
	case ArcKind:
		// rx*cos(phi)*cos(th) - ry*sin(phi)*sin(th) = x - cx
		return c.arcSolveTrig(c.radii.X*c.crot.X, -c.radii.Y*c.crot.Y, x-c.center.X)
	}
	panic("bug: unknown curve kind")
}

// intersectionY returns all parameter values in [0,1] where the curve
// crosses the horizontal line at y.
func (c Curve) intersectionY(y float64) []float64 {
	switch c.kind {
	case LineKind:
		r0, _ := solveQuadraticFormula(0.0, c.p1.Y-c.p0.Y, c.p0.Y-y)
		return appendRoot01(nil, r0)
	case QuadKind:
		r0, r1 := solveQuadraticFormula(c.p0.Y-2.0*c.p1.Y+c.p2.Y, 2.0*(c.p1.Y-c.p0.Y), c.p0.Y-y)
		return appendRoot01(appendRoot01(nil, r0), r1)
	case CubeKind:
		r0, r1, r2 := solveCubicFormula(-c.p0.Y+3.0*c.p1.Y-3.0*c.p2.Y+c.p3.Y,
			3.0*(c.p0.Y-2.0*c.p1.Y+c.p2.Y), 3.0*(c.p1.Y-c.p0.Y), c.p0.Y-y)
		return appendRoot01(appendRoot01(appendRoot01(nil, r0), r1), r2)
	case ArcKind:
		// rx*sin(phi)*cos(th) + ry*cos(phi)*sin(th) = y - cy
		return c.arcSolveTrig(c.radii.X*c.crot.Y, c.radii.Y*c.crot.X, y-c.center.Y)
	}
	panic("bug: unknown curve kind")
}

// intersectionSeg returns all parameter values in [0,1] where the curve
// crosses the infinite line through v1 and v2.
func (c Curve) intersectionSeg(v1, v2 Point) []float64 {
	dv := v2.Sub(v1)
	switch c.kind {
	case LineKind:
		r0, _ := solveQuadraticFormula(0.0, dv.PerpDot(c.p1.Sub(c.p0)), dv.PerpDot(c.p0.Sub(v1)))
		return appendRoot01(nil, r0)
	case QuadKind:
		r0, r1 := solveQuadraticFormula(dv.PerpDot(c.p0.Sub(c.p1.Mul(2.0)).Add(c.p2)),
			2.0*dv.PerpDot(c.p1.Sub(c.p0)), dv.PerpDot(c.p0.Sub(v1)))
		return appendRoot01(appendRoot01(nil, r0), r1)
	case CubeKind:
		r0, r1, r2 := solveCubicFormula(dv.PerpDot(c.p3.Sub(c.p0).Add(c.p1.Mul(3.0)).Sub(c.p2.Mul(3.0))),
			3.0*dv.PerpDot(c.p0.Sub(c.p1.Mul(2.0)).Add(c.p2)),
			3.0*dv.PerpDot(c.p1.Sub(c.p0)), dv.PerpDot(c.p0.Sub(v1)))
		return appendRoot01(appendRoot01(appendRoot01(nil, r0), r1), r2)
	case ArcKind:
		return c.arcSolveTrig(c.radii.X*c.crot.PerpDot(dv), -c.radii.Y*c.crot.Dot(dv), dv.PerpDot(c.center.Sub(v1)))
	}
	panic("bug: unknown curve kind")
}
