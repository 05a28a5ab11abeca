package pathrender

import "math"

// ArcFromEndpoints converts an SVG-style endpoint parametrization into a
// center-form arc from cur to target: radii, a rotation of phi radians, and
// the large-arc and sweep flags.
// see https://svgwg.org/svg2-draft/implnote.html#ArcImplementationNotes
func ArcFromEndpoints(cur, radii Point, phi float64, largeArc, sweep bool, target Point) Curve {
	xpr := cur.Sub(target).Div(2.0).Rot(-phi)

	// guarantee that the radii are positive and large enough
	radii = Point{math.Abs(radii.X), math.Abs(radii.Y)}
	rr := radii.X*radii.X*xpr.Y*xpr.Y + radii.Y*radii.Y*xpr.X*xpr.X
	r2 := radii.X * radii.X * radii.Y * radii.Y
	var skr float64
	if r2 < rr {
		radii = radii.Mul(math.Sqrt(rr / r2))
	} else {
		skr = math.Sqrt((r2 - rr) / rr)
	}

	// the rotated and unrotated center
	cpr := Point{skr * radii.X * xpr.Y / radii.Y, -skr * radii.Y * xpr.X / radii.X}
	if largeArc == sweep {
		cpr = cpr.Neg()
	}
	center := cpr.Rot(phi).Add(target.Add(cur).Div(2.0))

	// the angle range
	t1 := math.Atan2(radii.X*(xpr.Y-cpr.Y), radii.Y*(xpr.X-cpr.X))
	t2 := math.Atan2(radii.X*(-xpr.Y-cpr.Y), radii.Y*(-xpr.X-cpr.X))
	dt := t2 - t1
	if !sweep && 0.0 < dt {
		dt -= 2.0 * math.Pi
	} else if sweep && dt < 0.0 {
		dt += 2.0 * math.Pi
	}
	return Arc(center, radii, phi, t1, dt)
}

// Circle returns the circular arc around center from direction v1 to
// direction v2, counter clockwise when ccw is set.
func Circle(center Point, radius float64, v1, v2 Point, ccw bool) Curve {
	crot := v1.Norm(1.0)
	dt := wrapAngle360(math.Atan2(v1.PerpDot(v2), v1.Dot(v2)), ccw)
	c := Arc(center, Point{radius, radius}, 0.0, 0.0, dt)
	c.crot = crot
	return c
}

// wrapAngle360 wraps theta into a full negative turn (-2PI,0] when ccw, or
// a full positive turn [0,2PI) otherwise.
func wrapAngle360(theta float64, ccw bool) float64 {
	if ccw {
		return theta - 2.0*math.Pi*math.Ceil(theta/(2.0*math.Pi))
	}
	return theta - 2.0*math.Pi*math.Floor(theta/(2.0*math.Pi))
}

// arcDeltaAt returns the arc's position at t in the ellipse's local
// (unrotated, centered) coordinates.
func (c Curve) arcDeltaAt(t float64) Point {
	th := c.theta0 + t*c.dtheta
	sinth, costh := math.Sincos(th)
	return Point{c.radii.X * costh, c.radii.Y * sinth}
}

// arcLocalToGlobal maps a local ellipse point to world space.
func (c Curve) arcLocalToGlobal(p Point) Point {
	return c.center.Add(c.crot.RotScale(p))
}

func (c Curve) arcLesserAngle() float64 {
	return math.Min(c.theta0, c.theta0+c.dtheta)
}

func (c Curve) arcGreaterAngle() float64 {
	return math.Max(c.theta0, c.theta0+c.dtheta)
}

// arcAngleToParam maps an ellipse angle to the arc's parameter in [0,1], or
// +Inf when the angle does not lie on the arc. The angle and up to two full
// turns on either side are tested against the arc's angle range.
func (c Curve) arcAngleToParam(theta float64) float64 {
	theta = wrapAngle(theta)
	lesser, greater := c.arcLesserAngle(), c.arcGreaterAngle()
	for i := -2.0; i <= 2.0; i += 1.0 {
		cand := theta + i*2.0*math.Pi
		if lesser-Epsilon <= cand && cand <= greater+Epsilon {
			return (cand - c.theta0) / c.dtheta
		}
	}
	return math.Inf(1)
}

// arcSolveTrig solves a*cos(th) + b*sin(th) = d over the arc's angle range
// and returns the parameter values in [0,1]. The equation rewrites to
// R*cos(th - atan2(b,a)) = d with R = hypot(a,b), giving at most two angles
// per turn.
func (c Curve) arcSolveTrig(a, b, d float64) []float64 {
	r := math.Hypot(a, b)
	if r+Epsilon < math.Abs(d) {
		return nil
	}
	ratio := d / r
	if ratio < -1.0 {
		ratio = -1.0
	} else if 1.0 < ratio {
		ratio = 1.0
	}
	acos := math.Acos(ratio)
	base := math.Atan2(b, a)

	ts := appendRoot01(nil, c.arcAngleToParam(base+acos))
	if !Equal(acos, 0.0) && !Equal(acos, math.Pi) {
		// both solutions per turn are distinct
		ts = appendRoot01(ts, c.arcAngleToParam(base-acos))
	}
	return ts
}
