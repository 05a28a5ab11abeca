package pathrender

import (
	"math"
	"sort"
)

// Simplify prepares curves for intersection queries: degenerate curves are
// dropped, curves disguised as simpler primitives are demoted (a collinear
// quadratic becomes one or two lines, a cubic with no cubic term becomes a
// quadratic, a zero-radius arc becomes lines), and cubics are split at
// their loop and inflection parameters. Producers run this before querying
// so the engine only sees well-formed primitives.
func Simplify(curves []Curve) []Curve {
	var out []Curve
	for _, c := range curves {
		if !c.IsDegenerate() {
			out = simplifyCurve(out, c)
		}
	}
	n := 0
	for _, c := range out {
		if !c.IsDegenerate() {
			out[n] = c
			n++
		}
	}
	return out[:n]
}

func simplifyCurve(out []Curve, c Curve) []Curve {
	switch c.kind {
	case LineKind:
		return append(out, c)
	case QuadKind:
		return simplifyQuad(out, c)
	case CubeKind:
		return simplifyCube(out, c)
	case ArcKind:
		return simplifyArc(out, c)
	}
	panic("bug: unknown curve kind")
}

func simplifyQuad(out []Curve, c Curve) []Curve {
	if c.p0.Equals(c.p1) {
		return append(out, Line(c.p0.Add(c.p1).Div(2.0), c.p2))
	} else if c.p1.Equals(c.p2) {
		return append(out, Line(c.p0, c.p1.Add(c.p2).Div(2.0)))
	} else if Equal(c.p2.Sub(c.p1).Norm(1.0).PerpDot(c.p1.Sub(c.p0).Norm(1.0)), 0.0) {
		// control points are collinear, the quadratic is a line; it may
		// still reverse direction at the extremum of its derivative
		d := c.Derivative()
		tm := d.p0.X / (d.p0.X - d.p1.X)
		if Equal(d.p0.X, d.p1.X) {
			tm = d.p0.Y / (d.p0.Y - d.p1.Y)
		}
		if tm < 0.0 || 1.0 < tm || math.IsNaN(tm) {
			return append(out, Line(c.p0, c.p2))
		}
		mi := c.At(tm)
		return append(out, Line(c.p0, mi), Line(mi, c.p2))
	}
	return append(out, c)
}

func simplifyCube(out []Curve, c Curve) []Curve {
	if c.p0.Equals(c.p1) && c.p2.Equals(c.p3) {
		return append(out, Line(c.p0.Add(c.p1).Div(2.0), c.p2.Add(c.p3).Div(2.0)))
	}

	collinear := func(u, v Point) bool {
		return Equal(u.Norm(1.0).PerpDot(v.Norm(1.0)), 0.0)
	}
	if (c.p0.Equals(c.p1) || collinear(c.p1.Sub(c.p0), c.p2.Sub(c.p1))) &&
		(c.p2.Equals(c.p3) || collinear(c.p3.Sub(c.p2), c.p2.Sub(c.p1))) {
		// all control points collinear: decompose into monotonic lines
		ts := c.CriticalPoints()
		for i := 1; i < len(ts); i++ {
			out = append(out, Line(c.At(ts[i-1]), c.At(ts[i])))
		}
		return out
	}

	if c.p0.Sub(c.p1.Mul(3.0)).Add(c.p2.Mul(3.0)).Sub(c.p3).Equals(Point{}) {
		// the cubic term vanishes, this is a quadratic in disguise
		b1 := c.p1.Mul(3.0).Sub(c.p0)
		b2 := c.p2.Mul(3.0).Sub(c.p3)
		return append(out, Quad(c.p0, b1.Add(b2).Div(4.0), c.p3))
	}

	// split at loops, cusps and inflection points
	// see https://stackoverflow.com/a/38644407
	ts := []float64{0.0, 1.0}
	da := c.p1.Sub(c.p0)
	db := c.p2.Sub(c.p1)
	dc := c.p3.Sub(c.p2)

	ab := da.PerpDot(db)
	ac := da.PerpDot(dc)
	bc := db.PerpDot(dc)
	if ac*ac <= 4.0*ab*bc {
		// the curve has a loop; find its self-crossing parameters from the
		// canonical form
		c3 := da.Add(dc).Sub(db.Mul(2.0))
		if !Equal(c3.Y, 0.0) {
			conj := Point{c3.X, -c3.Y}
			da = da.RotScale(conj)
			db = db.RotScale(conj)
			dc = dc.RotScale(conj)
			c3 = da.Add(dc).Sub(db.Mul(2.0))
		}
		c2 := db.Sub(da).Mul(3.0)
		c1 := da.Mul(3.0)

		bb := -c1.Y / c2.Y
		s1 := c1.X / c3.X
		s2 := c2.X / c3.X
		r0, r1 := solveQuadraticFormula(1.0, -bb, bb*(bb+s2)+s1)
		ts = appendRoot01(appendRoot01(ts, r0), r1)
	}

	// inflection point polynomial
	k2 := c.p0.PerpDot(c.p1) - 2.0*c.p0.PerpDot(c.p2) + c.p0.PerpDot(c.p3) +
		3.0*c.p1.PerpDot(c.p2) - 2.0*c.p1.PerpDot(c.p3) + c.p2.PerpDot(c.p3)
	k1 := -2.0*c.p0.PerpDot(c.p1) + 3.0*c.p0.PerpDot(c.p2) - c.p0.PerpDot(c.p3) -
		3.0*c.p1.PerpDot(c.p2) + c.p1.PerpDot(c.p3)
	k0 := c.p0.PerpDot(c.p1) - c.p0.PerpDot(c.p2) + c.p1.PerpDot(c.p2)
	r0, r1 := solveQuadraticFormula(k2, k1, k0)
	ts = appendRoot01(appendRoot01(ts, r0), r1)

	sort.Float64s(ts)
	for i := 1; i < len(ts); i++ {
		if !Equal(ts[i-1], ts[i]) {
			out = append(out, c.Subcurve(ts[i-1], ts[i]))
		}
	}
	return out
}

func simplifyArc(out []Curve, c Curve) []Curve {
	if !Equal(c.radii.X, 0.0) && !Equal(c.radii.Y, 0.0) {
		return append(out, c)
	}

	// one radius vanished, the arc is a (rotated) line that may fold back
	// at the quarter-turn angles
	ts := []float64{0.0, 1.0}
	k := math.Ceil(c.arcLesserAngle() / (0.5 * math.Pi))
	kn := math.Floor(c.arcGreaterAngle() / (0.5 * math.Pi))
	for ; k <= kn; k += 1.0 {
		ts = appendRoot01(ts, c.arcAngleToParam(k*0.5*math.Pi))
	}
	sort.Float64s(ts)
	for i := 1; i < len(ts); i++ {
		if !Equal(ts[i-1], ts[i]) {
			out = append(out, Line(c.At(ts[i-1]), c.At(ts[i])))
		}
	}
	return out
}
