package pathrender

import (
	"math"
	"sort"
)

// CriticalPoints is a strictly increasing sequence of parameter values
// starting at 0 and ending at 1. Each consecutive pair delimits a sub-curve
// that is monotonic in both x and y. The sequence is deterministic for a
// given curve and may be memoized by the caller across intersection
// queries.
type CriticalPoints []float64

// CriticalPoints returns the curve's monotonic decomposition: 0 and 1 with
// the interior parameter values where the x- or y-derivative vanishes.
func (c Curve) CriticalPoints() CriticalPoints {
	ts := CriticalPoints{0.0}
	switch c.kind {
	case LineKind:
		// lines are monotonic
	case QuadKind:
		d := c.Derivative()
		ts = appendCritical(ts, d.p0.X/(d.p0.X-d.p1.X))
		ts = appendCritical(ts, d.p0.Y/(d.p0.Y-d.p1.Y))
	case CubeKind:
		d := c.Derivative()
		tx0, tx1 := solveQuadraticFormula(d.p0.X-2.0*d.p1.X+d.p2.X, 2.0*(d.p1.X-d.p0.X), d.p0.X)
		ty0, ty1 := solveQuadraticFormula(d.p0.Y-2.0*d.p1.Y+d.p2.Y, 2.0*(d.p1.Y-d.p0.Y), d.p0.Y)
		ts = appendCritical(ts, tx0)
		ts = appendCritical(ts, tx1)
		ts = appendCritical(ts, ty0)
		ts = appendCritical(ts, ty1)
	case ArcKind:
		// extrema of the rotated ellipse: the x-extrema lie at the angles
		// where rx*cos(phi)*sin(th) + ry*sin(phi)*cos(th) = 0, the y-extrema
		// where rx*sin(phi)*sin(th) - ry*cos(phi)*cos(th) = 0, each twice
		// per turn
		ax := math.Atan2(-c.radii.Y*c.crot.Y, c.radii.X*c.crot.X)
		ay := math.Atan2(c.radii.Y*c.crot.X, c.radii.X*c.crot.Y)
		ts = appendCritical(ts, c.arcAngleToParam(ax))
		ts = appendCritical(ts, c.arcAngleToParam(ax+math.Pi))
		ts = appendCritical(ts, c.arcAngleToParam(ay))
		ts = appendCritical(ts, c.arcAngleToParam(ay+math.Pi))
	}
	ts = append(ts, 1.0)

	sort.Float64s(ts)
	return dedupCritical(ts)
}

// appendCritical keeps t when it is an interior parameter value.
func appendCritical(ts CriticalPoints, t float64) CriticalPoints {
	if !math.IsNaN(t) && !math.IsInf(t, 0) && Epsilon < t && t < 1.0-Epsilon {
		ts = append(ts, t)
	}
	return ts
}

// dedupCritical removes near-coincident neighbours from a sorted sequence,
// keeping the first of each run.
func dedupCritical(ts CriticalPoints) CriticalPoints {
	j := 0
	for i := 1; i < len(ts); i++ {
		if !Equal(ts[i], ts[j]) {
			j++
			ts[j] = ts[i]
		}
	}
	return ts[:j+1]
}
