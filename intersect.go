package pathrender

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// The intersection strategy follows the usual path preprocessing approach:
// line-line and line-curve pairs have closed-form solutions, while
// curve-curve pairs are split into monotonic pieces at their critical
// points and refined by recursive bisection of the intersecting bounding
// box until it degenerates to a point within tolerance.

// IntersectionPair is a located intersection: curve1.At(T1) and
// curve2.At(T2) coincide within tolerance. The order of pairs in a result
// list is insertion order from the refinement and must be treated as
// unordered by consumers.
type IntersectionPair struct {
	T1, T2 float64
}

func (z IntersectionPair) String() string {
	return fmt.Sprintf("(t1=%g, t2=%g)", z.T1, z.T2)
}

// Errors reported for precondition violations. These indicate a malformed
// curve or a bug in the monotonic decomposition, not an expected runtime
// condition; an empty result list is a valid outcome and never an error.
var (
	// ErrNonMonotonic means more than two boundary crossings were found on
	// a curve piece assumed to be monotonic.
	ErrNonMonotonic = errors.New("pathrender: segment is not monotonic")

	// ErrAmbiguousRoot means a boundary-line solver returned several roots
	// inside one monotonic parameter interval where exactly one is
	// expected.
	ErrAmbiguousRoot = errors.New("pathrender: ambiguous root in monotonic interval")

	// ErrDegenerateCurve means a zero-length curve was passed as input.
	ErrDegenerateCurve = errors.New("pathrender: degenerate curve")
)

// Intersect returns all parameter pairs at which c1 and c2 intersect. The
// critical-point decompositions are computed on the fly; use
// IntersectWithCritical to reuse memoized decompositions across queries.
func Intersect(c1, c2 Curve) ([]IntersectionPair, error) {
	return IntersectWithCritical(c1, c2, nil, nil)
}

// IntersectWithCritical is Intersect with caller-provided critical-point
// decompositions for either curve; pass nil to compute them here.
func IntersectWithCritical(c1, c2 Curve, cp1, cp2 CriticalPoints) ([]IntersectionPair, error) {
	if c1.IsDegenerate() {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateCurve, c1)
	} else if c2.IsDegenerate() {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateCurve, c2)
	}

	var zs []IntersectionPair
	var err error
	switch {
	case c1.kind == LineKind && c2.kind == LineKind:
		zs = intersectionLineLine(zs, c1, c2)
	case c1.kind == LineKind:
		zs = intersectionLineCurve(zs, c1, c2, false)
	case c2.kind == LineKind:
		zs = intersectionLineCurve(zs, c2, c1, true)
	default:
		if cp1 == nil {
			cp1 = c1.CriticalPoints()
		}
		if cp2 == nil {
			cp2 = c2.CriticalPoints()
		}
		zs, err = intersectionGeneric(zs, c1, c2, cp1, cp2)
		if err != nil {
			return nil, err
		}
	}
	return dedupPairs(c1, c2, zs), nil
}

// intersectionLineLine solves two line segments in closed form, including
// the collinear overlap cases which report both overlap endpoints.
func intersectionLineLine(zs []IntersectionPair, l1, l2 Curve) []IntersectionPair {
	p, q := l1.p0, l2.p0
	r, s := l1.p1.Sub(l1.p0), l2.p1.Sub(l2.p0)

	rr, ss := r.Norm(1.0), s.Norm(1.0)
	if kk := rr.PerpDot(ss); Equal(kk, 0.0) {
		// same direction; check for collinearity
		var rs Point
		if 0.0 < rr.Dot(ss) {
			rs = rr.Add(ss).Norm(1.0)
		} else {
			rs = rr.Sub(ss).Norm(1.0)
		}
		if !Equal(q.Sub(p).PerpDot(rs), 0.0) {
			return zs
		}

		// positions of l2's endpoints on l1 and vice versa
		tab0 := q.Sub(p).Dot(r) / r.LengthSq()
		tab1 := tab0 + s.Dot(r)/r.LengthSq()
		tba0 := p.Sub(q).Dot(s) / s.LengthSq()
		tba1 := tba0 + r.Dot(s)/s.LengthSq()

		if math.Min(tab0, tab1) < 1.0 && 0.0 < math.Max(tab0, tab1) {
			if 0.0 <= tab0 && tab0 <= 1.0 {
				// l1.a -- l2.a -- l1.b, with l2.b elsewhere
				if 1.0 < tab1 {
					zs = append(zs, IntersectionPair{tab0, 0.0}, IntersectionPair{1.0, tba1})
				} else if tab1 < 0.0 {
					zs = append(zs, IntersectionPair{tab0, 0.0}, IntersectionPair{0.0, tba0})
				} else {
					// l2 inside l1
					zs = append(zs, IntersectionPair{tab0, 0.0}, IntersectionPair{tab1, 1.0})
				}
			} else if 0.0 < tab1 && tab1 <= 1.0 {
				// l1.a -- l2.b -- l1.b, with l2.a elsewhere
				if tab0 < 0.0 {
					zs = append(zs, IntersectionPair{0.0, tba0}, IntersectionPair{tab1, 1.0})
				} else {
					zs = append(zs, IntersectionPair{1.0, tba1}, IntersectionPair{tab1, 1.0})
				}
			} else {
				// l1 inside l2
				zs = append(zs, IntersectionPair{0.0, tba0}, IntersectionPair{1.0, tba1})
			}
		}
		return zs
	}

	k := r.PerpDot(s)
	t := q.Sub(p).PerpDot(s) / k
	u := q.Sub(p).PerpDot(r) / k
	if Interval(t, 0.0, 1.0) && Interval(u, 0.0, 1.0) {
		zs = append(zs, IntersectionPair{clamp01(t), clamp01(u)})
	}
	return zs
}

// intersectionLineCurve solves a line against any curve through the curve's
// polynomial/trigonometric roots along the line, projecting each root back
// onto the line's parameter. When swapped is set, the line is curve 2.
func intersectionLineCurve(zs []IntersectionPair, l, c Curve, swapped bool) []IntersectionPair {
	df := l.p1.Sub(l.p0)
	for _, root := range c.intersectionSeg(l.p0, l.p1) {
		pos := df.Dot(c.At(clamp01(root)).Sub(l.p0)) / df.LengthSq()
		if !Interval(pos, 0.0, 1.0) {
			continue
		}
		if swapped {
			zs = append(zs, IntersectionPair{clamp01(root), clamp01(pos)})
		} else {
			zs = append(zs, IntersectionPair{clamp01(pos), clamp01(root)})
		}
	}
	return zs
}

// intersectionGeneric fans out over all pairs of monotonic sub-intervals of
// both curves, refining each pair by bounding box bisection.
func intersectionGeneric(zs []IntersectionPair, c1, c2 Curve, cp1, cp2 CriticalPoints) ([]IntersectionPair, error) {
	var err error
	for i := 0; i+1 < len(cp1); i++ {
		for j := 0; j+1 < len(cp2); j++ {
			zs, err = intersectionMonotonic(zs, c1, c2, cp1[i], cp1[i+1], cp2[j], cp2[j+1])
			if err != nil {
				return nil, err
			}
		}
	}
	return zs, nil
}

// intersectionMonotonic refines the intersection of two curve pieces known
// to be monotonic in x and y over [t1l,t1r] and [t2l,t2r]. Since the
// pieces are monotonic their bounding boxes equal the boxes of their
// endpoints; the intersection of those boxes is bisected along its longer
// side until it degenerates to a point within tolerance.
func intersectionMonotonic(zs []IntersectionPair, c1, c2 Curve, t1l, t1r, t2l, t2r float64) ([]IntersectionPair, error) {
	bb1 := RectFromPoints(c1.At(t1l), c1.At(t1r))
	bb2 := RectFromPoints(c2.At(t2l), c2.At(t2r))
	bb, ok := bb1.Intersection(bb2)
	if !ok {
		return zs, nil
	}
	return intersectionBisect(zs, c1, c2, t1l, t1r, t2l, t2r, bb)
}

// intersectionBisect halves bb along its longer side and recurses into the
// halves both curve pieces enter. Each half is passed down as the next
// working box, so a side of the box shrinks by half at every level and the
// recursion bottoms out after a bounded number of levels even when the
// parameter ranges stop narrowing.
func intersectionBisect(zs []IntersectionPair, c1, c2 Curve, t1l, t1r, t2l, t2r float64, bb Rect) ([]IntersectionPair, error) {
	if bb.W < Epsilon && bb.H < Epsilon {
		// the box pinpoints a single location; recover the parameter on
		// each curve from its crossings of the box's boundary lines
		r1, ok1, err := enclosingArgs(c1, t1l, t1r, bb)
		if err != nil {
			return nil, err
		}
		r2, ok2, err := enclosingArgs(c2, t2l, t2r, bb)
		if err != nil {
			return nil, err
		}
		if ok1 && ok2 {
			zs = append(zs, IntersectionPair{r1, r2})
		}
		return zs, nil
	}

	// bisect along the longer side
	half1, half2 := bb, bb
	if bb.H < bb.W {
		half1.W = bb.W / 2.0
		half2.W = bb.W / 2.0
		half2.X = bb.X + half1.W
	} else {
		half1.H = bb.H / 2.0
		half2.H = bb.H / 2.0
		half2.Y = bb.Y + half1.H
	}

	var err error
	for _, half := range [2]Rect{half1, half2} {
		u1l, u1r, ok1, err1 := enclosingRange(c1, t1l, t1r, half)
		if err1 != nil {
			return nil, err1
		}
		u2l, u2r, ok2, err2 := enclosingRange(c2, t2l, t2r, half)
		if err2 != nil {
			return nil, err2
		}
		if !ok1 || !ok2 {
			// one of the curves does not enter this half
			continue
		}
		// prune when the restricted pieces' boxes no longer meet
		cb1 := RectFromPoints(c1.At(u1l), c1.At(u1r))
		cb2 := RectFromPoints(c2.At(u2l), c2.At(u2r))
		if _, meet := cb1.Intersection(cb2); !meet {
			continue
		}
		zs, err = intersectionBisect(zs, c1, c2, u1l, u1r, u2l, u2r, half)
		if err != nil {
			return nil, err
		}
	}
	return zs, nil
}

// boundaryArgs gathers the parameter values in [tl,tr] at which the curve
// crosses any of the rect's four boundary lines and whose positions lie
// within the rect, plus tl and tr themselves when their positions do. A
// boundary line may legally cross the piece at most once; several roots of
// the same line within [tl,tr] violate the monotonic regime.
func boundaryArgs(c Curve, tl, tr float64, r Rect) ([]float64, error) {
	var ts []float64
	lines := [4][]float64{
		c.intersectionX(r.X),
		c.intersectionX(r.X + r.W),
		c.intersectionY(r.Y),
		c.intersectionY(r.Y + r.H),
	}
	for _, roots := range lines {
		n := 0
		for _, t := range roots {
			if !Interval(t, tl, tr) || !r.ContainsPoint(c.At(clamp01(t))) {
				continue
			}
			n++
			if 1 < n {
				return nil, fmt.Errorf("%w: %v over [%g,%g] crosses a boundary of %v at %v", ErrAmbiguousRoot, c, tl, tr, r, roots)
			}
			ts = append(ts, t)
		}
	}
	if r.ContainsPoint(c.At(tl)) {
		ts = append(ts, tl)
	}
	if r.ContainsPoint(c.At(tr)) {
		ts = append(ts, tr)
	}
	return ts, nil
}

// enclosingArgs returns the parameter at which the curve passes through the
// degenerate rect, averaging the candidates found on the rect's boundary
// lines. A location on a box corner matches both an x-line and a y-line
// crossing; averaging reconciles those candidates.
func enclosingArgs(c Curve, tl, tr float64, r Rect) (float64, bool, error) {
	ts, err := boundaryArgs(c, tl, tr, r)
	if err != nil {
		return 0.0, false, err
	}
	if len(ts) == 0 {
		return 0.0, false, nil
	}
	sum := 0.0
	for _, t := range ts {
		sum += t
	}
	return clamp01(sum / float64(len(ts))), true, nil
}

// enclosingRange returns the parameter interval over which the curve lies
// within the rect, or ok=false when it does not enter it. The monotonicity
// invariant means the curve's restriction to the rect is delimited by at
// most two distinct entry/exit points. Crossings admitted by the
// containment tolerance can sit well apart from the true entry and exit
// (a steep curve maps a sub-Epsilon offset in one axis to a much larger
// one in the other), so only points on the rect proper count toward the
// non-monotonic verdict; slack-admitted crossings still widen the range.
func enclosingRange(c Curve, tl, tr float64, r Rect) (float64, float64, bool, error) {
	ts, err := boundaryArgs(c, tl, tr, r)
	if err != nil {
		return 0.0, 0.0, false, err
	}
	if len(ts) == 0 {
		return 0.0, 0.0, false, nil
	}

	pts := make([]Point, len(ts))
	for i, t := range ts {
		pts[i] = c.At(clamp01(t))
	}
	if pts = dedupPoints(pts); 2 < len(pts) {
		n := 0
		for _, p := range pts {
			if r.X <= p.X && p.X <= r.X+r.W && r.Y <= p.Y && p.Y <= r.Y+r.H {
				n++
			}
		}
		if 2 < n {
			return 0.0, 0.0, false, fmt.Errorf("%w: %v over [%g,%g] enters %v at %d points", ErrNonMonotonic, c, tl, tr, r, n)
		}
	}

	umin, umax := ts[0], ts[0]
	for _, t := range ts[1:] {
		umin = math.Min(umin, t)
		umax = math.Max(umax, t)
	}
	return umin, umax, true, nil
}

////////////////////////////////////////////////////////////////

func clamp01(t float64) float64 {
	return math.Max(0.0, math.Min(1.0, t))
}

// dedupPoints collapses points that coincide within tolerance. Points are
// merged under the canonical order (by x then y) and again under the
// flipped order (by y then x), catching duplicates that sort apart along
// one axis but not the other. The operation is idempotent.
func dedupPoints(pts []Point) []Point {
	pts = dedupPointsBy(pts, pointLess)
	pts = dedupPointsBy(pts, pointLessFlipped)
	return pts
}

func dedupPointsBy(pts []Point, less func(Point, Point) bool) []Point {
	if len(pts) < 2 {
		return pts
	}
	sort.Slice(pts, func(i, j int) bool {
		return less(pts[i], pts[j])
	})
	j := 0
	for i := 1; i < len(pts); i++ {
		if !pts[i].Equals(pts[j]) {
			j++
			pts[j] = pts[i]
		}
	}
	return pts[:j+1]
}

// dedupPairs removes parameter pairs that locate the same world-space
// intersection, which arise when a point lies exactly on a bisection
// boundary and is reported by both halves.
func dedupPairs(c1, c2 Curve, zs []IntersectionPair) []IntersectionPair {
	out := zs[:0]
	for _, z := range zs {
		dup := false
		for _, o := range out {
			if c1.At(z.T1).Equals(c1.At(o.T1)) && c2.At(z.T2).Equals(c2.At(o.T2)) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, z)
		}
	}
	return out
}
