package pathrender

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for all geometric comparisons. Coordinates
// closer than Epsilon are considered equal, and bounding boxes with both
// sides below Epsilon are considered points.
const Epsilon = 1e-10

// Equal returns true if a and b are equal with tolerance Epsilon.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Interval is true when t is in [a,b] with tolerance Epsilon on both ends.
func Interval(t, a, b float64) bool {
	return a-Epsilon < t && t < b+Epsilon
}

// angleNorm returns the angle theta in the range [0,2PI).
func angleNorm(theta float64) float64 {
	theta = math.Mod(theta, 2.0*math.Pi)
	if theta < 0.0 {
		theta += 2.0 * math.Pi
	}
	return theta
}

// wrapAngle returns the angle theta in the range [-PI,PI].
func wrapAngle(theta float64) float64 {
	return theta + 2.0*math.Pi*math.Round(-theta/(2.0*math.Pi))
}

////////////////////////////////////////////////////////////////

// Point is a coordinate in 2D space.
type Point struct {
	X, Y float64
}

// PointFromAngle returns the unit vector at angle theta from the x-axis.
func PointFromAngle(theta float64) Point {
	y, x := math.Sincos(theta)
	return Point{x, y}
}

// IsZero returns true if P is exactly zero.
func (p Point) IsZero() bool {
	return p.X == 0.0 && p.Y == 0.0
}

// Equals returns true if P and Q are equal with tolerance Epsilon.
func (p Point) Equals(q Point) bool {
	return Equal(p.X, q.X) && Equal(p.Y, q.Y)
}

// Neg negates x and y.
func (p Point) Neg() Point {
	return Point{-p.X, -p.Y}
}

// Add adds Q to P.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub subtracts Q from P.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul multiplies x and y by f.
func (p Point) Mul(f float64) Point {
	return Point{f * p.X, f * p.Y}
}

// Div divides x and y by f.
func (p Point) Div(f float64) Point {
	return Point{p.X / f, p.Y / f}
}

// Dot returns the dot product between OP and OQ.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// PerpDot returns the perp dot product between OP and OQ, ie. zero if
// aligned and |OP|*|OQ| if perpendicular.
func (p Point) PerpDot(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of OP.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// LengthSq returns the squared length of OP.
func (p Point) LengthSq() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Angle returns the angle between the x-axis and OP.
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Norm normalizes OP to be of certain length.
func (p Point) Norm(length float64) Point {
	d := p.Length()
	if Equal(d, 0.0) {
		return Point{}
	}
	return Point{p.X / d * length, p.Y / d * length}
}

// RotScale rotates and scales OP by OQ, treating both as complex numbers.
func (p Point) RotScale(q Point) Point {
	return Point{p.X*q.X - p.Y*q.Y, p.X*q.Y + p.Y*q.X}
}

// Rot rotates the line OP by theta radians CCW.
func (p Point) Rot(theta float64) Point {
	return p.RotScale(PointFromAngle(theta))
}

// Interpolate returns a point on PQ that is linearly interpolated by t, ie.
// t=0 returns P and t=1 returns Q.
func (p Point) Interpolate(q Point, t float64) Point {
	return Point{(1-t)*p.X + t*q.X, (1-t)*p.Y + t*q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// pointLess is the canonical total order over points, by X and then by Y.
func pointLess(p, q Point) bool {
	if p.X == q.X {
		return p.Y < q.Y
	}
	return p.X < q.X
}

// pointLessFlipped is the flipped canonical order, by Y and then by X.
func pointLessFlipped(p, q Point) bool {
	if p.Y == q.Y {
		return p.X < q.X
	}
	return p.Y < q.Y
}

////////////////////////////////////////////////////////////////

// Rect is an axis-aligned rectangle with a non-negative width and height.
// A rect with both W and H zero is valid and represents a single point.
type Rect struct {
	X, Y, W, H float64
}

// RectFromPoints returns the minimal rect containing both P and Q.
func RectFromPoints(p, q Point) Rect {
	x0, x1 := math.Min(p.X, q.X), math.Max(p.X, q.X)
	y0, y1 := math.Min(p.Y, q.Y), math.Max(p.Y, q.Y)
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// ContainsPoint is true when P lies within the rect with tolerance Epsilon
// on all four sides.
func (r Rect) ContainsPoint(p Point) bool {
	return Interval(p.X, r.X, r.X+r.W) && Interval(p.Y, r.Y, r.Y+r.H)
}

// Intersection returns the overlapping rect of R and Q. Rects that touch at
// an edge or a corner, or whose gap stays below Epsilon, overlap in a
// degenerate (zero width and/or height) rect, which is still a valid
// intersection.
func (r Rect) Intersection(q Rect) (Rect, bool) {
	x0 := math.Max(r.X, q.X)
	x1 := math.Min(r.X+r.W, q.X+q.W)
	y0 := math.Max(r.Y, q.Y)
	y1 := math.Min(r.Y+r.H, q.Y+q.H)
	if x1+Epsilon < x0 || y1+Epsilon < y0 {
		return Rect{}, false
	}
	return Rect{x0, y0, math.Max(0.0, x1-x0), math.Max(0.0, y1-y0)}, true
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g; %g]--[%g; %g]", r.X, r.Y, r.X+r.W, r.Y+r.H)
}

////////////////////////////////////////////////////////////////

// Numerically stable quadratic formula, lowest root is returned first
// see https://math.stackexchange.com/a/2007723
func solveQuadraticFormula(a, b, c float64) (float64, float64) {
	if a == 0.0 {
		if b == 0.0 {
			if c == 0.0 {
				// all terms disappear, all x satisfy the solution
				return 0.0, math.NaN()
			}
			// linear term disappears, no solutions
			return math.NaN(), math.NaN()
		}
		// quadratic term disappears, solve linear equation
		return -c / b, math.NaN()
	}

	if c == 0.0 {
		// no constant term, one solution at zero and one from solving linearly
		if b == 0.0 {
			return 0.0, math.NaN()
		}
		x1, x2 := 0.0, -b/a
		if x2 < x1 {
			x1, x2 = x2, x1
		}
		return x1, x2
	}

	discriminant := b*b - 4.0*a*c
	if discriminant < 0.0 {
		return math.NaN(), math.NaN()
	} else if discriminant == 0.0 {
		return -b / (2.0 * a), math.NaN()
	}

	// Avoid catastrophic cancellation, which occurs when we subtract two
	// nearly equal numbers and causes a large error. This can be the case
	// when 4*a*c is small so that sqrt(discriminant) -> b, and the sign of b
	// and in front of the radical are the same. Instead we calculate x where
	// b and the radical have different signs, and then use this result in
	// the analytical equivalent of the formula, called the Citardauq Formula.
	q := math.Sqrt(discriminant)
	if b < 0.0 {
		// apply sign of b
		q = -q
	}
	x1 := -(b + q) / (2.0 * a)
	x2 := c / (a * x1)
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	return x1, x2
}

// see https://www.geometrictools.com/Documentation/LowDegreePolynomialRoots.pdf
// see https://github.com/thelonious/kld-polynomial/blob/development/lib/Polynomial.js
func solveCubicFormula(a, b, c, d float64) (float64, float64, float64) {
	var x1, x2, x3 float64
	x2, x3 = math.NaN(), math.NaN() // x1 is always set to a number below
	if a == 0.0 {
		x1, x2 = solveQuadraticFormula(b, c, d)
	} else {
		// obtain monic polynomial: x^3 + f.x^2 + g.x + h = 0
		b /= a
		c /= a
		d /= a

		// obtain depressed polynomial: x^3 + c1.x + c0
		bthird := b / 3.0
		c0 := d - bthird*(c-2.0*bthird*bthird)
		c1 := c - b*bthird
		if c0 == 0.0 {
			if c1 < 0.0 {
				tmp := math.Sqrt(-c1)
				x1 = -tmp - bthird
				x2 = tmp - bthird
				x3 = 0.0 - bthird
			} else {
				x1 = 0.0 - bthird
			}
		} else if c1 == 0.0 {
			if 0.0 < c0 {
				x1 = -math.Cbrt(c0) - bthird
			} else {
				x1 = math.Cbrt(-c0) - bthird
			}
		} else {
			delta := -(4.0*c1*c1*c1 + 27.0*c0*c0)
			if Equal(delta, 0.0) {
				delta = 0.0
			}

			if delta < 0.0 {
				betaRe := -c0 / 2.0
				betaIm := math.Sqrt(-delta / 108.0)
				tmp := betaRe - betaIm
				if 0.0 <= tmp {
					x1 = math.Cbrt(tmp)
				} else {
					x1 = -math.Cbrt(-tmp)
				}
				tmp = betaRe + betaIm
				if 0.0 <= tmp {
					x1 += math.Cbrt(tmp)
				} else {
					x1 -= math.Cbrt(-tmp)
				}
				x1 -= bthird
			} else if 0.0 < delta {
				betaRe := -c0 / 2.0
				betaIm := math.Sqrt(delta / 108.0)
				theta := math.Atan2(betaIm, betaRe) / 3.0
				sintheta, costheta := math.Sincos(theta)
				distance := math.Sqrt(-c1 / 3.0)
				tmp := distance * sintheta * math.Sqrt(3.0)
				x1 = 2.0*distance*costheta - bthird
				x2 = -distance*costheta - tmp - bthird
				x3 = -distance*costheta + tmp - bthird
			} else {
				tmp := -3.0 * c0 / (2.0 * c1)
				x1 = tmp - bthird
				x2 = -2.0*tmp - bthird
			}
		}
	}

	// sort
	if x3 < x2 || math.IsNaN(x2) {
		x2, x3 = x3, x2
	}
	if x2 < x1 || math.IsNaN(x1) {
		x1, x2 = x2, x1
	}
	if x3 < x2 || math.IsNaN(x2) {
		x2, x3 = x3, x2
	}
	return x1, x2, x3
}
