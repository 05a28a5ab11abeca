package pathrender

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

// chained checks that the pieces join end to start and span from a to b.
func chained(t *testing.T, cs []Curve, a, b Point) {
	t.Helper()
	test.That(t, 0 < len(cs))
	pointNear(t, cs[0].Start(), a, 1e-9)
	pointNear(t, cs[len(cs)-1].End(), b, 1e-9)
	for i := 1; i < len(cs); i++ {
		pointNear(t, cs[i].Start(), cs[i-1].End(), 1e-9)
	}
}

func TestSimplifyDegenerate(t *testing.T) {
	p := Point{1.0, 2.0}
	out := Simplify([]Curve{
		Line(p, p),
		Quad(p, p, p),
		Cube(p, p, p, p),
		Arc(p, Point{0.0, 0.0}, 0.0, 0.0, math.Pi),
		Arc(p, Point{1.0, 1.0}, 0.0, 0.0, 0.0),
	})
	test.T(t, len(out), 0)
}

func TestSimplifyLine(t *testing.T) {
	l := Line(Point{0.0, 0.0}, Point{1.0, 2.0})
	out := Simplify([]Curve{l})
	test.T(t, len(out), 1)
	test.T(t, out[0], l)
}

func TestSimplifyQuad(t *testing.T) {
	// a proper quadratic passes through untouched
	arch := Quad(Point{0.0, 0.0}, Point{5.0, 10.0}, Point{10.0, 0.0})
	out := Simplify([]Curve{arch})
	test.T(t, len(out), 1)
	test.T(t, out[0].Kind(), QuadKind)

	// coincident control point
	out = Simplify([]Curve{Quad(Point{0.0, 0.0}, Point{0.0, 0.0}, Point{1.0, 2.0})})
	test.T(t, len(out), 1)
	test.T(t, out[0].Kind(), LineKind)
	chained(t, out, Point{0.0, 0.0}, Point{1.0, 2.0})

	// collinear control points, monotonic
	out = Simplify([]Curve{Quad(Point{0.0, 0.0}, Point{1.0, 1.0}, Point{2.0, 2.0})})
	test.T(t, len(out), 1)
	test.T(t, out[0].Kind(), LineKind)
	chained(t, out, Point{0.0, 0.0}, Point{2.0, 2.0})

	// collinear control points folding back on themselves
	out = Simplify([]Curve{Quad(Point{0.0, 0.0}, Point{2.0, 2.0}, Point{1.0, 1.0})})
	test.T(t, len(out), 2)
	test.T(t, out[0].Kind(), LineKind)
	test.T(t, out[1].Kind(), LineKind)
	chained(t, out, Point{0.0, 0.0}, Point{1.0, 1.0})
	pointNear(t, out[0].End(), Point{4.0 / 3.0, 4.0 / 3.0}, 1e-9)
}

func TestSimplifyCube(t *testing.T) {
	// both control points on their endpoints
	out := Simplify([]Curve{Cube(Point{0.0, 0.0}, Point{0.0, 0.0}, Point{3.0, 1.0}, Point{3.0, 1.0})})
	test.T(t, len(out), 1)
	test.T(t, out[0].Kind(), LineKind)
	chained(t, out, Point{0.0, 0.0}, Point{3.0, 1.0})

	// all control points collinear with two direction reversals
	out = Simplify([]Curve{Cube(Point{0.0, 0.0}, Point{2.0, 2.0}, Point{-1.0, -1.0}, Point{1.0, 1.0})})
	test.T(t, len(out), 3)
	for _, c := range out {
		test.T(t, c.Kind(), LineKind)
	}
	chained(t, out, Point{0.0, 0.0}, Point{1.0, 1.0})

	// a degree-elevated quadratic demotes back to its source
	out = Simplify([]Curve{Cube(Point{0.0, 0.0}, Point{10.0 / 3.0, 20.0 / 3.0}, Point{20.0 / 3.0, 20.0 / 3.0}, Point{10.0, 0.0})})
	test.T(t, len(out), 1)
	test.T(t, out[0].Kind(), QuadKind)
	pointNear(t, out[0].At(0.5), Point{5.0, 5.0}, 1e-9)
	chained(t, out, Point{0.0, 0.0}, Point{10.0, 0.0})
}

func TestSimplifyCubeLoop(t *testing.T) {
	// a self-intersecting cubic is split so that each piece is simple
	loop := Cube(Point{0.0, 0.0}, Point{3.0, 3.0}, Point{-2.0, 3.0}, Point{1.0, 0.0})
	out := Simplify([]Curve{loop})
	test.That(t, 2 <= len(out), "expected a split, got", out)
	for _, c := range out {
		test.T(t, c.Kind(), CubeKind)
	}
	chained(t, out, Point{0.0, 0.0}, Point{1.0, 0.0})
}

func TestSimplifyCubeInflection(t *testing.T) {
	// an s-shaped cubic splits at its inflection point
	wiggle := Cube(Point{0.0, 0.0}, Point{2.0, 4.0}, Point{4.0, -4.0}, Point{6.0, 0.0})
	out := Simplify([]Curve{wiggle})
	test.That(t, 2 <= len(out), "expected a split, got", out)
	chained(t, out, Point{0.0, 0.0}, Point{6.0, 0.0})
	pointNear(t, out[0].End(), Point{3.0, 0.0}, 1e-9)
}

func TestSimplifyArc(t *testing.T) {
	// a proper arc passes through untouched
	dome := Arc(Point{0.0, 0.0}, Point{2.0, 2.0}, 0.0, 0.0, math.Pi)
	out := Simplify([]Curve{dome})
	test.T(t, len(out), 1)
	test.T(t, out[0].Kind(), ArcKind)

	// one radius vanished, the arc folds into lines at the quarter turns
	flat := Arc(Point{0.0, 0.0}, Point{0.0, 1.0}, 0.0, 0.0, math.Pi)
	out = Simplify([]Curve{flat})
	test.T(t, len(out), 2)
	for _, c := range out {
		test.T(t, c.Kind(), LineKind)
	}
	pointNear(t, out[0].Start(), Point{0.0, 0.0}, 1e-9)
	pointNear(t, out[0].End(), Point{0.0, 1.0}, 1e-9)
	pointNear(t, out[1].End(), Point{0.0, 0.0}, 1e-9)
}

func TestSimplifyMixed(t *testing.T) {
	p := Point{1.0, 2.0}
	out := Simplify([]Curve{
		Line(Point{0.0, 0.0}, Point{1.0, 0.0}),
		Quad(p, p, p),
		Quad(Point{1.0, 0.0}, Point{2.0, 0.0}, Point{3.0, 0.0}),
		Arc(Point{3.0, 1.0}, Point{1.0, 1.0}, 0.0, -0.5*math.Pi, 0.5*math.Pi),
	})
	test.T(t, len(out), 3)
	test.T(t, out[0].Kind(), LineKind)
	test.T(t, out[1].Kind(), LineKind)
	test.T(t, out[2].Kind(), ArcKind)
	chained(t, out, Point{0.0, 0.0}, Point{4.0, 1.0})
}
