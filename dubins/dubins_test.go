package dubins

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestFindCenter(t *testing.T) {
	cx, cy := findCenter(0, 0, 0, 1, true)
	test.That(t, cx, test.ShouldAlmostEqual, 0.0)
	test.That(t, cy, test.ShouldAlmostEqual, 1.0)

	cx, cy = findCenter(0, 0, 0, 1, false)
	test.That(t, cx, test.ShouldAlmostEqual, 0.0)
	test.That(t, cy, test.ShouldAlmostEqual, -1.0)

	cx, cy = findCenter(4, 4, math.Pi, 1, true)
	test.That(t, cx, test.ShouldAlmostEqual, 4.0)
	test.That(t, cy, test.ShouldAlmostEqual, 3.0)
}

func TestShortestStraightLine(t *testing.T) {
	start := [3]float64{0, 0, 0}
	end := [3]float64{10, 0, 0}
	p, err := Shortest(start, end, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Length(), test.ShouldAlmostEqual, 10.0)

	x, y, yaw := p.Sample(p.Length())
	test.That(t, x, test.ShouldAlmostEqual, 10.0)
	test.That(t, y, test.ShouldAlmostEqual, 0.0)
	test.That(t, yaw, test.ShouldAlmostEqual, 0.0)
}

func TestShortestKnownCase(t *testing.T) {
	// A well-known benchmark figure for this start/end/radius combination:
	// the shortest curve has length ~7.61372, decomposed LSL (0.4636, 4.4721,
	// 2.6779) as the three segment parameters.
	start := [3]float64{0, 0, 0}
	end := [3]float64{4, 4, math.Pi}
	p, err := Shortest(start, end, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Length(), test.ShouldAlmostEqual, 7.61372, 1e-4)
}

func TestSampleReachesEndpoint(t *testing.T) {
	start := [3]float64{2, -3, 1.2}
	end := [3]float64{-4, 6, -0.4}
	p, err := Shortest(start, end, 2.5)
	test.That(t, err, test.ShouldBeNil)

	x, y, _ := p.Sample(p.Length())
	test.That(t, x, test.ShouldAlmostEqual, end[0], 1e-6)
	test.That(t, y, test.ShouldAlmostEqual, end[1], 1e-6)
}

func TestSampleStartsAtOrigin(t *testing.T) {
	start := [3]float64{1, 1, 0.5}
	end := [3]float64{8, -2, 2.1}
	p, err := Shortest(start, end, 1)
	test.That(t, err, test.ShouldBeNil)

	x, y, yaw := p.Sample(0)
	test.That(t, x, test.ShouldAlmostEqual, start[0])
	test.That(t, y, test.ShouldAlmostEqual, start[1])
	test.That(t, yaw, test.ShouldAlmostEqual, start[2])
}

func TestShortestDoubledRadiusLengthBound(t *testing.T) {
	start := [3]float64{0, 0, 0}
	end := [3]float64{5, 5, math.Pi / 2}
	p1, err := Shortest(start, end, 1)
	test.That(t, err, test.ShouldBeNil)
	p2, err := Shortest(start, end, 2)
	test.That(t, err, test.ShouldBeNil)

	// Doubling the turning radius produces a curve between the same two poses
	// at most twice as long as the original, for this geometry.
	test.That(t, p2.Length(), test.ShouldBeLessThanOrEqualTo, p1.Length()*2+1e-9)
}

func TestShortestDegenerate(t *testing.T) {
	pose := [3]float64{3, 3, 1}
	_, err := Shortest(pose, pose, 1)
	test.That(t, err, test.ShouldEqual, ErrDegenerate)
}
