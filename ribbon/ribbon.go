// Package ribbon models coverage work as a set of line segments ("ribbons")
// that must be swept by the vehicle, and the bookkeeping needed to mark
// portions of them covered as a candidate path is walked.
package ribbon

import (
	"math"

	"github.com/golang/geo/r2"
)

// CoverageThreshold is how close a sample must pass to a ribbon (or a bare
// point-to-cover) to count as having covered it.
const CoverageThreshold = 1.0

// headingEpsilon is the tolerance used when comparing a candidate sample's
// heading against a ribbon's direction of travel.
const headingEpsilon = 1e-9

// Ribbon is a directed segment to be covered: the vehicle must pass along it
// traveling from Start to End for the pass to count.
type Ribbon struct {
	Start r2.Point
	End   r2.Point
}

// New builds a Ribbon from two endpoints.
func New(x1, y1, x2, y2 float64) *Ribbon {
	return &Ribbon{Start: r2.Point{X: x1, Y: y1}, End: r2.Point{X: x2, Y: y2}}
}

// Heading is the maritime heading (0 = +Y, clockwise-positive) of travel
// from Start to End.
func (r *Ribbon) Heading() float64 {
	dx := r.End.X - r.Start.X
	dy := r.End.Y - r.Start.Y
	h := math.Pi/2 - math.Atan2(dy, dx)
	h = math.Mod(h, 2*math.Pi)
	if h < 0 {
		h += 2 * math.Pi
	}
	return h
}

// Length is the Euclidean length of the ribbon.
func (r *Ribbon) Length() float64 {
	return r.End.Sub(r.Start).Norm()
}

// distanceAndProjection returns the distance from (x, y) to the ribbon
// segment, and the fractional projection t of (x,y) onto the line
// containing the segment (0 at Start, 1 at End, unclamped).
func (r *Ribbon) distanceAndProjection(x, y float64) (dist, t float64) {
	seg := r.End.Sub(r.Start)
	segLenSq := seg.Dot(seg)
	if segLenSq == 0 {
		d := math.Hypot(x-r.Start.X, y-r.Start.Y)
		return d, 0
	}
	toPoint := r2.Point{X: x, Y: y}.Sub(r.Start)
	t = toPoint.Dot(seg) / segLenSq
	clamped := t
	if clamped < 0 {
		clamped = 0
	} else if clamped > 1 {
		clamped = 1
	}
	closest := r.Start.Add(seg.Mul(clamped))
	d := math.Hypot(x-closest.X, y-closest.Y)
	return d, t
}

// onRibbon reports whether (x, y) lies within CoverageThreshold of the
// segment (projecting between its endpoints, inclusive) and heading matches
// the ribbon's direction of travel within tolerance.
func (r *Ribbon) onRibbon(x, y, heading float64) bool {
	dist, t := r.distanceAndProjection(x, y)
	if dist > CoverageThreshold || t < 0 || t > 1 {
		return false
	}
	return math.Abs(headingDelta(heading, r.Heading())) < headingEpsilon
}

func headingDelta(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d < -math.Pi {
		d += 2 * math.Pi
	} else if d > math.Pi {
		d -= 2 * math.Pi
	}
	return d
}

// pointAt returns the point at fractional distance t along Start->End.
func (r *Ribbon) pointAt(t float64) r2.Point {
	return r.Start.Add(r.End.Sub(r.Start).Mul(t))
}
