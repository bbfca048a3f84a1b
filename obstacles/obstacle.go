// Package obstacles tracks time-varying dynamic obstacles (other vessels)
// reported by an AIS-like feed and answers proximity/collision queries
// against them as the search core walks a candidate Dubins curve.
package obstacles

import "math"

// Obstacle is a single tracked vessel, modeled as an oriented bounding box
// moving at constant heading and speed from a reference time.
type Obstacle struct {
	MMSI    uint32  `json:"mmsi"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
	Speed   float64 `json:"speed"`
	Time    float64 `json:"time"`
	Width   float64 `json:"width"`
	Length  float64 `json:"length"`
}

// project returns a copy of o advanced along its heading at its stored speed
// from o.Time to t. The caller decides whether to keep the projection
// (Manager.Project mutates the stored obstacle; callers that only need a
// query-local projection should use this directly and discard the result).
func (o Obstacle) project(t float64) Obstacle {
	dt := t - o.Time
	displacement := dt * o.Speed
	o.X += math.Sin(o.Heading) * displacement
	o.Y += math.Cos(o.Heading) * displacement
	o.Time = t
	return o
}

// containsPoint reports whether (x, y) falls within o's bounding box, after
// translating and rotating the query point into the obstacle's body frame.
func (o Obstacle) containsPoint(x, y float64) bool {
	translatedX := x - o.X
	translatedY := y - o.Y
	rotatedX := translatedX*math.Cos(o.Heading) - translatedY*math.Sin(o.Heading)
	rotatedY := translatedX*math.Sin(o.Heading) + translatedY*math.Cos(o.Heading)
	return math.Abs(rotatedX) < o.Length/2 && math.Abs(rotatedY) < o.Width/2
}

// boundingRadius is a conservative half-diagonal used to estimate a safe
// stand-off distance without needing the exact box/point geometry.
func (o Obstacle) boundingRadius() float64 {
	return math.Hypot(o.Length, o.Width) / 2
}

// strictInflationMargin is added to both extents of a strict-mode collision
// check, applied to a local copy so repeated queries never compound.
const strictInflationMargin = 2.0

func (o Obstacle) inflated() Obstacle {
	o.Width += strictInflationMargin
	o.Length += strictInflationMargin
	return o
}
