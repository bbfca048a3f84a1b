// Package planstate holds the vehicle pose/kinematics primitive shared by the
// rest of the coverage planner: State and the Map it is checked against.
package planstate

import (
	"fmt"
	"math"
)

const twoPi = 2 * math.Pi

// State is a timestamped pose and speed. Heading follows the maritime
// convention: 0 is +Y (north), increasing clockwise. Use Yaw for the
// mathematical convention (0 along +X, counterclockwise) where needed by
// geometry primitives such as the Dubins solver.
type State struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
	Speed   float64 `json:"speed"`
	Time    float64 `json:"time"`
}

// New builds a State with its heading normalized into [0, 2*pi).
func New(x, y, heading, speed, t float64) State {
	return State{X: x, Y: y, Heading: normalizeHeading(heading), Speed: speed, Time: t}
}

func normalizeHeading(h float64) float64 {
	h = math.Mod(h, twoPi)
	if h < 0 {
		h += twoPi
	}
	return h
}

// Yaw returns the heading in the mathematical convention (0 along +X,
// counterclockwise-positive), derived from the maritime heading.
func (s State) Yaw() float64 {
	return math.Pi/2 - s.Heading
}

// HeadingFromYaw converts a mathematical-convention yaw (as sampled off a
// Dubins curve) back to the maritime heading convention. The conversion is
// its own inverse.
func HeadingFromYaw(yaw float64) float64 {
	return normalizeHeading(math.Pi/2 - yaw)
}

// Push extrapolates the state forward (or backward, for negative dt) in time
// assuming straight-line motion at the current heading and speed.
func (s State) Push(dt float64) State {
	displacement := dt * s.Speed
	return State{
		X:       s.X + math.Sin(s.Heading)*displacement,
		Y:       s.Y + math.Cos(s.Heading)*displacement,
		Heading: s.Heading,
		Speed:   s.Speed,
		Time:    s.Time + dt,
	}
}

// HeadingTo returns the maritime heading from this state's position to
// (x1, y1), normalized into [0, 2*pi).
func (s State) HeadingTo(x1, y1 float64) float64 {
	dx := x1 - s.X
	dy := y1 - s.Y
	h := math.Pi/2 - math.Atan2(dy, dx)
	return normalizeHeading(h)
}

// HeadingToState returns the heading from this state to other's position.
func (s State) HeadingToState(other State) float64 {
	return s.HeadingTo(other.X, other.Y)
}

// HeadingDifference returns the shortest signed arc, in (-pi, pi], from this
// state's heading to otherHeading.
func (s State) HeadingDifference(otherHeading float64) float64 {
	d := math.Mod(math.Mod(otherHeading-s.Heading, twoPi)+3*math.Pi, twoPi) - math.Pi
	if d == -math.Pi {
		d = math.Pi
	}
	return d
}

// HeadingDifferenceTo is HeadingDifference against another State's heading.
func (s State) HeadingDifferenceTo(other State) float64 {
	return s.HeadingDifference(other.Heading)
}

// DistanceTo returns the Euclidean distance from this state's position to
// (x1, y1).
func (s State) DistanceTo(x1, y1 float64) float64 {
	dx := s.X - x1
	dy := s.Y - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// IsCoLocated reports whether this state and other share the same position
// and heading (speed and time are ignored).
func (s State) IsCoLocated(other State) bool {
	return s.X == other.X && s.Y == other.Y && s.Heading == other.Heading
}

// Interpolate returns the state at desiredTime, assuming linear change of
// position and speed and shortest-arc change of heading between this state
// and other. Both bounds (desiredTime == s.Time or == other.Time) recover the
// respective endpoint state up to floating-point rounding.
func (s State) Interpolate(other State, desiredTime float64) State {
	dt := other.Time - s.Time
	dx := (other.X - s.X) / dt
	dy := (other.Y - s.Y) / dt
	dh := s.HeadingDifferenceTo(other) / dt
	ds := (other.Speed - s.Speed) / dt

	elapsed := desiredTime - s.Time
	result := s
	result.X += dx * elapsed
	result.Y += dy * elapsed
	result.Heading = normalizeHeading(s.Heading + dh*elapsed)
	result.Speed += ds * elapsed
	result.Time = desiredTime
	return result
}

// String renders the wire format consumed by trajectory publishers and
// visualisers: "x y heading_deg speed time".
func (s State) String() string {
	return fmt.Sprintf("%f %f %f %f %f", s.X, s.Y, s.Heading*180/math.Pi, s.Speed, s.Time)
}

// StringRad is String with heading left in radians.
func (s State) StringRad() string {
	return fmt.Sprintf("%f %f %f %f %f", s.X, s.Y, s.Heading, s.Speed, s.Time)
}
