package planstate

import "math"

// Map is the static-obstacle distance field the search core queries. A real
// implementation (occupancy grid, signed distance field, etc) lives outside
// this module; the search core only ever needs this one query.
type Map interface {
	// UnblockedDistance returns the distance, in meters, from (x, y) to the
	// nearest static obstacle. Implementations may return a conservative
	// lower bound rather than an exact distance.
	UnblockedDistance(x, y float64) float64
}

// EmptyMap is a Map with no obstacles anywhere, useful for tests and for
// vehicles with no loaded chart.
type EmptyMap struct{}

// UnblockedDistance always reports clear water.
func (EmptyMap) UnblockedDistance(x, y float64) float64 {
	return math.MaxFloat64
}
