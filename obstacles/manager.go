package obstacles

import "math"

// Manager is the shared, mutable snapshot of all currently-tracked dynamic
// obstacles for one planning call. It is not safe for concurrent use: the
// search core is single-threaded by contract (see SPEC_FULL.md §5), and
// Project/CollisionExists intentionally mutate obstacle state as the search
// walks forward in time along a candidate edge.
type Manager struct {
	obstacles map[uint32]*Obstacle
	ignore    map[uint32]struct{}
}

// NewManager builds an empty Manager. Pass the MMSIs of any vessels that
// should never be tracked (e.g. the vehicle's own AIS echo).
func NewManager(ignoreMMSI ...uint32) *Manager {
	ignore := make(map[uint32]struct{}, len(ignoreMMSI))
	for _, m := range ignoreMMSI {
		ignore[m] = struct{}{}
	}
	return &Manager{
		obstacles: make(map[uint32]*Obstacle),
		ignore:    ignore,
	}
}

// Update inserts or replaces the tracked obstacle for mmsi. A no-op if mmsi
// is on the ignore list.
func (m *Manager) Update(mmsi uint32, x, y, heading, speed, t, width, length float64) {
	if _, ignored := m.ignore[mmsi]; ignored {
		return
	}
	m.obstacles[mmsi] = &Obstacle{
		MMSI: mmsi, X: x, Y: y, Heading: heading, Speed: speed, Time: t, Width: width, Length: length,
	}
}

// Forget stops tracking mmsi.
func (m *Manager) Forget(mmsi uint32) {
	delete(m.obstacles, mmsi)
}

// Get returns the current obstacle snapshot, keyed by MMSI. The returned map
// aliases internal storage and must be treated as read-only by callers.
func (m *Manager) Get() map[uint32]*Obstacle {
	return m.obstacles
}

// Project advances every tracked obstacle's stored pose to time t. This
// mutates the manager: it is only correct because a single edge walk visits
// strictly increasing simulated time, so successive calls are cumulative
// rather than conflicting (see SPEC_FULL.md §5).
func (m *Manager) Project(t float64) {
	for mmsi, o := range m.obstacles {
		projected := o.project(t)
		m.obstacles[mmsi] = &projected
	}
}

// CollisionExists projects every obstacle to time t and returns the number
// of obstacles whose box contains (x, y) -- a count, not a boolean, so that
// overlapping obstacles stack in the caller's cost accounting. In strict
// mode each box is evaluated with +2 inflation on both extents, applied to a
// local copy so the stored obstacle is never mutated by the inflation.
func (m *Manager) CollisionExists(x, y, t float64, strict bool) int {
	m.Project(t)
	count := 0
	for _, o := range m.obstacles {
		candidate := *o
		if strict {
			candidate = candidate.inflated()
		}
		if candidate.containsPoint(x, y) {
			count++
		}
	}
	return count
}

// DistanceToNearestPossibleCollision returns a conservative lower bound on
// how far (x, y) is from any tracked obstacle's box at time t: the distance to
// the nearest obstacle center minus that obstacle's half-diagonal, floored at
// 0, or math.MaxFloat64 when nothing is tracked. The speed argument is not
// used. It is used as a credit: the caller may skip re-querying until it has
// traveled at least this far.
func (m *Manager) DistanceToNearestPossibleCollision(x, y, speed, t float64) float64 {
	m.Project(t)
	if len(m.obstacles) == 0 {
		return math.MaxFloat64
	}
	nearest := math.MaxFloat64
	for _, o := range m.obstacles {
		centerDist := math.Hypot(x-o.X, y-o.Y)
		margin := centerDist - o.boundingRadius()
		if margin < nearest {
			nearest = margin
		}
	}
	if nearest < 0 {
		nearest = 0
	}
	return nearest
}
