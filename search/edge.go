package search

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"github.com/sternwake/covplan/dubins"
	"github.com/sternwake/covplan/obstacles"
	"github.com/sternwake/covplan/planstate"
	"github.com/sternwake/covplan/ribbon"
)

// Tunable penalties and step size for the incremental cost walk, carried
// over unchanged from the original planner's constants.
const (
	CollisionPenalty = 600.0
	DubinsIncrement  = 0.1
	TimePenalty      = 1.0
)

var (
	errCostUnset         = errors.New("search: fetching an edge cost that has not been computed")
	errApproxCostInvalid = errors.New("search: approximate cost was not positive for non-co-located endpoints")
)

// cost is an explicit computed/uncomputed tagged value, replacing the
// original's -1-means-unset sentinel on a bare float64. Fetching an unset
// cost is a programmer error and panics, matching the original's
// std::logic_error on the same condition; computing it is a normal,
// possibly-failing operation that returns an error instead.
type cost struct {
	value    float64
	computed bool
}

func (c *cost) set(v float64) {
	c.value = v
	c.computed = true
}

func (c cost) get() float64 {
	if !c.computed {
		panic(errCostUnset)
	}
	return c.value
}

// Edge connects a start Vertex to an end Vertex along a Dubins curve. It
// caches the approximate (heuristic, Dubins-length-only) and true
// (collision- and coverage-aware) costs once computed.
type Edge struct {
	start *Vertex
	end   *Vertex

	useRibbons bool
	infeasible bool

	path *dubins.Path

	approx cost
	true_  cost
}

// NewEdge begins an edge from start. Call SetEnd once the candidate end
// state is known, then ComputeApproxCost and (if the edge survives)
// ComputeTrueCost.
func NewEdge(start *Vertex, useRibbons bool) *Edge {
	return &Edge{start: start, useRibbons: useRibbons}
}

// SetEnd mints the end vertex for this edge via arena, copying the start
// vertex's uncovered-work snapshot (ComputeTrueCost will mutate the copy as
// it walks the curve).
func (e *Edge) SetEnd(state planstate.State) *Vertex {
	var ribbons *ribbon.Manager
	var uncovered []r2.Point
	if e.useRibbons {
		ribbons = e.start.ribbons.Clone()
	} else {
		uncovered = append([]r2.Point(nil), e.start.uncovered...)
	}
	v := e.start.arena.newChild(e.start, e, state, ribbons, uncovered)
	e.end = v
	return v
}

// Start returns the edge's start vertex.
func (e *Edge) Start() *Vertex { return e.start }

// End returns the edge's end vertex.
func (e *Edge) End() *Vertex { return e.end }

// Infeasible reports whether the true-cost walk hit a static obstacle it
// could not route around.
func (e *Edge) Infeasible() bool { return e.infeasible }

// ApproxCost returns the cached approximate cost, panicking if it has not
// been computed yet.
func (e *Edge) ApproxCost() float64 { return e.approx.get() }

// TrueCost returns the cached true cost, panicking if it has not been
// computed yet.
func (e *Edge) TrueCost() float64 { return e.true_.get() }

// ComputeApproxCost solves the Dubins curve between the start and end poses
// and caches its length-based time cost. Co-located endpoints cost 0
// without consulting the Dubins solver, matching the original's explicit
// short-circuit (a Dubins curve cannot connect a pose to itself).
func (e *Edge) ComputeApproxCost(maxSpeed, maxTurningRadius float64) (float64, error) {
	start, end := e.start.state, e.end.state
	if start.IsCoLocated(end) {
		e.approx.set(0)
		return 0, nil
	}
	q0 := [3]float64{start.X, start.Y, start.Yaw()}
	q1 := [3]float64{end.X, end.Y, end.Yaw()}
	path, err := dubins.Shortest(q0, q1, maxTurningRadius)
	if err != nil {
		return 0, fmt.Errorf("search: computing approximate edge cost: %w", err)
	}
	e.path = path
	v := path.Length() / maxSpeed * TimePenalty
	e.approx.set(v)
	return v, nil
}

// ComputeTrueCost walks the Dubins curve in DubinsIncrement steps, pricing
// in static-obstacle collisions, dynamic-obstacle collisions, and ribbon (or
// point) coverage, crediting each against a running "distance until the next
// check is worth making" so that the curve isn't re-queried every step. It
// mirrors the original Edge::computeTrueCost incremental walk.
func (e *Edge) ComputeTrueCost(m planstate.Map, obstacleMgr *obstacles.Manager, maxSpeed, maxTurningRadius float64) (float64, error) {
	if !e.approx.computed {
		if _, err := e.ComputeApproxCost(maxSpeed, maxTurningRadius); err != nil {
			return 0, err
		}
	}
	if e.start.state.IsCoLocated(e.end.state) {
		e.true_.set(0)
		e.end.setCurrentCost()
		return 0, nil
	}
	if e.approx.value <= 0 {
		return 0, errApproxCostInvalid
	}

	length := e.path.Length()
	var lengthSoFar float64
	var collisionPenalty float64
	var staticDistance, dynamicDistance, toCoverDistance float64
	lastYaw := e.start.state.Yaw()

	for lengthSoFar <= length {
		x, y, yaw := e.path.Sample(lengthSoFar)
		t := e.start.state.Time + lengthSoFar/maxSpeed

		if staticDistance > DubinsIncrement {
			staticDistance -= DubinsIncrement
		} else {
			staticDistance = m.UnblockedDistance(x, y)
			if staticDistance <= DubinsIncrement {
				collisionPenalty += CollisionPenalty
				staticDistance = 0
				e.infeasible = true
				break
			}
		}

		if dynamicDistance > DubinsIncrement {
			dynamicDistance -= DubinsIncrement
		} else {
			dynamicDistance = obstacleMgr.DistanceToNearestPossibleCollision(x, y, e.start.state.Speed, t)
			if dynamicDistance <= DubinsIncrement {
				collisionPenalty += float64(obstacleMgr.CollisionExists(x, y, t, false)) * CollisionPenalty
				dynamicDistance = 0
			}
		}

		if toCoverDistance > DubinsIncrement {
			toCoverDistance -= DubinsIncrement
		} else if e.useRibbons {
			// Measure distance before covering: Cover splits ribbons, so the
			// nearest-ribbon distance is cheapest to compute first.
			toCoverDistance = e.end.ribbons.MinDistanceFrom(x, y)
			if lastYaw == yaw {
				e.end.ribbons.Cover(x, y, planstate.HeadingFromYaw(yaw))
			}
		} else {
			toCoverDistance = coverPoints(&e.end.uncovered, x, y)
		}

		lengthSoFar += DubinsIncrement
		lastYaw = yaw
	}

	e.end.state.Time = e.start.state.Time + length/maxSpeed

	v := e.netTime()*TimePenalty + collisionPenalty
	e.true_.set(v)
	e.end.setCurrentCost()
	return v, nil
}

// coverPoints removes from *uncovered any point within ribbon.CoverageThreshold
// of (x, y) and returns the credit distance until the next scan is worth
// making: the distance to the nearest point remaining minus the coverage
// threshold (or +Inf if none remain), matching the original's
// `fmin(toCoverDistance, d - Path::coverageThreshold())` credit.
func coverPoints(uncovered *[]r2.Point, x, y float64) float64 {
	kept := (*uncovered)[:0]
	best := 0.0
	first := true
	for _, p := range *uncovered {
		d := r2.Point{X: x, Y: y}.Sub(p).Norm()
		if d <= ribbon.CoverageThreshold {
			continue
		}
		kept = append(kept, p)
		if first || d < best {
			best = d
			first = false
		}
	}
	*uncovered = kept
	if first {
		return math.Inf(1)
	}
	return best - ribbon.CoverageThreshold
}

// netTime is the elapsed simulated time along this edge.
func (e *Edge) netTime() float64 {
	return e.end.state.Time - e.start.state.Time
}

// GetPlan samples the solved Dubins curve at DubinsIncrement and returns the
// resulting States, in the maritime heading convention, timestamped from the
// start vertex's time.
func (e *Edge) GetPlan(maxSpeed float64) []planstate.State {
	length := e.path.Length()
	var out []planstate.State
	for s := 0.0; s < length; s += DubinsIncrement {
		x, y, yaw := e.path.Sample(s)
		out = append(out, planstate.New(x, y, planstate.HeadingFromYaw(yaw), maxSpeed, s/maxSpeed+e.start.state.Time))
	}
	return out
}
