package search

import (
	"container/heap"
	"context"

	"github.com/sternwake/covplan/obstacles"
	"github.com/sternwake/covplan/planstate"
)

// openItem wraps a Vertex for the priority queue, tracking its heap index
// per the container/heap contract.
type openItem struct {
	vertex *Vertex
	index  int
}

type openHeap []*openItem

func (h openHeap) Len() int { return len(h) }

// Less orders by f = g + h ascending; ties favor the deeper node (larger g),
// since a deeper node represents more confirmed progress for the same
// estimated total cost.
func (h openHeap) Less(i, j int) bool {
	fi, fj := h[i].vertex.F(), h[j].vertex.F()
	if fi != fj {
		return fi < fj
	}
	return h[i].vertex.CurrentCost() > h[j].vertex.CurrentCost()
}

func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *openHeap) Push(x any) {
	item := x.(*openItem)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Heuristic estimates the remaining cost to finish covering everything left
// uncovered at v, given the vehicle's speed. It must not overestimate for
// the search's anytime-best guarantee to hold when the heuristic happens to
// be admissible; sampling-driven search here treats it as a best-effort
// guide rather than a strict lower bound.
type Heuristic func(v *Vertex, maxSpeed float64) float64

// DefaultHeuristic estimates remaining cost as the straight-line time to
// reach the single nearest remaining ribbon or point, ignoring the cost of
// covering it and everything after it. It is intentionally optimistic.
func DefaultHeuristic(v *Vertex, maxSpeed float64) float64 {
	state := v.State()
	if ribbons := v.RibbonManager(); ribbons != nil {
		d := ribbons.MinDistanceFrom(state.X, state.Y)
		return d / maxSpeed * TimePenalty
	}
	best := 0.0
	first := true
	for _, p := range v.Uncovered() {
		d := state.DistanceTo(p.X, p.Y)
		if first || d < best {
			best, first = d, false
		}
	}
	if first {
		return 0
	}
	return best / maxSpeed * TimePenalty
}

// Search drives the anytime A*-style expansion: sample candidate states
// from the frontier, connect them with Dubins-curve edges, and keep the
// cheapest vertex found so far that has nothing left to cover.
type Search struct {
	Sampler          Sampler
	Heuristic        Heuristic
	Map              planstate.Map
	Obstacles        *obstacles.Manager
	MaxSpeed         float64
	MaxTurningRadius float64
	SamplesPerVertex int
	UseRibbons       bool
}

// NewSearch builds a Search with InitialSamples samples per expansion and
// DefaultHeuristic.
func NewSearch(sampler Sampler, m planstate.Map, obstacleMgr *obstacles.Manager, maxSpeed, maxTurningRadius float64, useRibbons bool) *Search {
	return &Search{
		Sampler:          sampler,
		Heuristic:        DefaultHeuristic,
		Map:              m,
		Obstacles:        obstacleMgr,
		MaxSpeed:         maxSpeed,
		MaxTurningRadius: maxTurningRadius,
		SamplesPerVertex: InitialSamples,
		UseRibbons:       useRibbons,
	}
}

// Run expands the search tree rooted at root until ctx is done or the open
// set is exhausted, returning the cheapest vertex found with nothing left
// to cover. Expansion continues past the first such vertex found (this is
// the "anytime" behavior): later, cheaper covering vertices replace it.
//
// A plan is always returnable: alongside the cheapest covering vertex seen
// (bestDone), Run tracks the lowest-f vertex ever popped (bestPartial,
// seeded with root itself). If the deadline lands before anything finishes
// covering, or the open set empties out first, Run falls back to bestDone if
// one was ever found, and otherwise to bestPartial rather than failing.
// bestPartial starts as root, so it is never nil, even when the deadline has
// already passed before root is expanded.
func (s *Search) Run(ctx context.Context, root *Vertex) (*Vertex, error) {
	root.approxToGo = s.Heuristic(root, s.MaxSpeed)

	open := &openHeap{}
	heap.Init(open)
	heap.Push(open, &openItem{vertex: root})

	var bestDone *Vertex
	bestPartial := root

	for open.Len() > 0 {
		select {
		case <-ctx.Done():
			if bestDone != nil {
				return bestDone, nil
			}
			return bestPartial, nil
		default:
		}

		item := heap.Pop(open).(*openItem)
		v := item.vertex

		if v.F() < bestPartial.F() {
			bestPartial = v
		}

		if v.Done() {
			if bestDone == nil || v.CurrentCost() < bestDone.CurrentCost() {
				bestDone = v
			}
			continue
		}

		candidates := s.Sampler.Sample(v, s.SamplesPerVertex, s.MaxSpeed, s.MaxTurningRadius)
		for _, state := range candidates {
			edge := NewEdge(v, s.UseRibbons)
			child := edge.SetEnd(state)
			if _, err := edge.ComputeApproxCost(s.MaxSpeed, s.MaxTurningRadius); err != nil {
				continue
			}
			if _, err := edge.ComputeTrueCost(s.Map, s.Obstacles, s.MaxSpeed, s.MaxTurningRadius); err != nil {
				continue
			}
			child.approxToGo = s.Heuristic(child, s.MaxSpeed)
			heap.Push(open, &openItem{vertex: child})
		}
	}

	if bestDone != nil {
		return bestDone, nil
	}
	return bestPartial, nil
}

// ancestry returns the chain of vertices from root to v, inclusive.
func ancestry(v *Vertex) []*Vertex {
	var chain []*Vertex
	for cur := v; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Smooth attempts to shortcut the path from root to goal by, for each
// interior vertex, trying to connect its grandparent directly to its state,
// skipping its parent. A shortcut is kept only if it is both cheaper and no
// worse a position to finish covering from (mirroring the original
// Edge::smooth's two conditions). Unlike the original's in-place value swap
// (which the teacher's own comments flag as unsound: a smoothed vertex has
// to take over an existing shared_ptr/weak_ptr identity), every accepted
// shortcut here rebuilds the remainder of the chain as fresh vertices, so
// there is never an aliasing hazard to reason about.
func (s *Search) Smooth(ctx context.Context, goal *Vertex) *Vertex {
	chain := ancestry(goal)
	for i := len(chain) - 1; i >= 2; i-- {
		if ctx.Err() != nil {
			break
		}
		end := chain[i]
		parent := chain[i-1]
		grandparent := chain[i-2]

		candidate := NewEdge(grandparent, s.UseRibbons)
		smoothedEnd := candidate.SetEnd(end.State())
		if _, err := candidate.ComputeApproxCost(s.MaxSpeed, s.MaxTurningRadius); err != nil {
			continue
		}
		smoothedCost, err := candidate.ComputeTrueCost(s.Map, s.Obstacles, s.MaxSpeed, s.MaxTurningRadius)
		if err != nil {
			continue
		}
		smoothedEnd.approxToGo = s.Heuristic(smoothedEnd, s.MaxSpeed)

		parentCost := parent.parentEdge.TrueCost()
		thisCost := end.parentEdge.TrueCost()
		if smoothedCost < parentCost+thisCost && smoothedEnd.approxToGo <= end.approxToGo {
			chain = s.rebuildFrom(chain, i, smoothedEnd)
		}
	}
	return chain[len(chain)-1]
}

// rebuildFrom replaces chain[at] with replacement and reconnects every
// vertex after it with freshly computed edges carrying the same states
// forward, since the old vertices' parent edges pointed at the vertex being
// removed.
func (s *Search) rebuildFrom(chain []*Vertex, at int, replacement *Vertex) []*Vertex {
	rebuilt := make([]*Vertex, len(chain))
	copy(rebuilt[:at], chain[:at])
	rebuilt[at] = replacement

	cur := replacement
	for j := at + 1; j < len(chain); j++ {
		edge := NewEdge(cur, s.UseRibbons)
		next := edge.SetEnd(chain[j].State())
		if _, err := edge.ComputeApproxCost(s.MaxSpeed, s.MaxTurningRadius); err != nil {
			return chain // rebuild failed; keep the original chain unchanged
		}
		if _, err := edge.ComputeTrueCost(s.Map, s.Obstacles, s.MaxSpeed, s.MaxTurningRadius); err != nil {
			return chain
		}
		next.approxToGo = s.Heuristic(next, s.MaxSpeed)
		rebuilt[j] = next
		cur = next
	}
	return rebuilt
}
