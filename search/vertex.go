// Package search implements the anytime A*-style sampling search: Vertex
// and Edge model the search graph, Sampler proposes candidate states, and
// Search drives expansion until a deadline or exhaustion.
package search

import (
	"github.com/golang/geo/r2"

	"github.com/sternwake/covplan/planstate"
	"github.com/sternwake/covplan/ribbon"
)

// Vertex is one node of the search tree. Unlike the original C++ design
// (parent-owns-child via a strong shared_ptr, child-to-parent via a weak
// one), every Vertex here is an ordinary Go value reachable from its Arena
// by a stable integer ID: there is no ownership cycle to reason about, and
// smoothing rebuilds a subtree by minting new Vertex/Edge pairs rather than
// swapping values in place.
type Vertex struct {
	id int

	state planstate.State
	arena *Arena

	parent     *Vertex
	parentEdge *Edge

	ribbons   *ribbon.Manager // nil when the search is running in point mode
	uncovered []r2.Point      // used only when ribbons is nil

	currentCost float64 // g: accumulated true cost from the root
	approxToGo  float64 // h: heuristic estimate of remaining cost
}

// ID returns this vertex's stable arena index.
func (v *Vertex) ID() int { return v.id }

// State returns the pose this vertex represents.
func (v *Vertex) State() planstate.State { return v.state }

// IsRoot reports whether this vertex has no parent.
func (v *Vertex) IsRoot() bool { return v.parent == nil }

// Parent returns the parent vertex, or nil for the root.
func (v *Vertex) Parent() *Vertex { return v.parent }

// ParentEdge returns the edge connecting Parent() to this vertex, or nil for
// the root.
func (v *Vertex) ParentEdge() *Edge { return v.parentEdge }

// RibbonManager returns this vertex's uncovered-ribbon snapshot (ribbon mode
// only).
func (v *Vertex) RibbonManager() *ribbon.Manager { return v.ribbons }

// Uncovered returns this vertex's uncovered-point snapshot (point mode
// only).
func (v *Vertex) Uncovered() []r2.Point { return v.uncovered }

// CurrentCost returns g, the accumulated true cost from the root.
func (v *Vertex) CurrentCost() float64 { return v.currentCost }

// ApproxToGo returns h, the heuristic estimate of remaining cost to cover
// everything still uncovered from this vertex.
func (v *Vertex) ApproxToGo() float64 { return v.approxToGo }

// F is the A* priority g + h.
func (v *Vertex) F() float64 { return v.currentCost + v.approxToGo }

// Done reports whether this vertex has nothing left to cover.
func (v *Vertex) Done() bool {
	if v.ribbons != nil {
		return v.ribbons.Done()
	}
	return len(v.uncovered) == 0
}

// setCurrentCost recomputes g from the parent edge, mirroring the original's
// Vertex::setCurrentCost called once an edge's true cost is known.
func (v *Vertex) setCurrentCost() {
	if v.IsRoot() {
		v.currentCost = 0
		return
	}
	v.currentCost = v.parent.currentCost + v.parentEdge.TrueCost()
}

// Arena owns every Vertex minted during one search call and hands out
// stable, monotonically increasing IDs. This replaces the shared_ptr/
// weak_ptr graph of the original design: nothing needs reference counting
// because the whole arena is discarded together at the end of a Plan call.
type Arena struct {
	vertices []*Vertex
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// NewRoot mints the search root: no parent, no parent edge.
func (a *Arena) NewRoot(state planstate.State, ribbons *ribbon.Manager, uncovered []r2.Point) *Vertex {
	v := &Vertex{id: len(a.vertices), state: state, arena: a, ribbons: ribbons, uncovered: uncovered}
	a.vertices = append(a.vertices, v)
	return v
}

// newChild mints a vertex reached from parent via edge, with its own
// uncovered-work snapshot.
func (a *Arena) newChild(parent *Vertex, edge *Edge, state planstate.State, ribbons *ribbon.Manager, uncovered []r2.Point) *Vertex {
	v := &Vertex{
		id:         len(a.vertices),
		state:      state,
		arena:      a,
		parent:     parent,
		parentEdge: edge,
		ribbons:    ribbons,
		uncovered:  uncovered,
	}
	a.vertices = append(a.vertices, v)
	return v
}

// Len returns how many vertices the arena has minted.
func (a *Arena) Len() int { return len(a.vertices) }
