package search

import (
	"testing"

	"go.viam.com/test"

	"github.com/sternwake/covplan/obstacles"
	"github.com/sternwake/covplan/planstate"
	"github.com/sternwake/covplan/ribbon"
)

func TestComputeApproxCostCoLocatedIsZero(t *testing.T) {
	arena := NewArena()
	start := planstate.New(0, 0, 0, 2, 0)
	root := arena.NewRoot(start, ribbon.NewManager(), nil)

	e := NewEdge(root, true)
	e.SetEnd(start)
	cost, err := e.ComputeApproxCost(2, 5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cost, test.ShouldEqual, 0.0)
}

func TestComputeTrueCostAdvancesTimeAndCoversRibbon(t *testing.T) {
	arena := NewArena()
	r := ribbon.New(0, 0, 0, 100)
	start := planstate.New(0, 0, r.Heading(), 2, 0)
	root := arena.NewRoot(start, ribbon.NewManager(r), nil)

	e := NewEdge(root, true)
	end := e.SetEnd(planstate.New(0, 50, r.Heading(), 2, 0))

	_, err := e.ComputeApproxCost(2, 5)
	test.That(t, err, test.ShouldBeNil)
	trueCost, err := e.ComputeTrueCost(planstate.EmptyMap{}, obstacles.NewManager(), 2, 5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, trueCost, test.ShouldBeGreaterThan, 0.0)
	test.That(t, end.State().Time, test.ShouldBeGreaterThan, start.Time)
	test.That(t, end.RibbonManager().Done(), test.ShouldBeFalse)
	test.That(t, len(end.RibbonManager().Ribbons()), test.ShouldEqual, 1)
	// The covered prefix should have been split off: the remaining ribbon's
	// start should have advanced from (0,0) toward (0,100).
	test.That(t, end.RibbonManager().Ribbons()[0].Start.Y, test.ShouldBeGreaterThan, 0.0)
}

func TestComputeTrueCostStaticCollisionIsInfeasible(t *testing.T) {
	arena := NewArena()
	start := planstate.New(0, 0, 0, 2, 0)
	root := arena.NewRoot(start, ribbon.NewManager(ribbon.New(0, 0, 0, 100)), nil)

	e := NewEdge(root, true)
	e.SetEnd(planstate.New(0, 50, 0, 2, 0))
	_, err := e.ComputeApproxCost(2, 5)
	test.That(t, err, test.ShouldBeNil)

	blocked := blockedMap{blockAfterY: 10}
	_, err = e.ComputeTrueCost(blocked, obstacles.NewManager(), 2, 5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, e.Infeasible(), test.ShouldBeTrue)
}

// blockedMap reports zero clearance once y passes blockAfterY, to exercise
// the static-collision branch of ComputeTrueCost.
type blockedMap struct {
	blockAfterY float64
}

func (b blockedMap) UnblockedDistance(x, y float64) float64 {
	if y > b.blockAfterY {
		return 0
	}
	// Deliberately small so the credit from one query never outlasts the
	// next DubinsIncrement step, forcing the walk to re-check often enough
	// to notice the collision promptly.
	return 0.2
}

func TestFetchingUnsetCostPanics(t *testing.T) {
	defer func() {
		r := recover()
		test.That(t, r, test.ShouldNotBeNil)
	}()
	arena := NewArena()
	root := arena.NewRoot(planstate.New(0, 0, 0, 1, 0), ribbon.NewManager(), nil)
	e := NewEdge(root, true)
	e.SetEnd(planstate.New(1, 1, 0, 1, 0))
	_ = e.TrueCost()
}
