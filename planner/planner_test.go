package planner

import (
	"context"
	"testing"
	"time"

	"go.viam.com/test"

	"github.com/sternwake/covplan/obstacles"
	"github.com/sternwake/covplan/planstate"
	"github.com/sternwake/covplan/ribbon"
)

func TestPlanReturnsTimedPlanAndRecordsPrevious(t *testing.T) {
	cfg := DefaultConfig(2, 3)
	cfg.SamplesPerVertex = 20
	p := New(planstate.EmptyMap{}, obstacles.NewManager(), cfg)

	start := planstate.New(0, 0, 0, 2, 0)
	ribbons := []*ribbon.Ribbon{ribbon.New(0, 0, 0, 10)}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	plan, err := p.Plan(ctx, start, ribbons, 2.0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(plan.States), test.ShouldBeGreaterThan, 0)
	test.That(t, p.Previous(), test.ShouldEqual, plan)

	last := plan.States[len(plan.States)-1]
	test.That(t, last.Time, test.ShouldBeGreaterThan, start.Time)
}

func TestPlanOnBlockedMapReturnsBestEffortPlan(t *testing.T) {
	cfg := DefaultConfig(2, 3)
	cfg.SamplesPerVertex = 10
	om := obstacles.NewManager()
	p := New(blockedMap{}, om, cfg)

	start := planstate.New(0, 0, 0, 2, 0)
	ribbons := []*ribbon.Ribbon{ribbon.New(0, 0, 0, 3)}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	// A fully blocked map can still return a best-effort plan (accrued
	// collision penalty rather than a search error) as long as the search
	// had time to pop at least one vertex.
	plan, err := p.Plan(ctx, start, ribbons, 0.4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(plan.States), test.ShouldBeGreaterThan, 0)
}

// blockedMap reports no clearance anywhere, forcing every edge infeasible.
type blockedMap struct{}

func (blockedMap) UnblockedDistance(x, y float64) float64 { return 0 }
