// Package planner is the facade: given a start state, the work left to
// cover, the dynamic obstacle picture, and a time budget, it drives the
// search core to a Plan.
package planner

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sternwake/covplan/logging"
	"github.com/sternwake/covplan/obstacles"
	"github.com/sternwake/covplan/planstate"
	"github.com/sternwake/covplan/ribbon"
	"github.com/sternwake/covplan/search"
)

// Config holds the vehicle kinematics and search tuning the planner needs
// for every call.
type Config struct {
	MaxSpeed         float64
	MaxTurningRadius float64
	SamplesPerVertex int
	RandomSeed       int64
}

// DefaultConfig returns a Config with the search core's default sample
// count and a fixed (reproducible) random seed.
func DefaultConfig(maxSpeed, maxTurningRadius float64) Config {
	return Config{
		MaxSpeed:         maxSpeed,
		MaxTurningRadius: maxTurningRadius,
		SamplesPerVertex: search.InitialSamples,
		RandomSeed:       1,
	}
}

// Plan is an ordered sequence of states the vehicle should follow.
type Plan struct {
	States []planstate.State
}

// Planner runs the anytime search against a shared obstacle picture and a
// static map, producing Plans on demand.
type Planner struct {
	Map       planstate.Map
	Obstacles *obstacles.Manager
	Config    Config
	Logger    logging.Logger

	// previous is the last Plan produced, exposed through Previous. Plan
	// does not read it: each call searches from its given start state with
	// no warm start from the previous plan.
	previous *Plan
}

// New builds a Planner over the given static map and dynamic obstacle
// manager (which the caller continues to Update as new reports arrive).
func New(m planstate.Map, obstacleMgr *obstacles.Manager, cfg Config) *Planner {
	return &Planner{Map: m, Obstacles: obstacleMgr, Config: cfg, Logger: logging.NewLogger("planner")}
}

// Plan searches for a covering path starting at start, sweeping ribbons,
// within the given time budget. ctx's deadline (if any is tighter than
// timeout) is respected as well; pass context.Background() with a timeout
// if the caller has no outer deadline of its own.
func (p *Planner) Plan(ctx context.Context, start planstate.State, ribbons []*ribbon.Ribbon, timeout float64) (*Plan, error) {
	planCtx, cancel := contextWithBudget(ctx, timeout)
	defer cancel()

	arena := search.NewArena()
	mgr := ribbon.NewManager(ribbons...)
	root := arena.NewRoot(start, mgr, nil)

	sampler := search.NewRibbonBiasedSampler(rand.New(rand.NewSource(p.Config.RandomSeed)), searchRange(ribbons, p.Config.MaxTurningRadius))
	s := search.NewSearch(sampler, p.Map, p.Obstacles, p.Config.MaxSpeed, p.Config.MaxTurningRadius, true)
	if p.Config.SamplesPerVertex > 0 {
		s.SamplesPerVertex = p.Config.SamplesPerVertex
	}

	goal, err := s.Run(planCtx, root)
	if err != nil {
		return nil, fmt.Errorf("planner: search failed: %w", err)
	}
	if !goal.Done() {
		p.Logger.CWarnf(ctx, "search budget exhausted before finding a covering plan; returning best partial")
	}
	if goal.ParentEdge() != nil && goal.ParentEdge().Infeasible() {
		p.Logger.CWarnf(ctx, "best plan found still crosses a static obstacle")
	}
	goal = s.Smooth(planCtx, goal)

	plan := &Plan{States: tracePlan(goal, p.Config.MaxSpeed)}
	p.Logger.CDebugf(ctx, "produced plan with %d states, final cost %f", len(plan.States), goal.CurrentCost())
	p.previous = plan
	return plan, nil
}

// Previous returns the last Plan produced by this Planner, or nil if none
// has been produced yet.
func (p *Planner) Previous() *Plan {
	return p.previous
}

// tracePlan walks the vertex chain from root to goal, concatenating each
// edge's sampled Dubins curve in order.
func tracePlan(goal *search.Vertex, maxSpeed float64) []planstate.State {
	var chain []*search.Vertex
	for v := goal; v != nil; v = v.Parent() {
		chain = append(chain, v)
	}
	// chain is goal -> ... -> root; reverse it to walk root -> goal.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	var out []planstate.State
	for _, v := range chain[1:] {
		out = append(out, v.ParentEdge().GetPlan(maxSpeed)...)
	}
	out = append(out, goal.State())
	return out
}

// searchRange picks a sampling range large enough to span the ribbons being
// covered, with a floor based on the turning radius so a lone short ribbon
// still gets a reasonable exploration neighborhood.
func searchRange(ribbons []*ribbon.Ribbon, maxTurningRadius float64) float64 {
	maxLen := maxTurningRadius * 4
	for _, r := range ribbons {
		if l := r.Length(); l > maxLen {
			maxLen = l
		}
	}
	return maxLen
}

func contextWithBudget(ctx context.Context, timeout float64) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(timeout*float64(time.Second)))
}
