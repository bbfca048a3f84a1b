package search

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"go.viam.com/test"

	"github.com/sternwake/covplan/obstacles"
	"github.com/sternwake/covplan/planstate"
	"github.com/sternwake/covplan/ribbon"
)

func TestSearchRunCoversShortRibbon(t *testing.T) {
	arena := NewArena()
	r := ribbon.New(0, 0, 0, 5)
	start := planstate.New(0, 0, r.Heading(), 2, 0)
	root := arena.NewRoot(start, ribbon.NewManager(r), nil)

	sampler := NewRibbonBiasedSampler(rand.New(rand.NewSource(1)), 8)
	s := NewSearch(sampler, planstate.EmptyMap{}, obstacles.NewManager(), 2, 3, true)
	s.SamplesPerVertex = 20

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	goal, err := s.Run(ctx, root)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, goal.Done(), test.ShouldBeTrue)
	test.That(t, goal.CurrentCost(), test.ShouldBeGreaterThan, 0.0)
}

func TestSearchRunRespectsDeadlineWithNoCoverage(t *testing.T) {
	arena := NewArena()
	// A near-instant deadline should still hand back a returnable plan: the
	// root itself, since nothing had time to expand past it.
	r := ribbon.New(0, 0, 0, 5)
	start := planstate.New(0, 0, r.Heading(), 2, 0)
	root := arena.NewRoot(start, ribbon.NewManager(r), nil)

	sampler := NewUniformSampler(rand.New(rand.NewSource(2)), 8)
	s := NewSearch(sampler, planstate.EmptyMap{}, obstacles.NewManager(), 2, 3, true)
	s.SamplesPerVertex = 1

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	goal, err := s.Run(ctx, root)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, goal, test.ShouldNotBeNil)
	test.That(t, goal.Done(), test.ShouldBeFalse)
}

func TestSmoothNeverWorsensCost(t *testing.T) {
	arena := NewArena()
	r := ribbon.New(0, 0, 0, 20)
	start := planstate.New(0, 0, r.Heading(), 2, 0)
	root := arena.NewRoot(start, ribbon.NewManager(r), nil)

	sampler := NewRibbonBiasedSampler(rand.New(rand.NewSource(3)), 8)
	s := NewSearch(sampler, planstate.EmptyMap{}, obstacles.NewManager(), 2, 3, true)
	s.SamplesPerVertex = 20

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	goal, err := s.Run(ctx, root)
	test.That(t, err, test.ShouldBeNil)

	before := goal.CurrentCost()
	smoothed := s.Smooth(ctx, goal)
	test.That(t, smoothed.CurrentCost(), test.ShouldBeLessThanOrEqualTo, before+1e-9)
}
