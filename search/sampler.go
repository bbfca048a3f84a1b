package search

import (
	"math"
	"math/rand"

	"github.com/sternwake/covplan/planstate"
	"github.com/sternwake/covplan/ribbon"
)

// InitialSamples is the default number of candidate states the search draws
// per expansion, carried over from the original planner's c_InitialSamples.
const InitialSamples = 100

// RibbonBias is the fraction of samples drawn biased toward an uncovered
// ribbon's direction of travel rather than uniformly at random, for the
// default Sampler.
const RibbonBias = 0.7

// Sampler proposes candidate states to expand a Vertex toward. Swappable so
// the search core isn't committed to one sampling strategy.
type Sampler interface {
	// Sample draws n candidate states reachable from v, given the vehicle's
	// speed and turning radius.
	Sample(v *Vertex, n int, maxSpeed, maxTurningRadius float64) []planstate.State
}

// RibbonBiasedSampler draws most samples near an uncovered ribbon's line
// (biasing search toward finishing coverage) and the rest uniformly at
// random within maxRange of the vertex, for exploration and obstacle
// avoidance.
type RibbonBiasedSampler struct {
	Rand     *rand.Rand
	MaxRange float64
	Bias     float64 // fraction biased toward a ribbon; 0 degenerates to uniform
}

// NewRibbonBiasedSampler returns a sampler seeded from seed, using
// RibbonBias and maxRange as its defaults.
func NewRibbonBiasedSampler(seed *rand.Rand, maxRange float64) *RibbonBiasedSampler {
	return &RibbonBiasedSampler{Rand: seed, MaxRange: maxRange, Bias: RibbonBias}
}

// Sample implements Sampler.
func (s *RibbonBiasedSampler) Sample(v *Vertex, n int, maxSpeed, maxTurningRadius float64) []planstate.State {
	out := make([]planstate.State, 0, n)
	ribbons := v.RibbonManager()
	for i := 0; i < n; i++ {
		if ribbons != nil && !ribbons.Done() && s.Rand.Float64() < s.Bias {
			out = append(out, s.sampleNearRibbon(v, ribbons, maxSpeed))
		} else {
			out = append(out, s.sampleUniform(v, maxSpeed))
		}
	}
	return out
}

func (s *RibbonBiasedSampler) sampleNearRibbon(v *Vertex, ribbons *ribbon.Manager, maxSpeed float64) planstate.State {
	rs := ribbons.Ribbons()
	r := rs[s.Rand.Intn(len(rs))]
	t := s.Rand.Float64()
	p := r.Start.Add(r.End.Sub(r.Start).Mul(t))
	heading := r.Heading()
	return planstate.New(p.X, p.Y, heading, maxSpeed, v.State().Time)
}

func (s *RibbonBiasedSampler) sampleUniform(v *Vertex, maxSpeed float64) planstate.State {
	state := v.State()
	angle := s.Rand.Float64() * 2 * math.Pi
	dist := s.Rand.Float64() * s.MaxRange
	x := state.X + dist*math.Cos(angle)
	y := state.Y + dist*math.Sin(angle)
	heading := s.Rand.Float64() * 2 * math.Pi
	return planstate.New(x, y, heading, maxSpeed, state.Time)
}

// UniformSampler draws candidate states uniformly within MaxRange of the
// vertex, ignoring ribbon geometry entirely. Useful as a baseline to compare
// the ribbon-biased strategy against.
type UniformSampler struct {
	Rand     *rand.Rand
	MaxRange float64
}

// NewUniformSampler returns a sampler seeded from seed.
func NewUniformSampler(seed *rand.Rand, maxRange float64) *UniformSampler {
	return &UniformSampler{Rand: seed, MaxRange: maxRange}
}

// Sample implements Sampler.
func (s *UniformSampler) Sample(v *Vertex, n int, maxSpeed, maxTurningRadius float64) []planstate.State {
	biased := &RibbonBiasedSampler{Rand: s.Rand, MaxRange: s.MaxRange, Bias: 0}
	return biased.Sample(v, n, maxSpeed, maxTurningRadius)
}
