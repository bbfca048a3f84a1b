// Package dubins implements the Dubins shortest-path primitive: the
// shortest curve between two oriented poses for a vehicle with a fixed
// minimum turning radius and no reverse gear. This is the external
// geometric primitive the search core's Edge type is built on.
package dubins

import (
	"errors"
	"math"
)

// ErrNoPath is returned when no Dubins curve of the requested type connects
// the two poses (the underlying quadratic/trig solve has no real root).
var ErrNoPath = errors.New("dubins: no feasible path for this word")

// ErrDegenerate is returned when start and end are the same pose; callers
// that haven't already special-cased co-located states per their own
// contract will see this rather than a silently zero-length path.
var ErrDegenerate = errors.New("dubins: start and end poses are identical")

const twoPi = 2 * math.Pi

func mod2pi(theta float64) float64 {
	theta = math.Mod(theta, twoPi)
	if theta < 0 {
		theta += twoPi
	}
	return theta
}

// word identifies one of the six canonical Dubins path families.
type word struct {
	mode     [3]byte
	straight bool // true for the CSC families (a straight middle segment)
}

var words = []word{
	{mode: [3]byte{'L', 'S', 'L'}, straight: true},
	{mode: [3]byte{'R', 'S', 'R'}, straight: true},
	{mode: [3]byte{'L', 'S', 'R'}, straight: true},
	{mode: [3]byte{'R', 'S', 'L'}, straight: true},
	{mode: [3]byte{'R', 'L', 'R'}, straight: false},
	{mode: [3]byte{'L', 'R', 'L'}, straight: false},
}

// Path is one solved Dubins curve: three segments, each either a turn
// (an arc swept by Params[i] radians) or a straight run (Params[i] is the
// distance divided by Radius), in the order given by Mode.
type Path struct {
	Radius   float64
	Mode     [3]byte
	Params   [3]float64
	Straight bool

	start [3]float64 // x, y, yaw at s=0
}

// Length is the physical arc length of the full curve.
func (p *Path) Length() float64 {
	return p.Radius * (p.Params[0] + p.Params[1] + p.Params[2])
}

// Sample returns the pose (x, y, yaw) reached after traveling arc length s
// along the curve from its start. s is clamped to [0, Length()].
func (p *Path) Sample(s float64) (x, y, yaw float64) {
	if s < 0 {
		s = 0
	}
	total := p.Length()
	if s > total {
		s = total
	}

	x, y, yaw = p.start[0], p.start[1], p.start[2]
	remaining := s
	for i := 0; i < 3; i++ {
		segLen := p.Radius * p.Params[i]
		u := p.Params[i]
		if remaining < segLen {
			if p.Radius > 0 {
				u = remaining / p.Radius
			}
			return propagate(x, y, yaw, u, p.Mode[i], p.Radius)
		}
		x, y, yaw = propagate(x, y, yaw, u, p.Mode[i], p.Radius)
		remaining -= segLen
	}
	return x, y, yaw
}

// propagate moves (x, y, yaw) forward by u (radians for 'L'/'R', normalized
// distance for 'S') along a circle (or straight line) of the given radius.
func propagate(x, y, yaw, u float64, mode byte, radius float64) (nx, ny, nyaw float64) {
	switch mode {
	case 'L':
		nyaw = yaw + u
		nx = x + radius*(math.Sin(nyaw)-math.Sin(yaw))
		ny = y - radius*(math.Cos(nyaw)-math.Cos(yaw))
	case 'R':
		nyaw = yaw - u
		nx = x - radius*(math.Sin(nyaw)-math.Sin(yaw))
		ny = y + radius*(math.Cos(nyaw)-math.Cos(yaw))
	default: // 'S'
		nyaw = yaw
		nx = x + radius*u*math.Cos(yaw)
		ny = y + radius*u*math.Sin(yaw)
	}
	return nx, ny, nyaw
}

// Shortest solves for the minimum-length Dubins curve from start to end
// (each [x, y, yaw], yaw in the mathematical convention) with the given
// minimum turning radius. Returns ErrDegenerate if start == end exactly
// (callers with a cost-zero convention for co-located poses, such as this
// module's search/Edge, should special-case that before calling Shortest)
// and ErrNoPath if no word produces a feasible curve (should not happen for
// any pair of finite poses with radius > 0, but the geometry solve can fail
// numerically in edge cases).
func Shortest(start, end [3]float64, radius float64) (*Path, error) {
	if start == end {
		return nil, ErrDegenerate
	}
	dx := end[0] - start[0]
	dy := end[1] - start[1]
	d := math.Hypot(dx, dy) / radius
	theta := mod2pi(math.Atan2(dy, dx))
	alpha := mod2pi(start[2] - theta)
	beta := mod2pi(end[2] - theta)

	var best *Path
	var bestCost = math.Inf(1)
	for _, w := range words {
		t, p, q, ok := solveWord(w.mode, alpha, beta, d)
		if !ok {
			continue
		}
		cost := math.Abs(t) + math.Abs(p) + math.Abs(q)
		if cost < bestCost {
			bestCost = cost
			best = &Path{
				Radius:   radius,
				Mode:     w.mode,
				Params:   [3]float64{t, p, q},
				Straight: w.straight,
				start:    start,
			}
		}
	}
	if best == nil {
		return nil, ErrNoPath
	}
	return best, nil
}

func solveWord(mode [3]byte, alpha, beta, d float64) (t, p, q float64, ok bool) {
	switch mode {
	case [3]byte{'L', 'S', 'L'}:
		return lsl(alpha, beta, d)
	case [3]byte{'R', 'S', 'R'}:
		return rsr(alpha, beta, d)
	case [3]byte{'L', 'S', 'R'}:
		return lsr(alpha, beta, d)
	case [3]byte{'R', 'S', 'L'}:
		return rsl(alpha, beta, d)
	case [3]byte{'R', 'L', 'R'}:
		return rlr(alpha, beta, d)
	case [3]byte{'L', 'R', 'L'}:
		return lrl(alpha, beta, d)
	}
	return 0, 0, 0, false
}

func lsl(alpha, beta, d float64) (t, p, q float64, ok bool) {
	sa, sb, ca, cb := math.Sin(alpha), math.Sin(beta), math.Cos(alpha), math.Cos(beta)
	cAB := math.Cos(alpha - beta)
	pSq := 2 + d*d - 2*cAB + 2*d*(sa-sb)
	if pSq < 0 {
		return 0, 0, 0, false
	}
	tmp := math.Atan2(cb-ca, d+sa-sb)
	t = mod2pi(-alpha + tmp)
	p = math.Sqrt(pSq)
	q = mod2pi(beta - tmp)
	return t, p, q, true
}

func rsr(alpha, beta, d float64) (t, p, q float64, ok bool) {
	sa, sb, ca, cb := math.Sin(alpha), math.Sin(beta), math.Cos(alpha), math.Cos(beta)
	cAB := math.Cos(alpha - beta)
	pSq := 2 + d*d - 2*cAB + 2*d*(sb-sa)
	if pSq < 0 {
		return 0, 0, 0, false
	}
	tmp := math.Atan2(ca-cb, d-sa+sb)
	t = mod2pi(alpha - tmp)
	p = math.Sqrt(pSq)
	q = mod2pi(-beta + tmp)
	return t, p, q, true
}

func lsr(alpha, beta, d float64) (t, p, q float64, ok bool) {
	sa, sb, ca, cb := math.Sin(alpha), math.Sin(beta), math.Cos(alpha), math.Cos(beta)
	cAB := math.Cos(alpha - beta)
	pSq := -2 + d*d + 2*cAB + 2*d*(sa+sb)
	if pSq < 0 {
		return 0, 0, 0, false
	}
	p = math.Sqrt(pSq)
	tmp := math.Atan2(-ca-cb, d+sa+sb) - math.Atan2(-2, p)
	t = mod2pi(-alpha + tmp)
	q = mod2pi(-mod2pi(beta) + tmp)
	return t, p, q, true
}

func rsl(alpha, beta, d float64) (t, p, q float64, ok bool) {
	sa, sb, ca, cb := math.Sin(alpha), math.Sin(beta), math.Cos(alpha), math.Cos(beta)
	cAB := math.Cos(alpha - beta)
	pSq := d*d - 2 + 2*cAB - 2*d*(sa+sb)
	if pSq < 0 {
		return 0, 0, 0, false
	}
	p = math.Sqrt(pSq)
	tmp := math.Atan2(ca+cb, d-sa-sb) - math.Atan2(2, p)
	t = mod2pi(alpha - tmp)
	q = mod2pi(beta - tmp)
	return t, p, q, true
}

func rlr(alpha, beta, d float64) (t, p, q float64, ok bool) {
	sa, sb, ca, cb := math.Sin(alpha), math.Sin(beta), math.Cos(alpha), math.Cos(beta)
	cAB := math.Cos(alpha - beta)
	tmp := (6 - d*d + 2*cAB + 2*d*(sa-sb)) / 8
	if math.Abs(tmp) > 1 {
		return 0, 0, 0, false
	}
	p = mod2pi(twoPi - math.Acos(tmp))
	t = mod2pi(alpha - math.Atan2(ca-cb, d-sa+sb) + p/2)
	q = mod2pi(alpha - beta - t + p)
	return t, p, q, true
}

func lrl(alpha, beta, d float64) (t, p, q float64, ok bool) {
	sa, sb, ca, cb := math.Sin(alpha), math.Sin(beta), math.Cos(alpha), math.Cos(beta)
	cAB := math.Cos(alpha - beta)
	tmp := (6 - d*d + 2*cAB + 2*d*(sb-sa)) / 8
	if math.Abs(tmp) > 1 {
		return 0, 0, 0, false
	}
	p = mod2pi(twoPi - math.Acos(tmp))
	t = mod2pi(-alpha - math.Atan2(ca-cb, d+sa-sb) + p/2)
	q = mod2pi(mod2pi(beta) - alpha - t + p)
	return t, p, q, true
}

// findCenter returns the center of the left (or right) turning circle of
// radius for a vehicle at pose (x, y, yaw).
func findCenter(x, y, yaw, radius float64, left bool) (cx, cy float64) {
	if left {
		return x - radius*math.Sin(yaw), y + radius*math.Cos(yaw)
	}
	return x + radius*math.Sin(yaw), y - radius*math.Cos(yaw)
}
