package ribbon

import (
	"fmt"
	"math"
	"strings"
)

// Manager holds the set of not-yet-covered ribbons for one search vertex.
// Each Vertex owns its own Manager snapshot (see the search package) rather
// than sharing one across the whole search, so that expanding a vertex never
// mutates a sibling's view of what remains uncovered.
type Manager struct {
	uncovered []*Ribbon
}

// NewManager builds a Manager that must cover the given ribbons.
func NewManager(ribbons ...*Ribbon) *Manager {
	cp := make([]*Ribbon, len(ribbons))
	copy(cp, ribbons)
	return &Manager{uncovered: cp}
}

// Clone returns a deep copy, safe to mutate independently of the original.
// Expansion in the search core is expected to call this once per child
// vertex before walking that child's candidate edge.
func (m *Manager) Clone() *Manager {
	cp := make([]*Ribbon, len(m.uncovered))
	for i, r := range m.uncovered {
		rcopy := *r
		cp[i] = &rcopy
	}
	return &Manager{uncovered: cp}
}

// Done reports whether every ribbon has been covered.
func (m *Manager) Done() bool {
	return len(m.uncovered) == 0
}

// Ribbons returns the remaining uncovered ribbons. The slice aliases
// internal storage and must be treated as read-only.
func (m *Manager) Ribbons() []*Ribbon {
	return m.uncovered
}

// MinDistanceFrom returns the closest distance from (x, y) to any remaining
// ribbon, or +Inf if nothing remains to cover.
func (m *Manager) MinDistanceFrom(x, y float64) float64 {
	best := math.Inf(1)
	for _, r := range m.uncovered {
		d, _ := r.distanceAndProjection(x, y)
		if d < best {
			best = d
		}
	}
	return best
}

// Cover checks (x, y, heading) against the nearest ribbon and, if it lies on
// that ribbon with a matching heading, splits off and removes the covered
// leading portion. Returns true if a ribbon was (partially or fully)
// covered.
func (m *Manager) Cover(x, y, heading float64) bool {
	idx, best := -1, math.Inf(1)
	for i, r := range m.uncovered {
		d, _ := r.distanceAndProjection(x, y)
		if d < best {
			best, idx = d, i
		}
	}
	if idx == -1 {
		return false
	}
	nearest := m.uncovered[idx]
	if !nearest.onRibbon(x, y, heading) {
		return false
	}

	_, t := nearest.distanceAndProjection(x, y)
	if t >= 1 {
		// Fully covered: drop the ribbon.
		m.uncovered = append(m.uncovered[:idx], m.uncovered[idx+1:]...)
		return true
	}
	// Split: the remainder to cover runs from the covered point to End.
	remainder := &Ribbon{Start: nearest.pointAt(math.Max(t, 0)), End: nearest.End}
	m.uncovered[idx] = remainder
	return true
}

// DumpRibbons renders the remaining ribbons for diagnostics, matching the
// wire-style "x1 y1 x2 y2" tuple per line used by the visualizer sink.
func (m *Manager) DumpRibbons() string {
	var b strings.Builder
	for _, r := range m.uncovered {
		fmt.Fprintf(&b, "%f %f %f %f\n", r.Start.X, r.Start.Y, r.End.X, r.End.Y)
	}
	return b.String()
}
