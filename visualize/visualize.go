// Package visualize is a write-only diagnostic sink: it appends plans and
// ribbon snapshots to an io.Writer (typically a log file opened in append
// mode) for an external plotting tool to pick up. It never reads anything
// back, mirroring the original planner's Visualizer.
package visualize

import (
	"fmt"
	"io"
	"os"

	"github.com/sternwake/covplan/planner"
	"github.com/sternwake/covplan/ribbon"
)

// Sink appends diagnostics to an underlying writer.
type Sink struct {
	w io.Writer
}

// Open opens (or creates) path in append mode and returns a Sink writing to
// it, along with an io.Closer for shutdown.
func Open(path string) (*Sink, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("visualize: opening %s: %w", path, err)
	}
	return &Sink{w: f}, f, nil
}

// NewSink wraps an arbitrary writer (e.g. os.Stdout, or a test buffer).
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// WritePlan appends every state of plan, one "x y heading_deg speed time"
// tuple per line, matching the wire format planstate.State.String produces.
func (s *Sink) WritePlan(plan *planner.Plan) error {
	for _, state := range plan.States {
		if _, err := fmt.Fprintln(s.w, state.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteRibbons appends the current uncovered-ribbon snapshot, one
// "x1 y1 x2 y2" tuple per line.
func (s *Sink) WriteRibbons(m *ribbon.Manager) error {
	_, err := io.WriteString(s.w, m.DumpRibbons())
	return err
}
