package visualize

import (
	"bytes"
	"strings"
	"testing"

	"go.viam.com/test"

	"github.com/sternwake/covplan/planner"
	"github.com/sternwake/covplan/planstate"
	"github.com/sternwake/covplan/ribbon"
)

func TestWritePlan(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)
	plan := &planner.Plan{States: []planstate.State{
		planstate.New(0, 0, 0, 1, 0),
		planstate.New(1, 1, 0, 1, 1),
	}}
	test.That(t, s.WritePlan(plan), test.ShouldBeNil)
	test.That(t, strings.Count(buf.String(), "\n"), test.ShouldEqual, 2)
}

func TestWriteRibbons(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)
	m := ribbon.NewManager(ribbon.New(0, 0, 0, 10))
	test.That(t, s.WriteRibbons(m), test.ShouldBeNil)
	test.That(t, strings.Contains(buf.String(), "0.000000 0.000000 0.000000 10.000000"), test.ShouldBeTrue)
}
