// Command plannerd is a demonstration and smoke-test CLI for the coverage
// planner: it loads a config file, plans a single cover job for a ribbon
// list given on the command line, prints the resulting plan as JSON to
// stdout, and optionally appends the plan to a visualizer dump file. It is
// not a production service.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/sternwake/covplan/config"
	"github.com/sternwake/covplan/logging"
	"github.com/sternwake/covplan/obstacles"
	"github.com/sternwake/covplan/planner"
	"github.com/sternwake/covplan/planstate"
	"github.com/sternwake/covplan/ribbon"
	"github.com/sternwake/covplan/rpcfacade"
	"github.com/sternwake/covplan/visualize"
)

func main() {
	logger := logging.NewLogger("plannerd")

	app := &cli.App{
		Name:  "plannerd",
		Usage: "plan a coverage path for a set of ribbons",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Required: true, Usage: "path to a planner config YAML file"},
			&cli.StringFlag{Name: "ribbons", Required: true, Usage: "ribbons as x1,y1,x2,y2;x1,y1,x2,y2;..."},
			&cli.Float64Flag{Name: "start-x", Value: 0},
			&cli.Float64Flag{Name: "start-y", Value: 0},
			&cli.Float64Flag{Name: "start-heading", Value: 0},
			&cli.Float64Flag{Name: "timeout", Value: 10, Usage: "planning time budget, in seconds"},
			&cli.StringFlag{Name: "visualize", Usage: "optional path to append a plan diagnostic dump to"},
		},
		Action: func(c *cli.Context) error {
			return run(c, logger)
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.CErrorf(context.Background(), "plannerd failed: %v", err)
		os.Exit(1)
	}
}

func run(c *cli.Context, logger logging.Logger) error {
	cfgFile, err := config.FromYAML(c.String("config"))
	if err != nil {
		return err
	}

	ribbons, err := parseRibbons(c.String("ribbons"))
	if err != nil {
		return err
	}

	start := planstate.New(c.Float64("start-x"), c.Float64("start-y"), c.Float64("start-heading"), cfgFile.Vehicle.MaxSpeed, 0)

	obstacleMgr := obstacles.NewManager(cfgFile.Obstacles.IgnoreMMSI...)
	p := planner.New(planstate.EmptyMap{}, obstacleMgr, cfgFile.PlannerConfig())
	p.Logger = logger

	svc := rpcfacade.NewLocalService(p)
	resp, err := svc.Plan(c.Context, rpcfacade.PlanRequest{
		Start:          start,
		Ribbons:        ribbons,
		TimeoutSeconds: c.Float64("timeout"),
	})
	if err != nil {
		return err
	}
	if resp.Err != "" {
		return fmt.Errorf("plannerd: planning failed: %s", resp.Err)
	}

	if path := c.String("visualize"); path != "" {
		sink, closer, err := visualize.Open(path)
		if err != nil {
			return err
		}
		defer closer.Close()
		if err := sink.WritePlan(resp.Plan); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp.Plan)
}

// parseRibbons parses "x1,y1,x2,y2;x1,y1,x2,y2" into Ribbons.
func parseRibbons(s string) ([]*ribbon.Ribbon, error) {
	var out []*ribbon.Ribbon
	for _, chunk := range strings.Split(s, ";") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		parts := strings.Split(chunk, ",")
		if len(parts) != 4 {
			return nil, fmt.Errorf("plannerd: ribbon %q must have 4 comma-separated values", chunk)
		}
		nums := make([]float64, 4)
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("plannerd: parsing ribbon %q: %w", chunk, err)
			}
			nums[i] = v
		}
		out = append(out, ribbon.New(nums[0], nums[1], nums[2], nums[3]))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("plannerd: no ribbons parsed from %q", s)
	}
	return out, nil
}
