package rpcfacade

import (
	"context"
	"testing"
	"time"

	"go.viam.com/test"
	"go.viam.com/utils/rpc"

	"github.com/sternwake/covplan/obstacles"
	"github.com/sternwake/covplan/planner"
	"github.com/sternwake/covplan/planstate"
	"github.com/sternwake/covplan/ribbon"
)

func TestLocalServicePlan(t *testing.T) {
	cfg := planner.DefaultConfig(2, 3)
	cfg.SamplesPerVertex = 15
	p := planner.New(planstate.EmptyMap{}, obstacles.NewManager(), cfg)
	svc := NewLocalService(p)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	resp, err := svc.Plan(ctx, PlanRequest{
		Start:          planstate.New(0, 0, 0, 2, 0),
		Ribbons:        []*ribbon.Ribbon{ribbon.New(0, 0, 0, 8)},
		TimeoutSeconds: 2,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, resp.Err, test.ShouldEqual, "")
	test.That(t, resp.Plan, test.ShouldNotBeNil)
}

func TestDialRemoteValidatesOptions(t *testing.T) {
	_, err := DialRemote(context.Background(), RemoteOptions{})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = DialRemote(context.Background(), RemoteOptions{
		BaseURL:     "https://example.com",
		Entity:      "vehicle-1",
		Credentials: rpc.Credentials{Type: rpc.CredentialsTypeAPIKey, Payload: "secret"},
	})
	test.That(t, err, test.ShouldEqual, ErrRemoteNotImplemented)
}
