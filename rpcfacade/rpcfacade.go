// Package rpcfacade stands in for the planner's message-passing boundary:
// a Service that accepts a PlanRequest and returns a PlanResponse, with a
// LocalService that calls straight into the planner package in-process.
// RemoteOptions carries the same dial shape the rest of this corpus uses
// for its gRPC clients, but no network transport is implemented here --
// wiring an actual remote Service is future work, not something this
// package attempts.
package rpcfacade

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.viam.com/utils/rpc"

	"github.com/sternwake/covplan/logging"
	"github.com/sternwake/covplan/planner"
	"github.com/sternwake/covplan/planstate"
	"github.com/sternwake/covplan/ribbon"
)

// PlanRequest is the wire-shape request for a single planning call.
type PlanRequest struct {
	Start          planstate.State `json:"start"`
	Ribbons        []*ribbon.Ribbon `json:"ribbons"`
	TimeoutSeconds float64          `json:"timeout_seconds"`
}

// PlanResponse is the wire-shape response: exactly one of Plan or Err is
// set.
type PlanResponse struct {
	Plan *planner.Plan `json:"plan,omitempty"`
	Err  string        `json:"err,omitempty"`
}

// Service is the boundary a caller (a CLI, a remote client, a test harness)
// plans through.
type Service interface {
	Plan(ctx context.Context, req PlanRequest) (*PlanResponse, error)
}

// LocalService calls directly into a planner.Planner, with no serialization
// or transport involved -- the in-process implementation of Service.
type LocalService struct {
	Planner *planner.Planner
	Logger  logging.Logger
}

// NewLocalService wraps p as a Service.
func NewLocalService(p *planner.Planner) *LocalService {
	return &LocalService{Planner: p, Logger: logging.NewLogger("rpcfacade")}
}

// Plan implements Service.
func (s *LocalService) Plan(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	s.Logger.CDebugf(ctx, "plan request: start=%s ribbons=%d", req.Start.String(), len(req.Ribbons))
	plan, err := s.Planner.Plan(ctx, req.Start, req.Ribbons, req.TimeoutSeconds)
	if err != nil {
		return &PlanResponse{Err: err.Error()}, nil
	}
	return &PlanResponse{Plan: plan}, nil
}

// RemoteOptions describes how a remote Service implementation would be
// dialed, mirroring this corpus's app.Options shape (BaseURL, Entity,
// Credentials) so configuration stays uniform with the rest of the client
// tooling even though DialRemote itself is not implemented.
type RemoteOptions struct {
	BaseURL     string
	Entity      string
	Credentials rpc.Credentials
}

// ErrRemoteNotImplemented is returned by DialRemote: this facade only ever
// plans in-process via LocalService; a networked Service implementation is
// out of scope here.
var ErrRemoteNotImplemented = errors.New("rpcfacade: remote planning service is not implemented")

// DialRemote validates a RemoteOptions the same way this corpus's gRPC
// client constructors validate their dial options, then reports that no
// remote transport exists yet.
func DialRemote(_ context.Context, opts RemoteOptions) (Service, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("rpcfacade: BaseURL cannot be empty")
	}
	if !strings.HasPrefix(opts.BaseURL, "http://") && !strings.HasPrefix(opts.BaseURL, "https://") {
		return nil, errors.New("rpcfacade: BaseURL must be a valid URL")
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("rpcfacade: parsing BaseURL: %w", err)
	}
	if opts.Entity == "" || opts.Credentials.Payload == "" {
		return nil, errors.New("rpcfacade: entity and credentials payload cannot be empty")
	}
	return nil, ErrRemoteNotImplemented
}
