// Package health reports readiness of the service's dependencies to the gRPC
// health service and the HTTP readiness endpoint.
package health

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Pinger checks database connectivity (e.g. *pgxpool.Pool).
type Pinger interface {
	Ping(ctx context.Context) error
}

// PolicyChecker checks the policy engine (e.g. *engine.OPAEvaluator).
type PolicyChecker interface {
	HealthCheck(ctx context.Context) error
}

// DefaultInterval is how often Run re-checks dependencies.
const DefaultInterval = 10 * time.Second

const checkTimeout = 2 * time.Second

// Checker pings dependencies. A nil dependency is skipped.
type Checker struct {
	pinger Pinger
	policy PolicyChecker
	ready  atomic.Bool
}

// NewChecker returns a Checker. Either argument may be nil.
func NewChecker(pinger Pinger, policy PolicyChecker) *Checker {
	return &Checker{pinger: pinger, policy: policy}
}

// Check pings every dependency and returns the joined failures.
func (c *Checker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	var errs []error
	if c.pinger != nil {
		if err := c.pinger.Ping(ctx); err != nil {
			errs = append(errs, errors.Join(errors.New("database"), err))
		}
	}
	if c.policy != nil {
		if err := c.policy.HealthCheck(ctx); err != nil {
			errs = append(errs, errors.Join(errors.New("policy engine"), err))
		}
	}
	err := errors.Join(errs...)
	c.ready.Store(err == nil)
	return err
}

// Ready reports the result of the last Check.
func (c *Checker) Ready() bool {
	return c.ready.Load()
}

// Run checks dependencies every interval until ctx is done, publishing the
// result to hs for the overall server ("") and each of services.
func (c *Checker) Run(ctx context.Context, hs *health.Server, interval time.Duration, services ...string) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	c.publish(ctx, hs, services)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.publish(ctx, hs, services)
		}
	}
}

func (c *Checker) publish(ctx context.Context, hs *health.Server, services []string) {
	st := healthpb.HealthCheckResponse_SERVING
	if err := c.Check(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.WarnContext(ctx, "health: dependency check failed", "error", err)
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	hs.SetServingStatus("", st)
	for _, svc := range services {
		hs.SetServingStatus(svc, st)
	}
}
