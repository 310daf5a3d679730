package kiln

import (
	"context"
	"sync"
	"time"

	"github.com/kiln-di/kiln/internal/errs"
)

type HealthStatus string

const (
	HealthStatusUp      HealthStatus = "up"
	HealthStatusDown    HealthStatus = "down"
	HealthStatusUnknown HealthStatus = "unknown"
)

type HealthReport struct {
	Capability string
	Status     HealthStatus
	Error      error
	Latency    time.Duration
}

// HealthChecker is implemented by instances that can report liveness.
// Only instances already built and cached in this engine are checked;
// Health never triggers construction.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Live runs every health check and returns the first failure found.
func (e *Engine) Live(ctx context.Context) error {
	for _, r := range e.Health(ctx) {
		if r.Status == HealthStatusDown {
			return errs.New(
				errs.CodeValidationFailed,
				"health check failed for "+r.Capability,
				r.Error,
			).WithCapability(r.Capability)
		}
	}
	return nil
}

// Health checks every cached instance implementing HealthChecker,
// concurrently, and reports per capability.
func (e *Engine) Health(ctx context.Context) []HealthReport {
	var reports []HealthReport
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, info := range e.internal.Entries() {
		if !info.Complete {
			continue
		}

		for _, instance := range info.Values {
			checker, ok := instance.(HealthChecker)
			if !ok {
				continue
			}

			wg.Add(1)
			go func(capability string, hc HealthChecker) {
				defer wg.Done()

				start := time.Now()
				err := hc.HealthCheck(ctx)
				latency := time.Since(start)

				report := HealthReport{
					Capability: capability,
					Latency:    latency,
				}

				if err != nil {
					report.Status = HealthStatusDown
					report.Error = err
				} else {
					report.Status = HealthStatusUp
				}

				mu.Lock()
				reports = append(reports, report)
				mu.Unlock()
			}(info.Capability, checker)
		}
	}

	wg.Wait()
	return reports
}
