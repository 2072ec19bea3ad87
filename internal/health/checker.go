package health

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusUp   = "up"
	StatusDown = "down"

	checkTimeout = 2 * time.Second
)

// Pinger is satisfied by every repository.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency is one named readiness check.
type Dependency struct {
	Name   string
	Pinger Pinger
}

type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type HealthResult struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

// Checker reports liveness and pings every dependency for readiness.
type Checker struct {
	deps   []Dependency
	logger *slog.Logger
	gauge  *prometheus.GaugeVec
}

// NewChecker registers catalog_health_check_up{dependency} on reg.
func NewChecker(logger *slog.Logger, reg prometheus.Registerer, deps ...Dependency) *Checker {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "catalog",
		Name:      "health_check_up",
		Help:      "Whether a dependency is reachable. 1 = up, 0 = down.",
	}, []string{"dependency"})
	reg.MustRegister(gauge)

	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
	return &Checker{
		deps:   deps,
		logger: logger.With("component", "health"),
		gauge:  gauge,
	}
}

func (c *Checker) Liveness(_ context.Context) HealthResult {
	return HealthResult{Status: StatusUp}
}

// Readiness pings all dependencies concurrently. One failure marks the
// whole result down.
func (c *Checker) Readiness(ctx context.Context) HealthResult {
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	results := make([]CheckResult, len(c.deps))
	var wg sync.WaitGroup
	for i, d := range c.deps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = c.check(checkCtx, d)
		}()
	}
	wg.Wait()

	out := HealthResult{Status: StatusUp, Checks: make(map[string]CheckResult, len(c.deps))}
	for i, d := range c.deps {
		out.Checks[d.Name] = results[i]
		if results[i].Status != StatusUp {
			out.Status = StatusDown
		}
	}
	return out
}

func (c *Checker) check(ctx context.Context, d Dependency) CheckResult {
	if err := d.Pinger.Ping(ctx); err != nil {
		c.logger.WarnContext(ctx, "health check failed", "dependency", d.Name, "error", err)
		c.gauge.WithLabelValues(d.Name).Set(0)
		return CheckResult{Status: StatusDown, Error: err.Error()}
	}
	c.gauge.WithLabelValues(d.Name).Set(1)
	return CheckResult{Status: StatusUp}
}
