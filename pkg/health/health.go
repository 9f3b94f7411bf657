// Package health aggregates per-component probes into liveness and
// readiness endpoints. Probes run concurrently and the worst individual
// status becomes the overall one.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Status is the health state of a component or of the system overall.
type Status string

const (
	StatusUp       Status = "up"
	StatusDown     Status = "down"
	StatusDegraded Status = "degraded"
)

// rank orders statuses from healthiest to worst.
func (s Status) rank() int {
	switch s {
	case StatusUp:
		return 0
	case StatusDegraded:
		return 1
	default:
		return 2
	}
}

// Check probes a single dependency.
type Check func(ctx context.Context) ComponentHealth

// ComponentHealth is the outcome of one probe.
type ComponentHealth struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Report aggregates all probe outcomes.
type Report struct {
	Status     Status                     `json:"status"`
	Components map[string]ComponentHealth `json:"components"`
	Timestamp  string                     `json:"timestamp"`
}

type namedCheck struct {
	name  string
	check Check
}

// Checker holds registered probes.
type Checker struct {
	mu     sync.RWMutex
	checks []namedCheck
}

// NewChecker returns a Checker with no probes registered.
func NewChecker() *Checker {
	return &Checker{}
}

// Register adds a named probe. Registering the same name twice replaces
// the earlier probe.
func (c *Checker) Register(name string, check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.checks {
		if c.checks[i].name == name {
			c.checks[i].check = check
			return
		}
	}
	c.checks = append(c.checks, namedCheck{name: name, check: check})
}

// Run executes every probe concurrently and aggregates the outcomes. The
// overall status is the worst component status.
func (c *Checker) Run(ctx context.Context) Report {
	c.mu.RLock()
	checks := make([]namedCheck, len(c.checks))
	copy(checks, c.checks)
	c.mu.RUnlock()

	report := Report{
		Status:     StatusUp,
		Components: make(map[string]ComponentHealth, len(checks)),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, nc := range checks {
		g.Go(func() error {
			started := time.Now()
			outcome := nc.check(gctx)
			outcome.Latency = time.Since(started).Round(time.Millisecond).String()
			mu.Lock()
			report.Components[nc.name] = outcome
			if outcome.Status.rank() > report.Status.rank() {
				report.Status = outcome.Status
			}
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return report
}

// LiveHandler serves liveness probes: the process is up and able to
// answer, nothing more.
func (c *Checker) LiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
	}
}

// ReadyHandler serves readiness probes by running every registered check
// with a bounded deadline. Anything worse than StatusUp answers 503.
func (c *Checker) ReadyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		report := c.Run(ctx)
		w.Header().Set("Content-Type", "application/json")
		if report.Status == StatusUp {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(report)
	}
}
