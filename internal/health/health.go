// Package health reports the reachability of the gateway's dependencies.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"publicapi/internal/common/api"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// Status is the result of one check.
type Status struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// Checker runs named checks.
type Checker struct {
	names   []string
	checks  map[string]Check
	timeout time.Duration
	logger  *slog.Logger
}

// NewChecker creates a checker whose checks each get timeout.
func NewChecker(timeout time.Duration, logger *slog.Logger) *Checker {
	return &Checker{
		checks:  make(map[string]Check),
		timeout: timeout,
		logger:  logger,
	}
}

// Add registers a check under name.
func (c *Checker) Add(name string, check Check) {
	if _, ok := c.checks[name]; !ok {
		c.names = append(c.names, name)
	}
	c.checks[name] = check
}

// Run executes every check concurrently.
func (c *Checker) Run(ctx context.Context) (map[string]Status, bool) {
	results := make(map[string]Status, len(c.names))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, name := range c.names {
		wg.Add(1)
		go func(name string, check Check) {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			status := Status{Healthy: true}
			if err := check(cctx); err != nil {
				status = Status{Healthy: false, Message: err.Error()}
				c.logger.Warn("health check failed", "dependency", name, "error", err)
			}
			mu.Lock()
			results[name] = status
			mu.Unlock()
		}(name, c.checks[name])
	}
	wg.Wait()

	healthy := true
	for _, s := range results {
		healthy = healthy && s.Healthy
	}
	return results, healthy
}

// Handler serves the check results, 503 when any dependency is unhealthy.
func (c *Checker) Handler(w http.ResponseWriter, r *http.Request) {
	results, healthy := c.Run(r.Context())
	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	api.WriteJSON(w, status, results)
}

// Ready always reports ready once the server is accepting requests.
func Ready(w http.ResponseWriter, _ *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
