package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/esprit/pkg/logger"
)

const (
	defaultHealthTimeout = 5 * time.Second

	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// CheckFunc reports whether a dependency can serve traffic.
type CheckFunc func(ctx context.Context) error

type healthReport struct {
	Checks map[string]healthCheck `json:"checks,omitempty"`
	Status string                 `json:"status"`
}

type healthCheck struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type pinger interface {
	Ping(ctx context.Context) error
}

// ReadinessChecks returns a check for the database manager when one is
// configured and for the cache backend when it can be pinged.
func (c *Controller) ReadinessChecks() map[string]CheckFunc {
	checks := make(map[string]CheckFunc)
	if c.svc.Databases != nil {
		checks["db"] = c.svc.Databases.Ping
	}
	if p, ok := c.cacheBackend.(pinger); ok {
		checks["cache"] = p.Ping
	}
	return checks
}

func livenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, r, http.StatusOK, &healthReport{Status: statusHealthy})
	}
}

func readinessHandler(checks map[string]CheckFunc, l *logger.Logger) http.HandlerFunc {
	log := l.WithOrigin("HEALTH")
	return func(w http.ResponseWriter, r *http.Request) {
		report := runChecks(r.Context(), checks, defaultHealthTimeout, log)
		status := http.StatusOK
		if report.Status == statusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		writeHealth(w, r, status, report)
	}
}

// runChecks runs every check concurrently under one timeout.
func runChecks(ctx context.Context, checks map[string]CheckFunc, timeout time.Duration, log *logger.Logger) *healthReport {
	if len(checks) == 0 {
		return &healthReport{Status: statusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		results = make(map[string]healthCheck, len(checks))
		status  = statusHealthy
	)

	var g errgroup.Group
	for name, check := range checks {
		g.Go(func() error {
			result := healthCheck{Status: statusHealthy}
			if err := check(ctx); err != nil {
				result = healthCheck{Status: statusUnhealthy, Error: err.Error()}
				log.WarningContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}
			mu.Lock()
			defer mu.Unlock()
			results[name] = result
			if result.Status == statusUnhealthy {
				status = statusUnhealthy
			}
			return nil
		})
	}
	_ = g.Wait()

	return &healthReport{Status: status, Checks: results}
}

func writeHealth(w http.ResponseWriter, r *http.Request, status int, report *healthReport) {
	if r.URL.Query().Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
		return
	}
	w.WriteHeader(status)
	if status == http.StatusOK {
		_, _ = w.Write([]byte("OK"))
		return
	}
	_, _ = w.Write([]byte("Service Unavailable"))
}
