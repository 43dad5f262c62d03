package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"
)

const healthTimeout = 2 * time.Second

// Health states reported per dependency.
const (
	HealthOK          = "ok"
	HealthDegraded    = "degraded"
	HealthUnreachable = "unreachable"
	HealthDisabled    = "disabled"
)

// HealthChecker is satisfied by any dependency with a Ping method
// (database.Database, kvstore.RedisClient and events.EventBus all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks holds the dependencies probed by the health endpoint.
// A nil checker is reported as "disabled" and does not degrade the status.
type HealthChecks struct {
	Version  string
	Database HealthChecker
	Redis    HealthChecker
	EventBus HealthChecker
}

// DependencyHealth is the probe result for one dependency.
type DependencyHealth struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latencyMs,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status       string                      `json:"status"`
	Version      string                      `json:"version,omitempty"`
	Dependencies map[string]DependencyHealth `json:"dependencies"`
}

// HealthHandler probes every dependency in parallel and answers 503 when any
// enabled one fails within two seconds.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	named := map[string]HealthChecker{
		"database":  checks.Database,
		"redis":     checks.Redis,
		"event_bus": checks.EventBus,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := HealthResponse{
			Status:       HealthOK,
			Version:      checks.Version,
			Dependencies: make(map[string]DependencyHealth, len(named)),
		}

		var (
			mu sync.Mutex
			wg sync.WaitGroup
		)
		for name, c := range named {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res := probe(ctx, c)
				mu.Lock()
				defer mu.Unlock()
				resp.Dependencies[name] = res
				if res.Status == HealthUnreachable {
					resp.Status = HealthDegraded
				}
			}()
		}
		wg.Wait()

		status := http.StatusOK
		if resp.Status != HealthOK {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}

func probe(ctx context.Context, c HealthChecker) DependencyHealth {
	if c == nil {
		return DependencyHealth{Status: HealthDisabled}
	}
	start := time.Now()
	err := c.Ping(ctx)
	res := DependencyHealth{Status: HealthOK, LatencyMS: time.Since(start).Milliseconds()}
	if err != nil {
		res.Status = HealthUnreachable
	}
	return res
}
