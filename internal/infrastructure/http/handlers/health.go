package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const probeTimeout = 3 * time.Second

// HealthHandler serves GET /health. It answers as long as the process runs.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Probe checks one backing store. A nil Check means the store was never
// configured.
type Probe struct {
	Name     string
	Required bool
	Check    func(ctx context.Context) error
}

// PostgresProbe is required: without it no page can be read or written.
func PostgresProbe(pool *pgxpool.Pool) Probe {
	p := Probe{Name: "postgres", Required: true}
	if pool != nil {
		p.Check = pool.Ping
	}
	return p
}

func MongoProbe(db *mongo.Database) Probe {
	p := Probe{Name: "mongodb"}
	if db != nil {
		p.Check = func(ctx context.Context) error {
			return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		}
	}
	return p
}

func RedisProbe(rdb *redis.Client) Probe {
	p := Probe{Name: "redis"}
	if rdb != nil {
		p.Check = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return p
}

// ReadinessHandler serves GET /health/ready. Probes run concurrently. An
// unconfigured optional store reports "disabled" and keeps the service
// ready; a configured store that fails its check does not.
type ReadinessHandler struct {
	probes []Probe
}

func NewReadinessHandler(probes ...Probe) *ReadinessHandler {
	return &ReadinessHandler{probes: probes}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		healthy = true
		deps    = make(map[string]dependencyStatus, len(h.probes))
	)
	report := func(name string, st dependencyStatus, ok bool) {
		mu.Lock()
		defer mu.Unlock()
		deps[name] = st
		healthy = healthy && ok
	}

	for _, p := range h.probes {
		if p.Check == nil {
			if p.Required {
				report(p.Name, dependencyStatus{Status: "unconfigured"}, false)
			} else {
				report(p.Name, dependencyStatus{Status: "disabled"}, true)
			}
			continue
		}
		wg.Add(1)
		go func(p Probe) {
			defer wg.Done()
			if err := p.Check(ctx); err != nil {
				report(p.Name, dependencyStatus{Status: "unhealthy", Error: err.Error()}, false)
				return
			}
			report(p.Name, dependencyStatus{Status: "ok"}, true)
		}(p)
	}
	wg.Wait()

	resp := readinessResponse{Status: "ok", Dependencies: deps}
	code := http.StatusOK
	if !healthy {
		resp.Status = "degraded"
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, resp)
}
