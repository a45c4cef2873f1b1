// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"workshopdex/internal/core/version"
	"workshopdex/internal/modkit/httpkit"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Backend     Pinger
	// ReadyTimeout bounds the backend check, 0 means 2s
	ReadyTimeout time.Duration
	Now          func() time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"workshopdex-api"`
	Started string `json:"started"  example:"2026-10-01T13:00:00Z"`
	Now     string `json:"now"      example:"2026-10-01T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"workshop"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"workshop /api/apps unreachable: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-01T13:05:00Z"`
}

// VersionResponse is build info plus process uptime
type VersionResponse struct {
	version.BuildInfo
	Started   string `json:"started"    example:"2026-10-01T13:00:00Z"`
	UptimeSec int64  `json:"uptime_sec" example:"300"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"workshopdex-api"`
	Started string `json:"started" example:"2026-10-01T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse ok
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     h.deps.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness check against the workshop backend
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), h.deps.ReadyTimeout)
	defer cancel()

	check := ReadyCheck{Name: "workshop", Status: "skipped"}
	if h.deps.Backend != nil {
		check.Status = "ok"
		if err := h.deps.Backend.Ping(ctx); err != nil {
			check.Status, check.Error = "fail", err.Error()
		}
	}

	overall := "ok"
	if check.Status == "fail" {
		overall = "fail"
	}
	return ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{check},
		Now:    h.deps.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type VersionResponse ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return VersionResponse{
		BuildInfo: version.Info(h.deps.ServiceName),
		Started:   h.deps.StartedAt.UTC().Format(time.RFC3339),
		UptimeSec: h.uptime(),
	}, nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  h.uptime(),
	}, nil
}

func (h *handlers) uptime() int64 {
	return int64(h.deps.Now().Sub(h.deps.StartedAt) / time.Second)
}
