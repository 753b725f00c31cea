package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// HealthChecker defines an interface for checking dependency health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	db      HealthChecker
	cache   HealthChecker
	started time.Time
	version string
}

// NewHealthHandler creates a new HealthHandler.
// Pass nil for db or cache if they are not initialized.
func NewHealthHandler(db, cache HealthChecker, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		cache:   cache,
		started: time.Now(),
		version: version,
	}
}

// HealthResponse represents the basic health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// DependencyStatus reports one dependency's state and round-trip latency.
type DependencyStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DetailedHealthResponse represents the detailed health check response.
type DetailedHealthResponse struct {
	Status  string                      `json:"status"`
	Version string                      `json:"version,omitempty"`
	Uptime  string                      `json:"uptime"`
	Checks  map[string]DependencyStatus `json:"checks"`
}

// Health is a basic availability endpoint.
// It returns 200 if the server is running. No dependency checks.
//
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeRaw(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	})
}

// Live is a liveness probe endpoint.
// For Kubernetes liveness probes - never checks dependencies.
//
// GET /health/live
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeRaw(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready is a readiness probe endpoint.
// Returns 200 only if Postgres is reachable; Redis is optional and does
// not gate readiness because catalog caching fails open.
//
// GET /health/ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.db == nil {
		writeRaw(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy"})
		return
	}
	if err := h.db.Ping(ctx); err != nil {
		writeRaw(w, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy"})
		return
	}

	writeRaw(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Detailed checks every dependency and reports per-dependency latency.
// A Postgres failure marks the service unhealthy; a Redis failure only
// degrades it.
//
// GET /health/detailed
func (h *HealthHandler) Detailed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]DependencyStatus)
	status := "ok"

	checks["postgres"] = h.check(ctx, h.db)
	if checks["postgres"].Status != "ok" {
		status = "unhealthy"
	}

	checks["redis"] = h.check(ctx, h.cache)
	if checks["redis"].Status == "error" && status == "ok" {
		status = "degraded"
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	writeRaw(w, statusCode, DetailedHealthResponse{
		Status:  status,
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Checks:  checks,
	})
}

func (h *HealthHandler) check(ctx context.Context, dep HealthChecker) DependencyStatus {
	if dep == nil {
		return DependencyStatus{Status: "not configured"}
	}

	start := time.Now()
	if err := dep.Ping(ctx); err != nil {
		return DependencyStatus{
			Status:  "error",
			Latency: time.Since(start).String(),
			Error:   err.Error(),
		}
	}

	return DependencyStatus{
		Status:  "ok",
		Latency: time.Since(start).String(),
	}
}

// writeRaw encodes a payload without the standard response envelope.
// Health probes are consumed by orchestrators, not API clients.
func writeRaw(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
