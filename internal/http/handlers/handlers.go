package handlers

import (
	"context"
	"net/http"
	"time"

	"delivery-coordinator/internal/logx"
)

const healthTimeout = 2 * time.Second

// Handlers holds the service-level endpoints: ping, health and the 404 fallback.
type Handlers struct {
	Logger logx.Logger
	db     Pinger
}

// New creates a Handlers instance. db may be nil, then /health only reports liveness.
func New(logger logx.Logger, db Pinger) *Handlers {
	return &Handlers{Logger: logger, db: db}
}

// Ping handles GET /ping and returns 200 with {"message":"pong"}.
func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.Logger, w, r, http.StatusOK, map[string]string{"message": "pong"})
}

// HealthcheckHead handles HEAD /healthcheck and returns 204 No Content.
func (h *Handlers) HealthcheckHead(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /health and reports store reachability.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			if h.Logger != nil {
				h.Logger.Warn("health: store unreachable", logx.Err(err))
			}
			writeJSON(h.Logger, w, r, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "db": "down"})
			return
		}
	}
	writeJSON(h.Logger, w, r, http.StatusOK, map[string]string{"status": "ok", "db": "up"})
}

// NotFound returns a JSON 404 error for unknown routes.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(h.Logger, w, r, http.StatusNotFound, "route not found")
}
