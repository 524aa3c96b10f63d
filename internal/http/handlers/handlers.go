package handlers

import (
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/fantasy-league-service/internal/app/league"
	"github.com/preston-bernstein/fantasy-league-service/internal/poller"
)

// Handler wires public HTTP routes to the league engine.
type Handler struct {
	engine   *league.Engine
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn reports player sync health for
// readiness; nil means readiness does not depend on the feed.
func NewHandler(engine *league.Engine, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		engine:   engine,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":       "ready",
			"lastSync":     status.LastSuccess,
			"lastUpserted": status.LastUpserted,
		}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}
