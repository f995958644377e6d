package web

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// healthTimeout bounds the database ping behind GET /health.
const healthTimeout = 2 * time.Second

// Handlers contains the HTTP handlers for the API. Each handler extracts
// its parameters and calls exactly one store method.
type Handlers struct {
	store  Store
	logger *log.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store Store, logger *log.Logger) *Handlers {
	return &Handlers{
		store:  store,
		logger: logger,
	}
}

// Health reports whether the database answers (GET /health).
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.store.Health == nil {
		h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.store.Health.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", "error", err)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
