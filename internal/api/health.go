package api

import (
	"context"
	"net/http"
	"time"

	"github.com/hearthside/planner/internal/api/respond"
	"github.com/hearthside/planner/internal/store"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	store store.Store
}

func NewHealthHandler(st store.Store) *HealthHandler { return &HealthHandler{store: st} }

// pinger is implemented by store drivers that can probe their backend.
type pinger interface {
	HealthPing(ctx context.Context) error
}

// CheckHealth handles GET /api/health
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// CheckStorageHealth handles GET /api/health/db
func (h *HealthHandler) CheckStorageHealth(w http.ResponseWriter, r *http.Request) {
	p, ok := h.store.(pinger)
	if !ok {
		respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "unknown"})
		return
	}
	if err := p.HealthPing(r.Context()); err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "healthy"})
}
