package dispatch

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"nailbook/pkg/config"
	nethttp "nailbook/pkg/http"
)

// Pinger reports store liveness for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	cfg   *config.Config
	store Pinger
}

func NewHealthHandler(cfg *config.Config, store Pinger) *HealthHandler {
	return &HealthHandler{cfg: cfg, store: store}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.health)
	router.GET("/ready", h.ready)
}

func (h *HealthHandler) health(w stdhttp.ResponseWriter, r *stdhttp.Request, _ httprouter.Params) {
	_ = nethttp.WriteJSON(w, stdhttp.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) ready(w stdhttp.ResponseWriter, r *stdhttp.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.cfg.Log.Warn("Readiness check failed", "error", err)
		_ = nethttp.WriteJSON(w, stdhttp.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	_ = nethttp.WriteJSON(w, stdhttp.StatusOK, map[string]string{"status": "ready"})
}
