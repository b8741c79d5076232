package app

import (
	"context"
	"net/http"
	"time"

	httputil "digilist/pkg/http"
	"digilist/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// Pinger is satisfied by *mongo.Client and wrapped Redis clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthResponse struct {
	Status       string            `json:"status"`
	Service      string            `json:"service,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

type HealthHandler struct {
	service string
	deps    map[string]Pinger
	log     *logger.Logger
}

func NewHealthHandler(service string, deps map[string]Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{service: service, deps: deps, log: log}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: h.service}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

// Ready pings every dependency and answers 503 if any of them fails.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	resp := HealthResponse{Status: "ready", Service: h.service, Dependencies: make(map[string]string, len(h.deps))}
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			h.log.Error("Dependency health check failed", "dependency", name, "error", err)
			resp.Dependencies[name] = "error"
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Dependencies[name] = "ok"
	}

	if err := httputil.WriteJSON(w, status, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
