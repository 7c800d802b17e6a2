package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/kartikm76/middleoffice-ibor/internal/client"
	"github.com/kartikm76/middleoffice-ibor/internal/common"
)

// HealthChecker reports the backend's actuator status.
type HealthChecker interface {
	Health(ctx context.Context) (*client.HealthResponse, error)
}

// ServerHealthHandler reports whether the IBOR backend is up.
type ServerHealthHandler struct {
	logger  *common.Logger
	checker HealthChecker
}

// NewServerHealthHandler creates a new server health handler.
func NewServerHealthHandler(logger *common.Logger, checker HealthChecker) *ServerHealthHandler {
	return &ServerHealthHandler{logger: logger, checker: checker}
}

// ServeHTTP handles GET /api/server-health.
func (h *ServerHealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	res, err := h.checker.Health(ctx)
	if err != nil {
		code := client.StatusOf(err)
		if h.logger != nil {
			h.logger.Debug().Err(err).Int("status", code).Msg("Backend health check failed")
		}
		body := map[string]any{"status": "down"}
		if code != 0 {
			body["backend_status"] = code
		}
		WriteJSON(w, http.StatusServiceUnavailable, body)
		return
	}

	if strings.EqualFold(res.Status, "UP") {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down", "backend": res.Status})
}
