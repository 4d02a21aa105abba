package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger checks connectivity to a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Readier reports whether live analysis is configured.
type Readier interface {
	Ready() error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db       Pinger
	analysis Readier
}

// NewHealthHandler creates a new HealthHandler. db may be nil when running
// without a database.
func NewHealthHandler(db Pinger, analysis Readier) *HealthHandler {
	return &HealthHandler{db: db, analysis: analysis}
}

// Liveness handles GET /healthz
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Readiness handles GET /readyz
// @Summary Readiness probe
// @Description Fails when the database is unreachable. An unconfigured analysis backend is reported but does not fail readiness, since demo analysis still works.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	resp := HealthResponse{Status: "ok", AnalysisConfigured: h.analysis.Ready() == nil}
	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			resp.Status = "unavailable"
			resp.Error = "database not reachable"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}
