package v1

import (
	"net/http"

	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/store"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	store  store.Client
	logger *logger.Logger
}

func NewHealthHandler(
	store store.Client,
	logger *logger.Logger,
) *HealthHandler {
	return &HealthHandler{
		store:  store,
		logger: logger,
	}
}

// @Summary Health check
// @Description Liveness of the service and reachability of the data store
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.logger.Errorw("store ping failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "store": "unreachable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "store": "ok"})
}
