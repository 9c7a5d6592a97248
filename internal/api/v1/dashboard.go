package v1

import (
	"net/http"

	"github.com/flexprice/invoice-dashboard/internal/api/dto"
	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/service"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboard service.DashboardService
	log       *logger.Logger
}

func NewDashboardHandler(dashboard service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		log:       log,
	}
}

// @Summary Revenue
// @Description Monthly revenue rows as stored
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.ListResponse[map[string]any]
// @Failure 500 {object} ierr.ErrorResponse
// @Router /revenue [get]
func (h *DashboardHandler) GetRevenue(c *gin.Context) {
	rows, err := h.dashboard.FetchRevenue(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(rows))
}

// @Summary Summary cards
// @Description Invoice and customer counts with paid and pending totals
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.CardDataResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /dashboard/cards [get]
func (h *DashboardHandler) GetCardData(c *gin.Context) {
	resp, err := h.dashboard.FetchCardData(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
